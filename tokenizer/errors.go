package tokenizer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage is returned by an engine that has no grammar for a language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrLossyTokenization is returned when tokens do not reassemble the source.
	ErrLossyTokenization = errors.New("tokens do not reconstruct the source code")
)

// TokenizationError is returned under the strict fallback policy.
type TokenizationError struct {
	Language Language
	Engine   string
	Err      error
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("tokenize %q with %s: %v", e.Language, e.Engine, e.Err)
}

func (e *TokenizationError) Unwrap() error {
	return e.Err
}
