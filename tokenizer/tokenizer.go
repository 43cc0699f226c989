package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/AstroAir/diffani-sub002/models"
)

// FallbackPolicy decides what happens when code cannot be tokenized.
type FallbackPolicy string

const (
	// FallbackPlain emits the whole code as a single plain token.
	FallbackPlain FallbackPolicy = "plain"
	// FallbackStrict returns a *TokenizationError.
	FallbackStrict FallbackPolicy = "strict"
)

const plainType = "plain"

// Engine produces tokens for one language. Engines may return
// ErrUnsupportedLanguage; their output is checked for losslessness by the
// Tokenizer.
type Engine interface {
	Name() string
	Tokenize(code string, language Language) ([]models.Token, error)
}

// TokenizerConfig configures a Tokenizer. Zero values select the chroma
// engine, the process-wide cache and the plain-text fallback.
type TokenizerConfig struct {
	Engine         Engine
	Cache          *Cache
	FallbackPolicy FallbackPolicy
	Logger         *pterm.Logger
}

// Tokenizer is a memoizing, lossless tokenizer.
type Tokenizer struct {
	engine Engine
	cache  *Cache
	policy FallbackPolicy
	logger *pterm.Logger
}

// NewTokenizer creates a Tokenizer from config. A nil config uses defaults.
func NewTokenizer(config *TokenizerConfig) *Tokenizer {
	if config == nil {
		config = &TokenizerConfig{}
	}
	t := &Tokenizer{
		engine: config.Engine,
		cache:  config.Cache,
		policy: config.FallbackPolicy,
		logger: config.Logger,
	}
	if t.engine == nil {
		t.engine = ChromaEngine{}
	}
	if t.cache == nil {
		t.cache = DefaultCache()
	}
	if t.policy == "" {
		t.policy = FallbackPlain
	}
	if t.logger == nil {
		t.logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return t
}

// EngineByName returns the engine registered under name.
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "", "chroma":
		return ChromaEngine{}, nil
	case "treesitter", "tree-sitter":
		return TreeSitterEngine{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer engine %q", name)
	}
}

// ParseFallbackPolicy validates a policy name.
func ParseFallbackPolicy(name string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(name)) {
	case "", FallbackPlain:
		return FallbackPlain, nil
	case FallbackStrict:
		return FallbackStrict, nil
	default:
		return "", fmt.Errorf("unknown fallback policy %q", name)
	}
}

// Cache returns the memo cache used by the tokenizer.
func (t *Tokenizer) Cache() *Cache {
	return t.cache
}

// Tokenize returns tokens whose values concatenate to exactly code.
// Outcomes are memoized per (code, language), failures included, and the
// returned slice is shared. The fallback policy is applied to the memoized
// outcome, so tokenizers with different policies can share a cache.
func (t *Tokenizer) Tokenize(code string, language string) ([]models.Token, error) {
	lang := ParseLanguage(language)
	if lang == Plaintext {
		return plainTokens(code), nil
	}

	// Entries are namespaced by engine since engines label tokens differently.
	key := Language(t.engine.Name() + "/" + string(lang))
	tokens, err := t.cache.GetOrCompute(code, key, func() ([]models.Token, error) {
		return t.tokenize(code, lang)
	})
	if err == nil {
		return tokens, nil
	}
	return t.fallback(code, lang, err)
}

// tokenize runs the engine once per cached outcome, so failures are logged
// here rather than on every fallback.
func (t *Tokenizer) tokenize(code string, lang Language) ([]models.Token, error) {
	tokens, err := t.engine.Tokenize(code, lang)
	if err == nil {
		var ok bool
		if tokens, ok = reconcile(tokens, code); !ok {
			err = ErrLossyTokenization
		}
	}
	if err != nil {
		t.logFailure(lang, err)
		return nil, err
	}
	t.logger.Trace("tokenized snapshot", t.logger.Args("language", lang, "engine", t.engine.Name(), "tokens", len(tokens)))
	return tokens, nil
}

func (t *Tokenizer) logFailure(lang Language, err error) {
	args := t.logger.Args("language", lang, "engine", t.engine.Name())
	switch {
	case errors.Is(err, ErrUnsupportedLanguage) && !lang.Known():
		t.logger.Debug("unknown language", args)
	case errors.Is(err, ErrUnsupportedLanguage):
		t.logger.Debug("no grammar for language", args)
	default:
		t.logger.Warn("tokenizer engine failed", append(args, t.logger.Args("error", err)...))
	}
}

func (t *Tokenizer) fallback(code string, lang Language, err error) ([]models.Token, error) {
	if t.policy == FallbackStrict {
		return nil, &TokenizationError{Language: lang, Engine: t.engine.Name(), Err: err}
	}
	t.logger.Trace("using plain text", t.logger.Args("language", lang, "engine", t.engine.Name()))
	return plainTokens(code), nil
}

// plainTokens is the fallback tokenization: one token spanning the code.
func plainTokens(code string) []models.Token {
	if code == "" {
		return []models.Token{}
	}
	return []models.Token{{Value: code, Types: []string{plainType}}}
}

// reconcile checks that tokens reassemble code. Lexers that force a trailing
// newline are repaired by trimming it from the tail.
func reconcile(tokens []models.Token, code string) ([]models.Token, bool) {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Value)
	}
	joined := sb.String()

	switch {
	case joined == code:
		if tokens == nil {
			tokens = []models.Token{}
		}
		return tokens, true
	case joined == code+"\n":
		out := append([]models.Token(nil), tokens...)
		last := len(out) - 1
		out[last].Value = strings.TrimSuffix(out[last].Value, "\n")
		if out[last].Value == "" {
			out = out[:last]
		}
		return out, true
	default:
		return nil, false
	}
}
