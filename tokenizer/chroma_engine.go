package tokenizer

import (
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/AstroAir/diffani-sub002/models"
)

// ChromaEngine tokenizes with the chroma lexer registry.
type ChromaEngine struct{}

func (ChromaEngine) Name() string { return "chroma" }

func (ChromaEngine) Tokenize(code string, language Language) ([]models.Token, error) {
	lexer := lexers.Get(language.chromaLexerName())
	if lexer == nil {
		return nil, ErrUnsupportedLanguage
	}
	lexer = chroma.Coalesce(lexer)

	// EnsureLF would rewrite \r\n and break reconstruction.
	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root", EnsureLF: false}, code)
	if err != nil {
		return nil, fmt.Errorf("chroma lexer %s: %w", lexer.Config().Name, err)
	}

	var tokens []models.Token
	for _, t := range it.Tokens() {
		if t.Value == "" {
			continue
		}
		tokens = append(tokens, models.Token{Value: t.Value, Types: chromaTypes(t.Type)})
	}
	return tokens, nil
}

// chromaTypes expands a token type into itself plus its category labels,
// e.g. KeywordDeclaration -> {Keyword, KeywordDeclaration}.
func chromaTypes(tt chroma.TokenType) []string {
	set := map[string]struct{}{
		tt.String():               {},
		tt.Category().String():    {},
		tt.SubCategory().String(): {},
	}
	types := make([]string, 0, len(set))
	for name := range set {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
