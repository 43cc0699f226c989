package tokenizer

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/diffani-sub002/models"
)

func join(tokens []models.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

// countingEngine splits code on spaces and counts its calls.
type countingEngine struct {
	calls atomic.Int32
	err   error
	lossy bool
}

func (e *countingEngine) Name() string { return "counting" }

func (e *countingEngine) Tokenize(code string, language Language) ([]models.Token, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	if e.lossy {
		return []models.Token{{Value: strings.ToUpper(code)}}, nil
	}
	var tokens []models.Token
	for _, part := range strings.SplitAfter(code, " ") {
		if part != "" {
			tokens = append(tokens, models.Token{Value: part, Types: []string{"word"}})
		}
	}
	return tokens, nil
}

func TestTokenizer_ChromaIsLossless(t *testing.T) {
	tok := NewTokenizer(&TokenizerConfig{Cache: NewCache()})

	cases := []struct {
		name     string
		language string
		code     string
	}{
		{"empty", "javascript", ""},
		{"whitespace only", "javascript", "  \n\t\n "},
		{"single line", "javascript", "const a = 1;"},
		{"no trailing newline", "go", "package main\n\nfunc main() {}"},
		{"trailing newline", "go", "package main\n\nfunc main() {}\n"},
		{"crlf", "typescript", "let a: number = 1;\r\nlet b = a;\r\n"},
		{"unicode", "python", "s = \"héllo 世界\"\nprint(s)"},
		{"broken syntax", "java", "class { ) ] \"unterminated\n"},
		{"jsx", "jsx", "const el = <div className=\"x\">{a}</div>;"},
		{"unknown language", "brainfudge", "+++[>+<-]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := tok.Tokenize(tc.code, tc.language)
			require.NoError(t, err)
			assert.Equal(t, tc.code, join(tokens))
			for _, token := range tokens {
				assert.NotEmpty(t, token.Value)
			}
		})
	}
}

func TestTokenizer_ChromaLabelsTokens(t *testing.T) {
	tok := NewTokenizer(&TokenizerConfig{Cache: NewCache()})

	tokens, err := tok.Tokenize("const a = 1;", "javascript")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)

	assert.Equal(t, "const", tokens[0].Value)
	assert.True(t, tokens[0].HasType("Keyword"), "types: %v", tokens[0].Types)
	assert.True(t, len(tokens) > 1)
}

func TestTokenizer_Memoizes(t *testing.T) {
	engine := &countingEngine{}
	tok := NewTokenizer(&TokenizerConfig{Engine: engine, Cache: NewCache()})

	first, err := tok.Tokenize("a b c", "go")
	require.NoError(t, err)
	second, err := tok.Tokenize("a b c", "go")
	require.NoError(t, err)
	_, err = tok.Tokenize("a b c", "rust")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(2), engine.calls.Load())
}

func TestTokenizer_SharedCacheIsNamespacedByEngine(t *testing.T) {
	cache := NewCache()
	counting := NewTokenizer(&TokenizerConfig{Engine: &countingEngine{}, Cache: cache})
	chroma := NewTokenizer(&TokenizerConfig{Cache: cache})

	a, err := counting.Tokenize("x = 1", "python")
	require.NoError(t, err)
	b, err := chroma.Tokenize("x = 1", "python")
	require.NoError(t, err)

	assert.Equal(t, []string{"word"}, a[0].Types)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, cache.Len())
}

func TestTokenizer_PlainFallback(t *testing.T) {
	t.Run("unsupported language", func(t *testing.T) {
		tok := NewTokenizer(&TokenizerConfig{Engine: &countingEngine{err: ErrUnsupportedLanguage}, Cache: NewCache()})

		tokens, err := tok.Tokenize("some code\nmore", "cobol")
		require.NoError(t, err)
		assert.Equal(t, []models.Token{{Value: "some code\nmore", Types: []string{"plain"}}}, tokens)
	})

	t.Run("lossy engine output", func(t *testing.T) {
		tok := NewTokenizer(&TokenizerConfig{Engine: &countingEngine{lossy: true}, Cache: NewCache()})

		tokens, err := tok.Tokenize("abc", "go")
		require.NoError(t, err)
		assert.Equal(t, []models.Token{{Value: "abc", Types: []string{"plain"}}}, tokens)
	})

	t.Run("empty code", func(t *testing.T) {
		tok := NewTokenizer(&TokenizerConfig{Engine: &countingEngine{err: ErrUnsupportedLanguage}, Cache: NewCache()})

		tokens, err := tok.Tokenize("", "cobol")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})
}

func TestTokenizer_MemoizesFailedTokenization(t *testing.T) {
	engine := &countingEngine{lossy: true}
	cache := NewCache()
	plain := NewTokenizer(&TokenizerConfig{Engine: engine, Cache: cache})
	strict := NewTokenizer(&TokenizerConfig{Engine: engine, Cache: cache, FallbackPolicy: FallbackStrict})

	for i := 0; i < 5; i++ {
		tokens, err := plain.Tokenize("same snapshot", "go")
		require.NoError(t, err)
		assert.Equal(t, []models.Token{{Value: "same snapshot", Types: []string{"plain"}}}, tokens)
	}
	_, err := strict.Tokenize("same snapshot", "go")
	assert.ErrorIs(t, err, ErrLossyTokenization)

	assert.Equal(t, int32(1), engine.calls.Load())
	assert.Equal(t, 1, cache.GetPerformanceStats()["failed_entries"])
}

func TestTokenizer_StrictPolicy(t *testing.T) {
	t.Run("unsupported language", func(t *testing.T) {
		tok := NewTokenizer(&TokenizerConfig{
			Engine:         &countingEngine{err: ErrUnsupportedLanguage},
			Cache:          NewCache(),
			FallbackPolicy: FallbackStrict,
		})

		_, err := tok.Tokenize("x", "cobol")
		require.Error(t, err)

		var tokErr *TokenizationError
		require.True(t, errors.As(err, &tokErr))
		assert.Equal(t, Language("cobol"), tokErr.Language)
		assert.Equal(t, "counting", tokErr.Engine)
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("lossy engine output", func(t *testing.T) {
		tok := NewTokenizer(&TokenizerConfig{
			Engine:         &countingEngine{lossy: true},
			Cache:          NewCache(),
			FallbackPolicy: FallbackStrict,
		})

		_, err := tok.Tokenize("abc", "go")
		assert.ErrorIs(t, err, ErrLossyTokenization)
	})

	t.Run("plaintext never fails", func(t *testing.T) {
		tok := NewTokenizer(&TokenizerConfig{
			Engine:         &countingEngine{err: ErrUnsupportedLanguage},
			Cache:          NewCache(),
			FallbackPolicy: FallbackStrict,
		})

		tokens, err := tok.Tokenize("abc", "text")
		require.NoError(t, err)
		assert.Equal(t, "abc", join(tokens))
	})
}

func TestReconcile(t *testing.T) {
	tokens, ok := reconcile(tokensOf("a", "b\n"), "ab")
	require.True(t, ok)
	assert.Equal(t, tokensOf("a", "b"), tokens)

	tokens, ok = reconcile(tokensOf("a", "\n"), "a")
	require.True(t, ok)
	assert.Equal(t, tokensOf("a"), tokens)

	tokens, ok = reconcile(nil, "")
	require.True(t, ok)
	assert.Empty(t, tokens)

	_, ok = reconcile(tokensOf("a", "c"), "ab")
	assert.False(t, ok)
}

func TestEngineByName(t *testing.T) {
	engine, err := EngineByName("chroma")
	require.NoError(t, err)
	assert.Equal(t, "chroma", engine.Name())

	engine, err = EngineByName("tree-sitter")
	require.NoError(t, err)
	assert.Equal(t, "treesitter", engine.Name())

	_, err = EngineByName("prism")
	assert.Error(t, err)
}

func TestParseFallbackPolicy(t *testing.T) {
	policy, err := ParseFallbackPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FallbackPlain, policy)

	policy, err = ParseFallbackPolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, FallbackStrict, policy)

	_, err = ParseFallbackPolicy("maybe")
	assert.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, Go, ParseLanguage("Golang"))
	assert.Equal(t, TypeScript, ParseLanguage(" ts "))
	assert.Equal(t, CSharp, ParseLanguage("C#"))
	assert.Equal(t, Language("cobol"), ParseLanguage("cobol"))
	assert.True(t, Rust.Known())
	assert.False(t, Language("cobol").Known())

	assert.Equal(t, TSX, LanguageForFile("src/App.tsx"))
	assert.Equal(t, Python, LanguageForFile("main.PY"))
	assert.Equal(t, Plaintext, LanguageForFile("README"))
}
