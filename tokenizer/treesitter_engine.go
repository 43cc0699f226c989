package tokenizer

import (
	"context"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/AstroAir/diffani-sub002/models"
)

// TreeSitterEngine tokenizes by walking the leaves of a tree-sitter syntax tree.
// Source between leaves becomes plain tokens, so the output is lossless
// even when the grammar skips bytes.
type TreeSitterEngine struct{}

func (TreeSitterEngine) Name() string { return "treesitter" }

func treeSitterLanguage(language Language) *sitter.Language {
	switch language {
	case Go:
		return golang.GetLanguage()
	case JavaScript, JSX:
		return javascript.GetLanguage()
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	case Python:
		return python.GetLanguage()
	case Java:
		return java.GetLanguage()
	case CSharp:
		return csharp.GetLanguage()
	case Rust:
		return rust.GetLanguage()
	default:
		return nil
	}
}

func (TreeSitterEngine) Tokenize(code string, language Language) ([]models.Token, error) {
	lang := treeSitterLanguage(language)
	if lang == nil {
		return nil, ErrUnsupportedLanguage
	}

	// Parsers are not safe for concurrent use, so each call gets its own.
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	source := []byte(code)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	w := &leafWalker{source: source}
	w.walk(tree.RootNode(), nil)
	w.gap(len(source))
	return w.tokens, nil
}

type leafWalker struct {
	source []byte
	cursor int
	tokens []models.Token
}

func (w *leafWalker) walk(node, parent *sitter.Node) {
	if node == nil {
		return
	}
	count := int(node.ChildCount())
	if count > 0 {
		for i := 0; i < count; i++ {
			w.walk(node.Child(i), node)
		}
		return
	}

	start, end := int(node.StartByte()), int(node.EndByte())
	if end > len(w.source) {
		end = len(w.source)
	}
	if start < w.cursor {
		start = w.cursor
	}
	if end <= start {
		return
	}
	w.gap(start)
	w.tokens = append(w.tokens, models.Token{
		Value: string(w.source[start:end]),
		Types: leafTypes(node, parent, w.source[start:end]),
	})
	w.cursor = end
}

// gap emits the unclaimed bytes before offset as a plain token.
func (w *leafWalker) gap(offset int) {
	if offset <= w.cursor {
		return
	}
	w.tokens = append(w.tokens, models.Token{
		Value: string(w.source[w.cursor:offset]),
		Types: []string{plainType},
	})
	w.cursor = offset
}

func leafTypes(node, parent *sitter.Node, text []byte) []string {
	if !node.IsNamed() {
		r, _ := utf8.DecodeRune(text)
		if unicode.IsLetter(r) {
			return []string{"keyword"}
		}
		return []string{"punctuation"}
	}
	types := []string{node.Type()}
	if parent != nil && parent.IsNamed() && parent.Type() != node.Type() {
		types = append(types, parent.Type())
	}
	sort.Strings(types)
	return types
}
