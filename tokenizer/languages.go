package tokenizer

import (
	"path/filepath"
	"strings"
)

// Language identifies the grammar used to tokenize a snapshot.
type Language string

const (
	Go         Language = "go"
	JavaScript Language = "javascript"
	JSX        Language = "jsx"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Python     Language = "python"
	Java       Language = "java"
	CSharp     Language = "csharp"
	Rust       Language = "rust"
	CSS        Language = "css"
	HTML       Language = "html"
	JSON       Language = "json"
	YAML       Language = "yaml"
	Markdown   Language = "markdown"
	Bash       Language = "bash"
	Plaintext  Language = "plaintext"
)

var languageAliases = map[string]Language{
	"go":         Go,
	"golang":     Go,
	"js":         JavaScript,
	"javascript": JavaScript,
	"jsx":        JSX,
	"ts":         TypeScript,
	"typescript": TypeScript,
	"tsx":        TSX,
	"py":         Python,
	"python":     Python,
	"java":       Java,
	"cs":         CSharp,
	"c#":         CSharp,
	"csharp":     CSharp,
	"rs":         Rust,
	"rust":       Rust,
	"css":        CSS,
	"html":       HTML,
	"json":       JSON,
	"yml":        YAML,
	"yaml":       YAML,
	"md":         Markdown,
	"markdown":   Markdown,
	"sh":         Bash,
	"bash":       Bash,
	"text":       Plaintext,
	"txt":        Plaintext,
	"plain":      Plaintext,
	"plaintext":  Plaintext,
}

var extensionLanguages = map[string]Language{
	".go":   Go,
	".js":   JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".jsx":  JSX,
	".ts":   TypeScript,
	".tsx":  TSX,
	".py":   Python,
	".java": Java,
	".cs":   CSharp,
	".rs":   Rust,
	".css":  CSS,
	".html": HTML,
	".htm":  HTML,
	".json": JSON,
	".yml":  YAML,
	".yaml": YAML,
	".md":   Markdown,
	".sh":   Bash,
	".txt":  Plaintext,
}

// ParseLanguage resolves a name or alias. Unknown names are returned as-is
// so that the fallback policy decides what happens to them.
func ParseLanguage(name string) Language {
	key := strings.ToLower(strings.TrimSpace(name))
	if lang, ok := languageAliases[key]; ok {
		return lang
	}
	return Language(key)
}

// LanguageForFile guesses the language from a file extension.
func LanguageForFile(path string) Language {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return Plaintext
}

// Known reports whether the language is one of the supported constants.
func (l Language) Known() bool {
	for _, lang := range languageAliases {
		if lang == l {
			return true
		}
	}
	return false
}

// chromaLexerName maps a language to the chroma lexer registry name.
func (l Language) chromaLexerName() string {
	switch l {
	case JSX:
		return "react"
	case TSX:
		return "tsx"
	case CSharp:
		return "c#"
	case Plaintext:
		return "plaintext"
	default:
		return string(l)
	}
}
