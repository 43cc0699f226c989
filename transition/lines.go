package transition

import (
	"strings"

	"github.com/AstroAir/diffani-sub002/models"
)

// SplitLines partitions tokens into visual lines. Tokens containing '\n'
// are split at each break; fragments keep the token's types and empty
// fragments are dropped. The result always has one more line than there
// are line breaks, so empty input yields a single empty line.
func SplitLines(tokens []models.Token) []models.Line {
	lines := make([]models.Line, 0, 1)
	current := models.Line{}

	for _, tok := range tokens {
		if !strings.Contains(tok.Value, "\n") {
			current = append(current, tok)
			continue
		}
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = models.Line{}
			}
			if part != "" {
				current = append(current, models.Token{Value: part, Types: tok.Types})
			}
		}
	}
	return append(lines, current)
}
