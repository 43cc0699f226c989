package contracts

import "github.com/AstroAir/diffani-sub002/models"

// ITokenizer turns code into a lossless token sequence.
type ITokenizer interface {
	Tokenize(code string, language string) ([]models.Token, error)
}
