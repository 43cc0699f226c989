package contracts

import (
	"context"

	"github.com/AstroAir/diffani-sub002/models"
)

// IDocBuilder turns raw documents into renderable ones.
type IDocBuilder interface {
	Build(raw *models.RawDoc) (*models.Doc, error)
	BuildAll(ctx context.Context, raws []*models.RawDoc) ([]*models.Doc, error)
}
