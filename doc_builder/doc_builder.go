package doc_builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sourcegraph/conc/iter"

	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/tokenizer"
	"github.com/AstroAir/diffani-sub002/tokenizer/contracts"
	"github.com/AstroAir/diffani-sub002/transition"
)

// DocBuilderConfig configures a DocBuilder. A nil Tokenizer uses the
// default chroma tokenizer backed by the process-wide cache.
type DocBuilderConfig struct {
	Tokenizer contracts.ITokenizer
	Logger    *pterm.Logger
}

// DocBuilder tokenizes snapshots and computes the transitions between them.
type DocBuilder struct {
	tokenizer contracts.ITokenizer
	logger    *pterm.Logger
}

// NewDocBuilder creates a DocBuilder from config.
func NewDocBuilder(config *DocBuilderConfig) *DocBuilder {
	if config == nil {
		config = &DocBuilderConfig{}
	}
	b := &DocBuilder{
		tokenizer: config.Tokenizer,
		logger:    config.Logger,
	}
	if b.logger == nil {
		b.logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	if b.tokenizer == nil {
		b.tokenizer = tokenizer.NewTokenizer(&tokenizer.TokenizerConfig{Logger: b.logger})
	}
	return b
}

// Build computes the Doc for raw. The Doc keeps a shared reference to raw,
// which is not modified. Any error aborts the build; no partial Doc is
// returned.
func (b *DocBuilder) Build(raw *models.RawDoc) (*models.Doc, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	snapshots := make([]models.Snapshot, len(raw.Snapshots))
	for i, rs := range raw.Snapshots {
		tokens, err := b.tokenizer.Tokenize(rs.Code, raw.Language)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d (%s): %w", i, rs.ID, err)
		}
		snapshots[i] = models.Snapshot{
			Tokens:     tokens,
			LinesCount: strings.Count(rs.Code, "\n"),
		}
	}

	transitions := make([]models.Transition, 0, len(snapshots)-1)
	if len(snapshots) > 1 {
		lines := transition.SplitLines(snapshots[0].Tokens)
		for i := 1; i < len(snapshots); i++ {
			next := transition.SplitLines(snapshots[i].Tokens)
			transitions = append(transitions, transition.Build(transition.Align(lines, next), lines, next))
			lines = next
		}
	}

	b.logger.Debug("built document", b.logger.Args(
		"language", raw.Language,
		"snapshots", len(snapshots),
		"transitions", len(transitions),
	))

	return &models.Doc{
		Raw:         raw,
		Snapshots:   snapshots,
		Transitions: transitions,
	}, nil
}

// BuildAll builds independent documents concurrently. The context is only
// consulted before each build starts; a started build runs to completion.
func (b *DocBuilder) BuildAll(ctx context.Context, raws []*models.RawDoc) ([]*models.Doc, error) {
	docs, err := iter.MapErr(raws, func(raw **models.RawDoc) (*models.Doc, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return b.Build(*raw)
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func validate(raw *models.RawDoc) error {
	if raw == nil || len(raw.Snapshots) == 0 {
		return &ValidationError{Field: "snapshots", Err: ErrNoSnapshots}
	}
	return nil
}
