package doc_builder

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/diffani-sub002/doc_builder/contracts"
	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/tokenizer"
)

var _ contracts.IDocBuilder = (*DocBuilder)(nil)

// fakeTokenizer returns the code as one token and counts its calls.
type fakeTokenizer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeTokenizer) Tokenize(code, language string) ([]models.Token, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if code == "" {
		return []models.Token{}, nil
	}
	return []models.Token{{Value: code}}, nil
}

func rawDoc(codes ...string) *models.RawDoc {
	raw := &models.RawDoc{Language: "javascript"}
	for _, code := range codes {
		raw.Snapshots = append(raw.Snapshots, models.RawSnapshot{Code: code, Duration: 1000, TransitionTime: 300})
	}
	return raw
}

func newTestBuilder() *DocBuilder {
	return NewDocBuilder(&DocBuilderConfig{
		Tokenizer: tokenizer.NewTokenizer(&tokenizer.TokenizerConfig{Cache: tokenizer.NewCache()}),
	})
}

func TestBuild_ThreeSnapshots(t *testing.T) {
	raw := rawDoc(
		"const a = 1;",
		"const a = 2;\nconst b = 3;",
		"const a = 2;\nconst b = 3;\nconst c = 4;",
	)

	doc, err := newTestBuilder().Build(raw)
	require.NoError(t, err)

	require.Len(t, doc.Snapshots, 3)
	counts := []int{doc.Snapshots[0].LinesCount, doc.Snapshots[1].LinesCount, doc.Snapshots[2].LinesCount}
	assert.Equal(t, []int{0, 1, 2}, counts)
	for i, s := range doc.Snapshots {
		assert.Equal(t, raw.Snapshots[i].Code, s.Code())
	}

	require.Len(t, doc.Transitions, 2)
	assert.Empty(t, doc.Transitions[0].Diffs)

	second := doc.Transitions[1]
	matched := map[string]bool{}
	for _, d := range second.Diffs {
		matched[second.Right[d.RightIndex].Text()] = true
	}
	assert.True(t, matched["const a = 2;"])
	assert.True(t, matched["const b = 3;"])
	require.Equal(t, []int{2}, second.UnmatchedRight())
	assert.Equal(t, "const c = 4;", second.Right[2].Text())
}

func TestBuild_SharesRawDoc(t *testing.T) {
	raw := rawDoc("a", "b")

	doc, err := newTestBuilder().Build(raw)
	require.NoError(t, err)

	assert.Same(t, raw, doc.Raw)
	assert.Equal(t, "a", raw.Snapshots[0].Code)
}

func TestBuild_ZeroSnapshots(t *testing.T) {
	fake := &fakeTokenizer{}
	builder := NewDocBuilder(&DocBuilderConfig{Tokenizer: fake})

	for _, raw := range []*models.RawDoc{nil, {Language: "go"}} {
		doc, err := builder.Build(raw)
		assert.Nil(t, doc)

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "snapshots", validationErr.Field)
		assert.ErrorIs(t, err, ErrNoSnapshots)
	}
	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestBuild_OneSnapshot(t *testing.T) {
	fake := &fakeTokenizer{}
	doc, err := NewDocBuilder(&DocBuilderConfig{Tokenizer: fake}).Build(rawDoc("x\ny\n"))
	require.NoError(t, err)

	require.Len(t, doc.Snapshots, 1)
	assert.Equal(t, 2, doc.Snapshots[0].LinesCount)
	assert.Empty(t, doc.Transitions)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestBuild_EmptyCode(t *testing.T) {
	doc, err := newTestBuilder().Build(rawDoc("", "a"))
	require.NoError(t, err)

	assert.Empty(t, doc.Snapshots[0].Tokens)
	assert.Equal(t, 0, doc.Snapshots[0].LinesCount)
	require.Len(t, doc.Transitions, 1)
	assert.Len(t, doc.Transitions[0].Left, 1)
	assert.Empty(t, doc.Transitions[0].Diffs)
}

func TestBuild_TokenizationErrorAbortsBuild(t *testing.T) {
	strict := tokenizer.NewTokenizer(&tokenizer.TokenizerConfig{
		Cache:          tokenizer.NewCache(),
		FallbackPolicy: tokenizer.FallbackStrict,
	})
	raw := rawDoc("a", "b")
	raw.Language = "no-such-language"

	doc, err := NewDocBuilder(&DocBuilderConfig{Tokenizer: strict}).Build(raw)
	assert.Nil(t, doc)

	var tokErr *tokenizer.TokenizationError
	require.True(t, errors.As(err, &tokErr))
	assert.ErrorIs(t, err, tokenizer.ErrUnsupportedLanguage)
}

func TestBuild_UnknownLanguageFallsBackToPlain(t *testing.T) {
	raw := rawDoc("a\nb", "a\nc")
	raw.Language = "no-such-language"

	doc, err := newTestBuilder().Build(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"plain"}, doc.Snapshots[0].Tokens[0].Types)
	assert.Equal(t, []models.DiffPair{{LeftIndex: 0, RightIndex: 0}}, doc.Transitions[0].Diffs)
}

func TestBuildAll(t *testing.T) {
	raws := []*models.RawDoc{
		rawDoc("a", "a\nb"),
		rawDoc("x"),
		rawDoc("1", "2", "3"),
	}

	docs, err := newTestBuilder().BuildAll(context.Background(), raws)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	for i, doc := range docs {
		assert.Same(t, raws[i], doc.Raw)
	}
	assert.Len(t, docs[0].Transitions, 1)
	assert.Len(t, docs[1].Transitions, 0)
	assert.Len(t, docs[2].Transitions, 2)
}

func TestBuildAll_AnyFailureFailsAll(t *testing.T) {
	docs, err := newTestBuilder().BuildAll(context.Background(), []*models.RawDoc{rawDoc("a"), {}})

	assert.Nil(t, docs)
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestBuildAll_CancelledContext(t *testing.T) {
	fake := &fakeTokenizer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs, err := NewDocBuilder(&DocBuilderConfig{Tokenizer: fake}).BuildAll(ctx, []*models.RawDoc{rawDoc("a")})

	assert.Nil(t, docs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "snapshots", Err: ErrNoSnapshots}
	assert.Equal(t, "invalid document: snapshots: a document requires at least one snapshot", err.Error())
}
