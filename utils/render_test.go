package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/transition"
)

var plainOptions = RenderOptions{Language: "javascript", Style: "noop", Theme: "dracula", Width: 16}

func sampleTransition() models.Transition {
	return transition.Compute(
		[]models.Token{{Value: "const a = 1;\nconst b = 3;"}},
		[]models.Token{{Value: "const a = 2;\nconst b = 3;\nconst c = 4;"}},
	)
}

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestRenderTransition(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTransition(&buf, sampleTransition(), plainOptions))

	lines := outputLines(&buf)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "- const a = 1;")
	assert.Contains(t, lines[1], "+ const a = 2;")
	assert.Contains(t, lines[2], "  const b = 3;")
	assert.Contains(t, lines[3], "+ const c = 4;")
}

func TestRenderSideBySide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSideBySide(&buf, sampleTransition(), plainOptions))

	lines := outputLines(&buf)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "const a = 1;")
	assert.Contains(t, lines[0], "const a = 2;")
	assert.Contains(t, lines[0], " | ")
	assert.Contains(t, lines[1], " = ")
	assert.Equal(t, 2, strings.Count(lines[1], "const b = 3;"))
	assert.Contains(t, lines[2], "const c = 4;")
}

func TestRenderSnapshot(t *testing.T) {
	var buf bytes.Buffer
	s := models.Snapshot{Tokens: []models.Token{{Value: "let x = 1;\n"}}}
	require.NoError(t, RenderSnapshot(&buf, s, plainOptions))
	assert.Contains(t, buf.String(), "let x = 1;")
}
