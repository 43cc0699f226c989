package utils

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AstroAir/diffani-sub002/models"
)

// DefaultRawDoc holds the frame settings used when a source does not
// provide them.
var DefaultRawDoc = models.RawDoc{
	Language:   "javascript",
	FontSize:   16,
	LineHeight: 22,
	Width:      960,
	Height:     540,
	Theme:      "dracula",
	Padding:    models.Padding{Top: 32, Right: 32, Bottom: 32, Left: 32},
}

// Default snapshot timing in milliseconds.
const (
	DefaultDuration       = 3000
	DefaultTransitionTime = 1000
)

// LoadRawDoc reads a YAML or JSON document file.
func LoadRawDoc(path string) (*models.RawDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	raw, err := ParseRawDoc(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return raw, nil
}

// snapshotTiming records which snapshots state a duration at all, so that
// an explicit zero is kept.
type snapshotTiming struct {
	Snapshots []struct {
		Duration *float64 `yaml:"duration"`
	} `yaml:"snapshots"`
}

// ParseRawDoc decodes a YAML or JSON document. JSON is accepted since it is
// valid YAML. Snapshots without an id or a duration key get defaults.
func ParseRawDoc(data []byte) (*models.RawDoc, error) {
	raw := DefaultRawDoc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var timing snapshotTiming
	if err := yaml.Unmarshal(data, &timing); err != nil {
		return nil, err
	}

	for i := range raw.Snapshots {
		if raw.Snapshots[i].ID == "" {
			raw.Snapshots[i].ID = fmt.Sprintf("snapshot-%d", i+1)
		}
		if i >= len(timing.Snapshots) || timing.Snapshots[i].Duration == nil {
			raw.Snapshots[i].Duration = DefaultDuration
		}
	}
	return &raw, nil
}

// WriteRawDoc encodes a document as YAML.
func WriteRawDoc(w io.Writer, raw *models.RawDoc) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return err
	}
	return enc.Close()
}

// NewRawSnapshot creates a snapshot with the default timing.
func NewRawSnapshot(id, code string) models.RawSnapshot {
	return models.RawSnapshot{
		ID:             id,
		Code:           code,
		Duration:       DefaultDuration,
		TransitionTime: DefaultTransitionTime,
	}
}
