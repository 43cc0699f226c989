package models

import "strings"

// RawSnapshot is one externally supplied state of the code.
// Duration and TransitionTime are in milliseconds.
type RawSnapshot struct {
	ID             string  `json:"id" yaml:"id"`
	Code           string  `json:"code" yaml:"code"`
	Duration       float64 `json:"duration" yaml:"duration"`
	TransitionTime float64 `json:"transitionTime" yaml:"transitionTime"`
}

// RawDoc is the caller owned input of a document build. It is never mutated.
type RawDoc struct {
	Language   string        `json:"language" yaml:"language"`
	FontSize   float64       `json:"fontSize" yaml:"fontSize"`
	LineHeight float64       `json:"lineHeight" yaml:"lineHeight"`
	Width      float64       `json:"width" yaml:"width"`
	Height     float64       `json:"height" yaml:"height"`
	Theme      string        `json:"theme" yaml:"theme"`
	Padding    Padding       `json:"padding" yaml:"padding"`
	Snapshots  []RawSnapshot `json:"snapshots" yaml:"snapshots"`
}

// Padding of the rendered frame.
type Padding struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// TotalDuration sums the durations of all snapshots.
func (r *RawDoc) TotalDuration() float64 {
	var total float64
	for _, s := range r.Snapshots {
		total += s.Duration
	}
	return total
}

// Token is a contiguous piece of a snapshot's code.
// Types is a sorted label set used for styling only.
type Token struct {
	Value string
	Types []string
}

// HasType reports whether the token carries the given label.
func (t Token) HasType(name string) bool {
	for _, typ := range t.Types {
		if typ == name {
			return true
		}
	}
	return false
}

// Line holds the tokens of one visual row. No token value contains '\n'.
type Line []Token

// Text returns the rendered text of the line.
func (l Line) Text() string {
	if len(l) == 1 {
		return l[0].Value
	}
	var sb strings.Builder
	for _, tok := range l {
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

// Snapshot is the tokenized form of a RawSnapshot.
// LinesCount is the number of line-break characters in the code,
// not the number of visual lines.
type Snapshot struct {
	Tokens     []Token
	LinesCount int
}

// Code reassembles the source the snapshot was tokenized from.
func (s Snapshot) Code() string {
	var sb strings.Builder
	for _, tok := range s.Tokens {
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

// DiffPair states that Left[LeftIndex] and Right[RightIndex] are the same row.
type DiffPair struct {
	LeftIndex  int
	RightIndex int
}

// Transition aligns the lines of two adjacent snapshots.
type Transition struct {
	Diffs []DiffPair
	Left  []Line
	Right []Line
}

// UnmatchedLeft returns the indices of lines that disappear during the transition.
func (t Transition) UnmatchedLeft() []int {
	matched := make([]bool, len(t.Left))
	for _, d := range t.Diffs {
		matched[d.LeftIndex] = true
	}
	return complement(matched)
}

// UnmatchedRight returns the indices of lines that appear during the transition.
func (t Transition) UnmatchedRight() []int {
	matched := make([]bool, len(t.Right))
	for _, d := range t.Diffs {
		matched[d.RightIndex] = true
	}
	return complement(matched)
}

func complement(matched []bool) []int {
	var out []int
	for i, ok := range matched {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// Doc is the renderable result of a build. Raw is shared with the caller.
type Doc struct {
	Raw         *RawDoc
	Snapshots   []Snapshot
	Transitions []Transition
}
