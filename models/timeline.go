package models

// Position locates a playback time within a Doc.
type Position struct {
	// SnapshotIndex is the snapshot being shown or animated into.
	SnapshotIndex int
	// Progress of the transition into SnapshotIndex, in [0,1]. 1 means settled.
	Progress float64
}

// Animating reports whether the position is inside a transition.
func (p Position) Animating() bool {
	return p.Progress < 1
}

// PositionAt maps a time in milliseconds onto the document timeline.
//
// Snapshot i is shown for its Duration. For i > 0 the first
// TransitionTime milliseconds of that window animate from snapshot i-1.
// Times outside the timeline clamp to the first or last snapshot.
func (d *Doc) PositionAt(t float64) Position {
	if d.Raw == nil || len(d.Raw.Snapshots) == 0 || t <= 0 {
		return Position{SnapshotIndex: 0, Progress: 1}
	}

	var start float64
	last := len(d.Raw.Snapshots) - 1
	for i, s := range d.Raw.Snapshots {
		end := start + s.Duration
		if t < end || i == last {
			return Position{SnapshotIndex: i, Progress: progress(i, s, t-start)}
		}
		start = end
	}
	return Position{SnapshotIndex: last, Progress: 1}
}

func progress(index int, s RawSnapshot, elapsed float64) float64 {
	if index == 0 {
		return 1
	}
	window := s.TransitionTime
	if window > s.Duration {
		window = s.Duration
	}
	if window <= 0 || elapsed >= window {
		return 1
	}
	return elapsed / window
}
