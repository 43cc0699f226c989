package transition

import "github.com/AstroAir/diffani-sub002/models"

// Build packages an alignment with the line sequences it refers to.
func Build(diffs []models.DiffPair, left, right []models.Line) models.Transition {
	return models.Transition{
		Diffs: diffs,
		Left:  left,
		Right: right,
	}
}

// Compute partitions both token sequences into lines, aligns them and
// builds the transition.
func Compute(left, right []models.Token) models.Transition {
	leftLines := SplitLines(left)
	rightLines := SplitLines(right)
	return Build(Align(leftLines, rightLines), leftLines, rightLines)
}
