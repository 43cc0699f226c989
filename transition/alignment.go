package transition

import (
	"fmt"

	"github.com/AstroAir/diffani-sub002/models"
)

// Align returns the longest strictly monotonic sequence of pairs of
// text-equal lines. Among all longest alignments it picks the one with the
// smallest total displacement sum(|LeftIndex-RightIndex|), so duplicated
// lines stay close to where they were. Remaining ties prefer matching,
// then dropping the left line, then dropping the right line; inputs too
// large for one table are first split at the leftmost best column.
func Align(left, right []models.Line) []models.DiffPair {
	a, b := internLines(left, right)

	// A common prefix is part of some optimal alignment at zero cost.
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}

	diffs := make([]models.DiffPair, 0, min(len(a), len(b)))
	for i := 0; i < prefix; i++ {
		diffs = append(diffs, models.DiffPair{LeftIndex: i, RightIndex: i})
	}
	diffs = append(diffs, alignRange(a, b, prefix, len(a), prefix, len(b))...)

	assertAlignment(diffs, left, right)
	return diffs
}

// internLines maps each distinct line text to a small integer so the table
// compares ints instead of strings.
func internLines(left, right []models.Line) ([]int, []int) {
	ids := make(map[string]int, len(left)+len(right))
	intern := func(lines []models.Line) []int {
		out := make([]int, len(lines))
		for i, line := range lines {
			text := line.Text()
			id, ok := ids[text]
			if !ok {
				id = len(ids)
				ids[text] = id
			}
			out[i] = id
		}
		return out
	}
	return intern(left), intern(right)
}

// cell is the best alignment of the suffixes a[i:] and b[j:]:
// the number of pairs and, among those, the least displacement.
type cell struct {
	length int32
	cost   int64
}

func better(x, y cell) bool {
	return x.length > y.length || (x.length == y.length && x.cost < y.cost)
}

func absDiff(i, j int) int64 {
	if i > j {
		return int64(i - j)
	}
	return int64(j - i)
}

// tableCellLimit bounds the size of a full reconstruction table. Larger
// ranges are split first.
var tableCellLimit = 1 << 18

// alignRange aligns a[i0:i1] with b[j0:j1]; indices in the result are
// absolute. Ranges whose table would exceed tableCellLimit are split at the
// middle left row, at the right column where the best prefix and suffix
// alignments combine best. Lengths and costs of the two halves add up, so
// the split is exact.
func alignRange(a, b []int, i0, i1, j0, j1 int) []models.DiffPair {
	n, m := i1-i0, j1-j0
	if n == 0 || m == 0 {
		return nil
	}
	if n == 1 || (n+1)*(m+1) <= tableCellLimit {
		return alignTable(a, b, i0, i1, j0, j1)
	}

	mid := i0 + n/2
	head := forwardRow(a, b, i0, mid, j0, j1)
	tail := backwardRow(a, b, mid, i1, j0, j1)

	split, best := 0, combine(head[0], tail[0])
	for k := 1; k <= m; k++ {
		if c := combine(head[k], tail[k]); better(c, best) {
			split, best = k, c
		}
	}

	diffs := alignRange(a, b, i0, mid, j0, j0+split)
	return append(diffs, alignRange(a, b, mid, i1, j0+split, j1)...)
}

func combine(x, y cell) cell {
	return cell{length: x.length + y.length, cost: x.cost + y.cost}
}

// forwardRow returns, for every k, the best alignment of a[i0:i1] with
// b[j0:j0+k].
func forwardRow(a, b []int, i0, i1, j0, j1 int) []cell {
	m := j1 - j0
	prev := make([]cell, m+1)
	cur := make([]cell, m+1)
	for i := i0; i < i1; i++ {
		cur[0] = cell{}
		for k := 1; k <= m; k++ {
			j := j0 + k - 1
			best := prev[k]
			if c := cur[k-1]; better(c, best) {
				best = c
			}
			if a[i] == b[j] {
				match := cell{length: prev[k-1].length + 1, cost: prev[k-1].cost + absDiff(i, j)}
				if better(match, best) {
					best = match
				}
			}
			cur[k] = best
		}
		prev, cur = cur, prev
	}
	return prev
}

// backwardRow returns, for every k, the best alignment of a[i0:i1] with
// b[j0+k:j1].
func backwardRow(a, b []int, i0, i1, j0, j1 int) []cell {
	m := j1 - j0
	next := make([]cell, m+1)
	cur := make([]cell, m+1)
	for i := i1 - 1; i >= i0; i-- {
		cur[m] = cell{}
		for k := m - 1; k >= 0; k-- {
			j := j0 + k
			best := next[k]
			if c := cur[k+1]; better(c, best) {
				best = c
			}
			if a[i] == b[j] {
				match := cell{length: next[k+1].length + 1, cost: next[k+1].cost + absDiff(i, j)}
				if better(match, best) {
					best = match
				}
			}
			cur[k] = best
		}
		next, cur = cur, next
	}
	return next
}

// alignTable solves a range with a full suffix table and walks it forward.
func alignTable(a, b []int, i0, i1, j0, j1 int) []models.DiffPair {
	n, m := i1-i0, j1-j0
	width := m + 1
	table := make([]cell, (n+1)*width)
	at := func(i, j int) cell { return table[i*width+j] }

	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			best := at(i+1, j)
			if c := at(i, j+1); better(c, best) {
				best = c
			}
			if a[i0+i] == b[j0+j] {
				next := at(i+1, j+1)
				match := cell{length: next.length + 1, cost: next.cost + absDiff(i0+i, j0+j)}
				if !better(best, match) {
					best = match
				}
			}
			table[i*width+j] = best
		}
	}

	var diffs []models.DiffPair
	i, j := 0, 0
	for i < n && j < m {
		cur := at(i, j)
		if a[i0+i] == b[j0+j] {
			next := at(i+1, j+1)
			if next.length+1 == cur.length && next.cost+absDiff(i0+i, j0+j) == cur.cost {
				diffs = append(diffs, models.DiffPair{LeftIndex: i0 + i, RightIndex: j0 + j})
				i++
				j++
				continue
			}
		}
		if at(i+1, j) == cur {
			i++
		} else {
			j++
		}
	}
	return diffs
}

// assertAlignment panics if the alignment breaks its invariants. A failure
// here is a bug in Align, never a property of the input.
func assertAlignment(diffs []models.DiffPair, left, right []models.Line) {
	for k, d := range diffs {
		if d.LeftIndex < 0 || d.LeftIndex >= len(left) || d.RightIndex < 0 || d.RightIndex >= len(right) {
			panic(fmt.Sprintf("transition: pair %d (%d,%d) out of range", k, d.LeftIndex, d.RightIndex))
		}
		if k > 0 {
			prev := diffs[k-1]
			if d.LeftIndex <= prev.LeftIndex || d.RightIndex <= prev.RightIndex {
				panic(fmt.Sprintf("transition: pair %d (%d,%d) not after (%d,%d)", k, d.LeftIndex, d.RightIndex, prev.LeftIndex, prev.RightIndex))
			}
		}
		if left[d.LeftIndex].Text() != right[d.RightIndex].Text() {
			panic(fmt.Sprintf("transition: pair %d (%d,%d) joins different lines", k, d.LeftIndex, d.RightIndex))
		}
	}
}
