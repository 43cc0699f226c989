package utils

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-runewidth"

	"github.com/AstroAir/diffani-sub002/constants/lipgloss"
	"github.com/AstroAir/diffani-sub002/models"
)

// RenderOptions controls how transitions are printed.
type RenderOptions struct {
	Language string
	Style    string // chroma formatter, e.g. terminal256
	Theme    string // chroma style, e.g. dracula
	Width    int    // column width for side-by-side output
}

// RenderTransition prints a transition as a unified listing: kept lines are
// syntax highlighted, removed lines are prefixed with '-' in red and added
// lines with '+' in green.
func RenderTransition(w io.Writer, t models.Transition, opts RenderOptions) error {
	li, ri := 0, 0
	for _, d := range t.Diffs {
		for ; li < d.LeftIndex; li++ {
			if _, err := fmt.Fprintln(w, lipgloss.Red.Render("- "+t.Left[li].Text())); err != nil {
				return err
			}
		}
		for ; ri < d.RightIndex; ri++ {
			if _, err := fmt.Fprintln(w, lipgloss.Green.Render("+ "+t.Right[ri].Text())); err != nil {
				return err
			}
		}
		if err := highlightLine(w, "  ", t.Right[ri].Text(), opts); err != nil {
			return err
		}
		li++
		ri++
	}
	for ; li < len(t.Left); li++ {
		if _, err := fmt.Fprintln(w, lipgloss.Red.Render("- "+t.Left[li].Text())); err != nil {
			return err
		}
	}
	for ; ri < len(t.Right); ri++ {
		if _, err := fmt.Fprintln(w, lipgloss.Green.Render("+ "+t.Right[ri].Text())); err != nil {
			return err
		}
	}
	return nil
}

// RenderSideBySide prints left and right lines in two columns, with kept
// lines on the same row.
func RenderSideBySide(w io.Writer, t models.Transition, opts RenderOptions) error {
	width := opts.Width
	if width <= 0 {
		width = 40
	}
	cell := func(s string) string {
		s = strings.ReplaceAll(s, "\t", "    ")
		return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
	}

	row := func(left, right string, marker string) error {
		_, err := fmt.Fprintf(w, "%s %s %s\n", left, marker, right)
		return err
	}

	blank := strings.Repeat(" ", width)
	li, ri := 0, 0
	flush := func(leftEnd, rightEnd int) error {
		for li < leftEnd || ri < rightEnd {
			left, right := blank, blank
			if li < leftEnd {
				left = lipgloss.Red.Render(cell(t.Left[li].Text()))
				li++
			}
			if ri < rightEnd {
				right = lipgloss.Green.Render(cell(t.Right[ri].Text()))
				ri++
			}
			if err := row(left, right, "|"); err != nil {
				return err
			}
		}
		return nil
	}

	for _, d := range t.Diffs {
		if err := flush(d.LeftIndex, d.RightIndex); err != nil {
			return err
		}
		text := cell(t.Left[li].Text())
		if err := row(text, text, "="); err != nil {
			return err
		}
		li++
		ri++
	}
	return flush(len(t.Left), len(t.Right))
}

// RenderSnapshot prints the code of a snapshot with syntax highlighting.
func RenderSnapshot(w io.Writer, s models.Snapshot, opts RenderOptions) error {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, s.Code(), opts.Language, opts.Style, opts.Theme); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func highlightLine(w io.Writer, prefix, line string, opts RenderOptions) error {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, line+"\n", opts.Language, opts.Style, opts.Theme); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, prefix+buf.String())
	return err
}
