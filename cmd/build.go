package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/AstroAir/diffani-sub002/constants/lipgloss"
	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/utils"
)

var buildCmd = &cobra.Command{
	Use:   "build <document>...",
	Short: "Build documents and print a summary of their snapshots and transitions.",
	Long: `The 'build' command loads one or more YAML or JSON documents, tokenizes
every snapshot and aligns each pair of consecutive snapshots. For every
document it prints the line count of each snapshot and how many lines are
kept, removed and added by the transition into it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleBuildCommand(cmd, rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func handleBuildCommand(cmd *cobra.Command, rootDependencies *RootDependencies, paths []string) error {
	raws, err := loadRawDocs(paths)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).
		WithRemoveWhenDone(true).
		Start(fmt.Sprintf("Building %d document(s)...", len(raws)))

	docs, err := rootDependencies.Builder.BuildAll(cmd.Context(), raws)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, doc := range docs {
		header := fmt.Sprintf("%s (%d snapshots, %.1fs)", paths[i], len(doc.Snapshots), doc.Raw.TotalDuration()/1000)
		fmt.Fprintln(out, lipgloss.Info.Render(header))
		if err := printDocSummary(out, doc); err != nil {
			return err
		}
	}
	return nil
}

// loadRawDocs reads every document and reports all unreadable ones at once.
func loadRawDocs(paths []string) ([]*models.RawDoc, error) {
	var errs error
	raws := make([]*models.RawDoc, 0, len(paths))
	for _, path := range paths {
		raw, err := utils.LoadRawDoc(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		raws = append(raws, raw)
	}
	if errs != nil {
		return nil, errs
	}
	return raws, nil
}

func printDocSummary(w io.Writer, doc *models.Doc) error {
	data := pterm.TableData{{"#", "ID", "Lines", "Tokens", "Kept", "Removed", "Added"}}
	for i, snap := range doc.Snapshots {
		kept, removed, added := "-", "-", "-"
		if i > 0 {
			t := doc.Transitions[i-1]
			kept = strconv.Itoa(len(t.Diffs))
			removed = strconv.Itoa(len(t.UnmatchedLeft()))
			added = strconv.Itoa(len(t.UnmatchedRight()))
		}
		data = append(data, []string{
			strconv.Itoa(i),
			doc.Raw.Snapshots[i].ID,
			strconv.Itoa(snap.LinesCount + 1),
			strconv.Itoa(len(snap.Tokens)),
			kept,
			removed,
			added,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
