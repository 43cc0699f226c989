package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AstroAir/diffani-sub002/constants/lipgloss"
	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/utils"
)

var showCmd = &cobra.Command{
	Use:   "show <document>",
	Short: "Print the transitions of a document in the terminal.",
	Long: `The 'show' command builds a document and prints its transitions: kept
lines are syntax highlighted, removed lines are marked with '-' and added
lines with '+'. Use --at to print only the frame active at a playback time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleShowCommand(cmd, rootDependencies, args[0])
	},
}

func init() {
	showCmd.Flags().IntP("transition", "t", -1, "Only print the transition with this index")
	showCmd.Flags().Float64("at", -1, "Print the frame at this playback time in milliseconds")
	showCmd.Flags().BoolP("side-by-side", "s", false, "Print left and right lines in two columns")
	showCmd.Flags().IntP("width", "w", 48, "Column width for side-by-side output")

	rootCmd.AddCommand(showCmd)
}

func handleShowCommand(cmd *cobra.Command, rootDependencies *RootDependencies, path string) error {
	raw, err := utils.LoadRawDoc(path)
	if err != nil {
		return err
	}
	doc, err := rootDependencies.Builder.Build(raw)
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("transition")
	at, _ := cmd.Flags().GetFloat64("at")
	sideBySide, _ := cmd.Flags().GetBool("side-by-side")
	width, _ := cmd.Flags().GetInt("width")

	opts := utils.RenderOptions{
		Language: raw.Language,
		Style:    rootDependencies.Config.Style,
		Theme:    rootDependencies.Config.Theme,
		Width:    width,
	}
	out := cmd.OutOrStdout()

	if at >= 0 {
		pos := doc.PositionAt(at)
		if !pos.Animating() {
			fmt.Fprintln(out, lipgloss.Info.Render(fmt.Sprintf("snapshot %d (%s)", pos.SnapshotIndex, raw.Snapshots[pos.SnapshotIndex].ID)))
			return utils.RenderSnapshot(out, doc.Snapshots[pos.SnapshotIndex], opts)
		}
		index = pos.SnapshotIndex - 1
		fmt.Fprintln(out, lipgloss.Gray.Render(fmt.Sprintf("%.0f%% into transition %d", pos.Progress*100, index)))
	}

	if index >= len(doc.Transitions) {
		return fmt.Errorf("transition %d out of range: document has %d", index, len(doc.Transitions))
	}
	if len(doc.Transitions) == 0 {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Document has a single snapshot, nothing to transition."))
		return utils.RenderSnapshot(out, doc.Snapshots[0], opts)
	}

	for i, t := range doc.Transitions {
		if index >= 0 && i != index {
			continue
		}
		header := fmt.Sprintf("%s -> %s", raw.Snapshots[i].ID, raw.Snapshots[i+1].ID)
		fmt.Fprintln(out, lipgloss.BoxStyle.Render(header))
		if err := renderTransition(cmd, t, opts, sideBySide); err != nil {
			return err
		}
	}
	return nil
}

func renderTransition(cmd *cobra.Command, t models.Transition, opts utils.RenderOptions, sideBySide bool) error {
	if sideBySide {
		return utils.RenderSideBySide(cmd.OutOrStdout(), t, opts)
	}
	return utils.RenderTransition(cmd.OutOrStdout(), t, opts)
}
