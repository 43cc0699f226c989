package cmd

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/AstroAir/diffani-sub002/constants/lipgloss"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <document>...",
	Short: "Build documents and report tokenizer cache statistics.",
	Long: `The 'stats' command builds the given documents and prints how often the
tokenizer cache was hit. Snapshots that repeat the code of an earlier
snapshot, in the same or another document, are tokenized only once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleStatsCommand(cmd, rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func handleStatsCommand(cmd *cobra.Command, rootDependencies *RootDependencies, paths []string) error {
	raws, err := loadRawDocs(paths)
	if err != nil {
		return err
	}

	cache := rootDependencies.Tokenizer.Cache()
	cache.ResetPerformanceStats()

	if _, err := rootDependencies.Builder.BuildAll(cmd.Context(), raws); err != nil {
		return err
	}

	stats := cache.GetPerformanceStats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := pterm.TableData{{"Metric", "Value"}}
	for _, k := range keys {
		data = append(data, []string{k, fmt.Sprint(stats[k])})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, lipgloss.Info.Render("Tokenizer Cache Statistics:"))
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}
