package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AstroAir/diffani-sub002/utils"
)

var fromGitCmd = &cobra.Command{
	Use:   "from-git <file>",
	Short: "Create a document from the git history of a file.",
	Long: `The 'from-git' command reads every committed revision of a file, oldest
first, and prints a YAML document with one snapshot per revision.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("max")

		raw, err := utils.NewGitOperations(rootDependencies.Cwd).RawDocFromHistory(args[0], limit)
		if err != nil {
			return err
		}
		rootDependencies.Logger.Info("read git history", rootDependencies.Logger.Args("file", args[0], "revisions", len(raw.Snapshots)))
		return utils.WriteRawDoc(cmd.OutOrStdout(), raw)
	},
}

var fromDirCmd = &cobra.Command{
	Use:   "from-dir <directory>",
	Short: "Create a document from the step files in a directory.",
	Long: `The 'from-dir' command turns every file of a directory into a snapshot,
ordered by file name, and prints the resulting YAML document. Hidden,
backup and configuration files are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := utils.RawDocFromDir(args[0])
		if err != nil {
			return err
		}
		return utils.WriteRawDoc(cmd.OutOrStdout(), raw)
	},
}

func init() {
	fromGitCmd.Flags().IntP("max", "n", 0, "Only use the most recent n revisions")

	rootCmd.AddCommand(fromGitCmd)
	rootCmd.AddCommand(fromDirCmd)
}
