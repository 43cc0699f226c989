package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/AstroAir/diffani-sub002/config"
	"github.com/AstroAir/diffani-sub002/doc_builder"
	"github.com/AstroAir/diffani-sub002/tokenizer"
)

// RootDependencies holds the services shared by all subcommands.
type RootDependencies struct {
	Cwd       string
	Config    *config.Config
	Logger    *pterm.Logger
	Tokenizer *tokenizer.Tokenizer
	Builder   *doc_builder.DocBuilder
}

var rootCmd = &cobra.Command{
	Use:   "diffani",
	Short: "Build animated code transitions from a sequence of code snapshots.",
	Long: `diffani tokenizes every snapshot of a document and aligns the lines of
each pair of consecutive snapshots, so that a renderer can animate which
lines stay, which disappear and which appear.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			deps, err := handleRootCommand(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), deps.Config.Version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// handleRootCommand loads the configuration and wires the pipeline.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	engine, err := tokenizer.EngineByName(cfg.Engine)
	if err != nil {
		return nil, err
	}
	policy, err := tokenizer.ParseFallbackPolicy(cfg.FallbackPolicy)
	if err != nil {
		return nil, err
	}

	cache := tokenizer.DefaultCache()
	if !cfg.EnableCache {
		cache = tokenizer.NewCache()
	}

	tok := tokenizer.NewTokenizer(&tokenizer.TokenizerConfig{
		Engine:         engine,
		Cache:          cache,
		FallbackPolicy: policy,
		Logger:         logger,
	})

	logger.Debug("configuration loaded", logger.Args(
		"engine", engine.Name(),
		"fallback_policy", policy,
		"shared_cache", cfg.EnableCache,
	))

	return &RootDependencies{
		Cwd:       cwd,
		Config:    cfg,
		Logger:    logger,
		Tokenizer: tok,
		Builder: doc_builder.NewDocBuilder(&doc_builder.DocBuilderConfig{
			Tokenizer: tok,
			Logger:    logger,
		}),
	}, nil
}
