package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/config"
	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/engine"
	"github.com/sinanata/amygdala/gitops"
	"github.com/sinanata/amygdala/logging"
	"github.com/sinanata/amygdala/models"
)

// RootDependencies holds the shared objects every subcommand needs.
type RootDependencies struct {
	Cwd    string
	Config *models.Config
	Engine *engine.Engine
	Logger *logging.Logger
}

var rootCmd = &cobra.Command{
	Use:   "amygdala",
	Short: "Incremental memory layer for your codebase",
	Long: `Amygdala maintains per-file natural-language summaries of a source tree.
Each summary is keyed by the file's content hash, so the index always knows
which memories are stale and which are current. Summaries are generated by a
configurable AI provider and stored as plain Markdown under .amygdala/.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		os.Exit(1)
	}
}

// handleRootCommand resolves the project root, loads configuration, and
// wires up the engine. Returns nil after printing the error when setup
// fails.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	// Anchor at the repository root when inside a git checkout.
	root := cwd
	if repoRoot, rootErr := gitops.RepoRoot(cwd); rootErr == nil {
		root = repoRoot
	}

	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error loading config: %v", err)))
		return nil
	}

	deps := &RootDependencies{Cwd: cwd, Config: cfg}

	var opts []engine.Option
	if info, statErr := os.Stat(constants.AmygdalaDir(root)); statErr == nil && info.IsDir() {
		if logger, logErr := logging.New(root); logErr == nil {
			deps.Logger = logger
			opts = append(opts, engine.WithLogger(logger))
		}
	}
	deps.Engine = engine.New(root, cfg, opts...)
	return deps
}
