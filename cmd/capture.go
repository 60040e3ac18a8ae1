package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/gitops"
	"github.com/sinanata/amygdala/models"
	"github.com/sinanata/amygdala/providers"
)

var captureCmd = &cobra.Command{
	Use:   "capture [paths...]",
	Short: "Generate memories for files",
	Long: `The 'capture' command summarizes files through the configured provider and
stores the result as memory documents. With explicit paths it captures those
files; with --dirty it recaptures everything the index marks stale; with
--all it captures every git-tracked file.`,
	Run: func(cmd *cobra.Command, args []string) {
		all, _ := cmd.Flags().GetBool("all")
		dirty, _ := cmd.Flags().GetBool("dirty")
		changed, _ := cmd.Flags().GetBool("changed")
		granularity, _ := cmd.Flags().GetString("granularity")
		handleCaptureCommand(cmd, args, all, dirty, changed, granularity)
	},
}

func init() {
	captureCmd.Flags().BoolP("all", "a", false, "Capture every git-tracked file")
	captureCmd.Flags().Bool("dirty", false, "Recapture only files marked dirty")
	captureCmd.Flags().Bool("changed", false, "Capture files git reports as changed in the working tree")
	captureCmd.Flags().StringP("granularity", "g", "", "Summary granularity for this batch (simple, medium, high)")

	rootCmd.AddCommand(captureCmd)
}

func handleCaptureCommand(cmd *cobra.Command, paths []string, all, dirty, changed bool, granularityFlag string) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Red.Render("Project is not initialized. Run 'amygdala init' first."))
		return
	}
	if len(paths) == 0 && !all && !dirty && !changed {
		fmt.Println(lipgloss.Yellow.Render("Nothing to capture. Pass file paths, --dirty, --changed, or --all."))
		return
	}

	granularity := deps.Config.DefaultGranularity
	if granularityFlag != "" {
		g := models.Granularity(granularityFlag)
		if !g.Valid() {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Invalid granularity %q, expected simple, medium, or high", granularityFlag)))
			return
		}
		granularity = g
	}

	if changed {
		changedPaths, err := gitops.DiffNames(deps.Engine.Root(), false)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error listing changed files: %v", err)))
			return
		}
		if len(changedPaths) == 0 {
			fmt.Println(lipgloss.Green.Render("✓ Working tree has no changes."))
			return
		}
		paths = append(paths, changedPaths...)
	}

	if dirty {
		dirtyPaths, err := deps.Engine.DirtyFiles()
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error listing dirty files: %v", err)))
			return
		}
		if len(dirtyPaths) == 0 && len(paths) == 0 {
			fmt.Println(lipgloss.Green.Render("✓ No dirty files, memories are up to date."))
			return
		}
		paths = append(paths, dirtyPaths...)
	}

	summarizer, err := providers.New(deps.Config.Provider)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error creating provider: %v", err)))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)
	spinnerInstance, _ := spinner.Start(fmt.Sprintf("Capturing with %s (%s)...", summarizer.Name(), summarizer.Model()))

	report, err := deps.Engine.Capture(ctx, paths, granularity, summarizer)
	spinnerInstance.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Capture failed: %v", err)))
		return
	}

	for _, path := range report.Captured {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s", path)))
	}
	for _, failure := range report.Failed {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ %s: %v", failure.Path, failure.Err)))
	}
	fmt.Printf("\nCaptured %d file(s), %d failed.\n", len(report.Captured), len(report.Failed))
}
