package cmd

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/gitops"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Re-hash tracked files and flag stale memories",
	Long: `The 'scan' command re-hashes every indexed file and reconciles its status:
missing files become deleted, changed files become dirty, and reverted files
quietly return to clean.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleScanCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(cmd *cobra.Command) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Red.Render("Project is not initialized. Run 'amygdala init' first."))
		return
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)
	spinnerInstance, _ := spinner.Start("Scanning tracked files...")

	changes, err := deps.Engine.Scan()
	spinnerInstance.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Scan failed: %v", err)))
		return
	}

	if len(changes) == 0 {
		fmt.Println(lipgloss.Green.Render("✓ All memories are up to date."))
	} else {
		for _, change := range changes {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("%s: %s → %s", change.RelativePath, change.From, change.To)))
		}
		fmt.Printf("\n%d file(s) need recapture. Run 'amygdala capture --dirty'.\n", len(changes))
	}

	reportUncaptured(deps)
}

// reportUncaptured lists files git sees as changed that have no index entry.
// Scan only reconciles what is already indexed, so these are invisible to it.
func reportUncaptured(deps *RootDependencies) {
	statuses, err := gitops.FileStatuses(deps.Engine.Root())
	if err != nil {
		return
	}
	status, err := deps.Engine.Status()
	if err != nil {
		return
	}

	indexed := make(map[string]struct{}, len(status.Entries))
	for _, entry := range status.Entries {
		indexed[entry.RelativePath] = struct{}{}
	}

	var uncaptured []string
	for path := range statuses {
		if _, ok := indexed[path]; !ok {
			uncaptured = append(uncaptured, path)
		}
	}
	if len(uncaptured) == 0 {
		return
	}
	sort.Strings(uncaptured)

	fmt.Println()
	fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("%d changed file(s) have no memory yet:", len(uncaptured))))
	for _, path := range uncaptured {
		fmt.Println(lipgloss.Gray.Render("  " + path))
	}
}
