package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show memory freshness for the project",
	Long: `The 'status' command summarizes the index: how many files are tracked,
how many memories are stale, and when the last scan and capture happened.`,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		handleStatusCommand(cmd, asJSON, verbose)
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Emit machine-readable JSON")
	statusCmd.Flags().BoolP("verbose", "v", false, "List every tracked file with its status")

	rootCmd.AddCommand(statusCmd)
}

func handleStatusCommand(cmd *cobra.Command, asJSON, verbose bool) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Red.Render("Project is not initialized. Run 'amygdala init' first."))
		return
	}

	status, err := deps.Engine.Status()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading index: %v", err)))
		return
	}

	if asJSON {
		if !verbose {
			status.Entries = nil
		}
		data, marshalErr := json.MarshalIndent(status, "", "  ")
		if marshalErr != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error encoding status: %v", marshalErr)))
			return
		}
		fmt.Println(string(data))
		return
	}

	header := fmt.Sprintf("Tracked files: %d", status.TotalFiles)
	if status.Branch != "" {
		header = fmt.Sprintf("Branch: %s\n%s", status.Branch, header)
	}
	fmt.Println(lipgloss.BoxStyle.Render(header))
	fmt.Printf("  %s %d\n", lipgloss.Green.Render("clean:"), status.CleanFiles)
	fmt.Printf("  %s %d\n", lipgloss.Yellow.Render("dirty:"), status.DirtyFiles)
	if status.NewFiles > 0 {
		fmt.Printf("  %s %d\n", lipgloss.Blue.Render("new:"), status.NewFiles)
	}
	if status.DeletedFiles > 0 {
		fmt.Printf("  %s %d\n", lipgloss.Red.Render("deleted:"), status.DeletedFiles)
	}
	if status.ExcludedFiles > 0 {
		fmt.Printf("  %s %d\n", lipgloss.Gray.Render("excluded:"), status.ExcludedFiles)
	}
	if status.LastScanAt != "" {
		fmt.Printf("  last scan: %s\n", status.LastScanAt)
	}
	if status.LastCaptureAt != "" {
		fmt.Printf("  last capture: %s\n", status.LastCaptureAt)
	}

	if verbose {
		fmt.Println()
		for _, entry := range status.Entries {
			line := fmt.Sprintf("%-8s %s", entry.Status, entry.RelativePath)
			switch entry.Status {
			case models.StatusClean:
				fmt.Println(lipgloss.Green.Render(line))
			case models.StatusDirty:
				fmt.Println(lipgloss.Yellow.Render(line))
			case models.StatusDeleted:
				fmt.Println(lipgloss.Red.Render(line))
			default:
				fmt.Println(lipgloss.Gray.Render(line))
			}
		}
	}
}
