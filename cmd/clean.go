package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all amygdala data for the project",
	Long: `The 'clean' command deletes the .amygdala directory: the index, every
memory document, the configuration, and session logs. Source files are never
touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		handleCleanCommand(cmd, force)
	},
}

func init() {
	cleanCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(cleanCmd)
}

func handleCleanCommand(cmd *cobra.Command, force bool) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Yellow.Render("Nothing to clean, project is not initialized."))
		return
	}

	if !force {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Delete all memories and the index for this project? (y/N): ")
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println(lipgloss.Yellow.Render("Clean cancelled."))
			return
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)
	spinnerInstance, _ := spinner.Start("Removing project data...")

	err := deps.Engine.Clean()
	spinnerInstance.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error cleaning project: %v", err)))
		return
	}
	fmt.Println(lipgloss.Green.Render("✓ All amygdala data removed."))
}
