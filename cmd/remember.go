package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/models"
)

var rememberCmd = &cobra.Command{
	Use:   "remember <path>",
	Short: "Store a pre-written summary for a file",
	Long: `The 'remember' command stores an externally produced summary without
calling a provider. The summary text comes from --text or from stdin. Only
file existence is checked; use it when a summary already exists, for example
from a code review or an editor session.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text, _ := cmd.Flags().GetString("text")
		granularity, _ := cmd.Flags().GetString("granularity")
		handleRememberCommand(cmd, args[0], text, granularity)
	},
}

func init() {
	rememberCmd.Flags().StringP("text", "t", "", "Summary text (reads stdin when omitted)")
	rememberCmd.Flags().StringP("granularity", "g", "", "Granularity to record (simple, medium, high)")

	rootCmd.AddCommand(rememberCmd)
}

func handleRememberCommand(cmd *cobra.Command, path, text, granularityFlag string) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Red.Render("Project is not initialized. Run 'amygdala init' first."))
		return
	}

	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading stdin: %v", err)))
			return
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		fmt.Println(lipgloss.Red.Render("Summary text is empty. Pass --text or pipe it on stdin."))
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

	entry, err := deps.Engine.StoreSummary(path, text, granularity)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error storing summary: %v", err)))
		return
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Remembered %s (%s)", entry.RelativePath, entry.MemoryPath)))
}
