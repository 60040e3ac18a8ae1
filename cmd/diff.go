package cmd

import (
	"fmt"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/capture"
	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/gitops"
)

var diffCmd = &cobra.Command{
	Use:   "diff [path]",
	Short: "Show per-file change stats from the working tree diff",
	Long: `The 'diff' command parses the git diff of the working tree and prints
per-file hunk and line counts. Useful for seeing what a scan would flag
before running it.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		staged, _ := cmd.Flags().GetBool("staged")
		var path string
		if len(args) > 0 {
			path = args[0]
		}
		handleDiffCommand(cmd, path, staged)
	},
}

func init() {
	diffCmd.Flags().Bool("staged", false, "Diff the staging area instead of the working tree")

	rootCmd.AddCommand(diffCmd)
}

func handleDiffCommand(cmd *cobra.Command, path string, staged bool) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}

	raw, err := gitops.Diff(deps.Engine.Root(), staged, path)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error running git diff: %v", err)))
		return
	}

	fileDiffs := gitops.ParseDiff(raw)
	if len(fileDiffs) == 0 {
		fmt.Println(lipgloss.Green.Render("✓ No changes."))
		return
	}

	totalAdded, totalRemoved := 0, 0
	for _, fd := range fileDiffs {
		added, removed := fd.AddedLines(), fd.RemovedLines()
		totalAdded += added
		totalRemoved += removed

		label := fd.Path
		switch {
		case fd.IsNew:
			label += " (new)"
		case fd.IsDeleted:
			label += " (deleted)"
		case fd.IsRenamed:
			label += fmt.Sprintf(" (renamed from %s)", fd.OldPath)
		}
		fmt.Printf("%s  %s\n", lipgloss.Info.Render(label), lipgloss.Gray.Render(diffLanguage(fd.Path)))
		fmt.Printf("  %d hunk(s), %s %s\n",
			len(fd.Hunks),
			lipgloss.Green.Render(fmt.Sprintf("+%d", added)),
			lipgloss.Red.Render(fmt.Sprintf("-%d", removed)))
	}
	fmt.Printf("\n%d file(s) changed, %s %s\n",
		len(fileDiffs),
		lipgloss.Green.Render(fmt.Sprintf("+%d", totalAdded)),
		lipgloss.Red.Render(fmt.Sprintf("-%d", totalRemoved)))
}

// diffLanguage names the file's language for display, falling back to lexer
// detection for extensions outside the base map.
func diffLanguage(path string) string {
	if lang := capture.DetectLanguage(path, nil); lang != "" {
		return lang
	}
	if lexer := lexers.Match(path); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
