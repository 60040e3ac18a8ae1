package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/providers"
)

var touchCmd = &cobra.Command{
	Use:   "touch <path>...",
	Short: "Mark tracked files dirty without re-hashing",
	Long: `The 'touch' command forces index entries to dirty. It is the hook entry
point for editors and file watchers: a save notification marks the file
stale immediately and the next capture refreshes its memory.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleTouchCommand(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(touchCmd)
}

func handleTouchCommand(cmd *cobra.Command, paths []string) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Red.Render("Project is not initialized. Run 'amygdala init' first."))
		return
	}

	var dirty []string
	for _, path := range paths {
		marked, err := deps.Engine.MarkDirty(path)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error marking %s: %v", path, err)))
			continue
		}
		if !marked {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("%s is not tracked, capture it first", path)))
			continue
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s marked dirty", path)))
		dirty = append(dirty, path)
	}

	if !deps.Config.AutoCapture || len(dirty) == 0 {
		return
	}

	// auto_capture refreshes touched files right away.
	summarizer, err := providers.New(deps.Config.Provider)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error creating provider: %v", err)))
		return
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := deps.Engine.Capture(ctx, dirty, deps.Config.DefaultGranularity, summarizer)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Auto capture failed: %v", err)))
		return
	}
	for _, path := range report.Captured {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s recaptured", path)))
	}
	for _, failure := range report.Failed {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ %s: %v", failure.Path, failure.Err)))
	}
}
