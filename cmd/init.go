package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/models"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize amygdala in the current project",
	Long: `The 'init' command creates the .amygdala directory with a default
config.toml, an empty index, and the memory storage tree. Run it once at the
root of a project before capturing.`,
	Run: func(cmd *cobra.Command, args []string) {
		provider, _ := cmd.Flags().GetString("provider")
		model, _ := cmd.Flags().GetString("model")
		granularity, _ := cmd.Flags().GetString("granularity")
		profileNames, _ := cmd.Flags().GetStringSlice("profile")
		handleInitCommand(cmd, provider, model, granularity, profileNames)
	},
}

func init() {
	initCmd.Flags().String("provider", "", "Summarization provider (anthropic, openai, ollama, gemini)")
	initCmd.Flags().String("model", "", "Model identifier passed to the provider")
	initCmd.Flags().StringP("granularity", "g", "", "Default summary granularity (simple, medium, high)")
	initCmd.Flags().StringSlice("profile", nil, "Project profiles to enable (unity, unreal, python, node, react, nextjs)")

	rootCmd.AddCommand(initCmd)
}

func handleInitCommand(cmd *cobra.Command, provider, model, granularity string, profileNames []string) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}

	if deps.Engine.Initialized() {
		fmt.Println(lipgloss.Yellow.Render("Project is already initialized."))
		return
	}

	cfg := deps.Config
	if provider != "" {
		cfg.Provider.Name = models.ProviderName(provider)
	}
	if model != "" {
		cfg.Provider.Model = model
	}
	if granularity != "" {
		g := models.Granularity(granularity)
		if !g.Valid() {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Invalid granularity %q, expected simple, medium, or high", granularity)))
			return
		}
		cfg.DefaultGranularity = g
	}
	if len(profileNames) > 0 {
		cfg.Profiles = profileNames
	}

	if err := deps.Engine.Init(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error initializing project: %v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Initialized amygdala at %s", deps.Engine.Root())))
	fmt.Printf("  Provider: %s (%s)\n", cfg.Provider.Name, cfg.Provider.Model)
	fmt.Printf("  Granularity: %s\n", cfg.DefaultGranularity)
	if len(cfg.Profiles) > 0 {
		fmt.Printf("  Profiles: %v\n", cfg.Profiles)
	}
}
