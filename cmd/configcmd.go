package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sinanata/amygdala/config"
	"github.com/sinanata/amygdala/constants/lipgloss"
	"github.com/sinanata/amygdala/models"
	"github.com/sinanata/amygdala/providers"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update project configuration",
	Long: `The 'config' command prints the resolved configuration. With --set-provider,
--set-model, or --set-granularity it updates config.toml in place. API keys
are read from the environment and never written to disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		provider, _ := cmd.Flags().GetString("set-provider")
		model, _ := cmd.Flags().GetString("set-model")
		granularity, _ := cmd.Flags().GetString("set-granularity")
		handleConfigCommand(cmd, provider, model, granularity)
	},
}

func init() {
	configCmd.Flags().String("set-provider", "", "Change the summarization provider")
	configCmd.Flags().String("set-model", "", "Change the provider model")
	configCmd.Flags().String("set-granularity", "", "Change the default granularity")

	rootCmd.AddCommand(configCmd)
}

func handleConfigCommand(cmd *cobra.Command, provider, model, granularity string) {
	deps := handleRootCommand(cmd)
	if deps == nil {
		return
	}
	if !deps.Engine.Initialized() {
		fmt.Println(lipgloss.Red.Render("Project is not initialized. Run 'amygdala init' first."))
		return
	}

	cfg := deps.Config
	changed := false
	if provider != "" {
		name := models.ProviderName(provider)
		if _, err := providers.New(models.ProviderConfig{Name: name, Model: cfg.Provider.Model}); err != nil {
			fmt.Println(lipgloss.Red.Render(err.Error()))
			return
		}
		cfg.Provider.Name = name
		changed = true
	}
	if model != "" {
		cfg.Provider.Model = model
		changed = true
	}
	if granularity != "" {
		g := models.Granularity(granularity)
		if !g.Valid() {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Invalid granularity %q, expected simple, medium, or high", granularity)))
			return
		}
		cfg.DefaultGranularity = g
		changed = true
	}

	if changed {
		if err := config.Save(deps.Engine.Root(), cfg); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error saving config: %v", err)))
			return
		}
		fmt.Println(lipgloss.Green.Render("✓ Configuration updated."))
	}

	keyStatus := lipgloss.Red.Render("not set")
	if config.ResolveAPIKey(cfg.Provider.Name) != "" {
		keyStatus = lipgloss.Green.Render("set")
	} else if cfg.Provider.Name == models.ProviderOllama {
		keyStatus = lipgloss.Gray.Render("not required")
	}

	fmt.Println(lipgloss.BoxStyle.Render(fmt.Sprintf("Project: %s", deps.Engine.Root())))
	fmt.Printf("  provider: %s\n", cfg.Provider.Name)
	fmt.Printf("  model: %s\n", cfg.Provider.Model)
	fmt.Printf("  api key: %s\n", keyStatus)
	fmt.Printf("  granularity: %s\n", cfg.DefaultGranularity)
	if len(cfg.Profiles) > 0 {
		fmt.Printf("  profiles: %v\n", cfg.Profiles)
	}
	fmt.Printf("  auto capture: %t\n", cfg.AutoCapture)
	fmt.Printf("  max file size: %d bytes\n", cfg.MaxFileSizeBytes)
	fmt.Printf("  exclude patterns: %d\n", len(cfg.ExcludePatterns))
}
