package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/config"
	"github.com/inertz/storefront/internal/ui"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetServerCmd)
	configCmd.AddCommand(configSetModeCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify the client configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fmt.Println(ui.Cyan.Render("Server:          ") + ui.White.Render(cfg.ServerURL))
		fmt.Println(ui.Cyan.Render("Install mode:    ") + ui.White.Render(cfg.Mode))
		fmt.Println(ui.Cyan.Render("Request timeout: ") + ui.White.Render(fmt.Sprintf("%ds", cfg.RequestTimeoutSecs)))
		fmt.Println(ui.Cyan.Render("Install timeout: ") + ui.White.Render(fmt.Sprintf("%ds", cfg.InstallTimeoutSecs)))
		fmt.Println(ui.Cyan.Render("Log cap:         ") + ui.White.Render(fmt.Sprintf("%d chars", cfg.LogCap)))
		fmt.Println(ui.Cyan.Render("History depth:   ") + ui.White.Render(fmt.Sprintf("%d", cfg.HistoryDepth)))
		fmt.Println()
		fmt.Println(ui.Dim.Render("Config file: " + flagConfig))
		return nil
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Point the client at a different backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(func(cfg *config.Config) {
			cfg.ServerURL = args[0]
		})
	},
}

var configSetModeCmd = &cobra.Command{
	Use:   "set-mode <stream|blocking>",
	Short: "Select the install mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(func(cfg *config.Config) {
			cfg.Mode = args[0]
		})
	},
}

func updateConfig(mutate func(*config.Config)) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mutate(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(flagConfig); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println(ui.Green.Render("Saved ") + ui.Dim.Render(flagConfig))
	return nil
}
