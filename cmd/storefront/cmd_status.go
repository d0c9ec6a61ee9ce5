package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/ui"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newClient(cfg)
		fmt.Println(ui.Cyan.Render("Server: ") + ui.White.Render(client.BaseURL()))

		if err := client.Health(context.Background()); err != nil {
			fmt.Println(ui.Red.Render("Status: unreachable"))
			return err
		}
		fmt.Println(ui.Green.Render("Status: ok"))
		return nil
	},
}
