package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/ui"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-verify installed state against the backend",
	Long:  "Re-fetches the catalog, asks the backend to re-check which apps are actually installed, and refreshes version information.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := newClient(cfg)
		reg, rc := newRegistry(cfg, client)

		if err := rc.Sync(ctx); err != nil {
			return fmt.Errorf("syncing: %w", err)
		}

		installed := 0
		apps := reg.Apps()
		for _, app := range apps {
			if app.Installed {
				installed++
			}
		}
		fmt.Println(ui.Green.Render("Synced ") +
			ui.White.Render(fmt.Sprintf("%d apps", len(apps))) +
			ui.Dim.Render(fmt.Sprintf(", %d installed", installed)))
		return nil
	},
}
