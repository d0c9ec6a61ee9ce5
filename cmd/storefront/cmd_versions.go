package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/ui"
)

func init() {
	rootCmd.AddCommand(versionsCmd)
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Show installed and latest versions of the catalog apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := newClient(cfg)
		reg, rc := newRegistry(cfg, client)

		if err := rc.Refresh(ctx); err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}

		for _, app := range reg.Apps() {
			if !app.Installed {
				continue
			}
			v := reg.Version(app.ID)

			current := ui.White.Render(v.CurrentVersion)
			if v.CurrentVersion == api.UnknownVersion {
				current = ui.Dim.Render(v.CurrentVersion)
			}
			line := ui.Cyan.Render(fmt.Sprintf("%-24s", app.Name)) + " " + current
			if v.UpdateAvailable {
				line += ui.Yellow.Render(" -> " + v.LatestVersion)
			}
			fmt.Println(line)
		}
		return nil
	},
}
