package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/ui"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <id|name>",
	Short: "Launch an installed app on the backend host",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := newClient(cfg)

		apps, err := client.Apps(ctx)
		if err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}
		app, err := resolveApp(apps, args[0])
		if err != nil {
			return err
		}

		res, err := client.Open(ctx, app.ID)
		if err != nil {
			return fmt.Errorf("opening %s: %w", app.Name, err)
		}

		switch {
		case res.Status == api.StatusOK:
			fmt.Println(ui.Green.Render("Launched ") + ui.White.Render(app.Name))
		case res.Error != "":
			return fmt.Errorf("could not open %s: %s", app.Name, res.Error)
		case res.Output != "":
			fmt.Println(ui.Yellow.Render("Open reported: ") + ui.Dim.Render(res.Output))
		default:
			fmt.Println(ui.Yellow.Render("Open request sent for ") + ui.White.Render(app.Name))
		}
		return nil
	},
}
