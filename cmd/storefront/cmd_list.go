package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/ui"
)

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only show apps in this category")
	rootCmd.AddCommand(listCmd)
}

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the apps in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newClient(cfg)
		apps, err := client.Apps(context.Background())
		if err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}

		shown := 0
		for _, app := range apps {
			if listCategory != "" && app.Category != listCategory {
				continue
			}
			shown++

			mark := ui.Dim.Render("-")
			if app.Installed {
				mark = ui.Green.Render("*")
			}
			fmt.Printf("%s %s %s %s\n",
				mark,
				ui.Dim.Render(fmt.Sprintf("%3d", app.ID)),
				ui.White.Render(fmt.Sprintf("%-24s", app.Name)),
				ui.Dim.Render(app.Category))
		}

		fmt.Println()
		fmt.Println(ui.Dim.Render(fmt.Sprintf("%d apps (%s = installed)", shown, ui.Green.Render("*"))))
		return nil
	},
}
