package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/ui"
)

func init() {
	addCmd.Flags().StringVar(&addReq.Name, "name", "", "display name")
	addCmd.Flags().StringVar(&addReq.Command, "command", "", "winget package id")
	addCmd.Flags().StringVar(&addReq.Description, "description", "", "short description")
	addCmd.Flags().StringVar(&addReq.Category, "category", "", "catalog category")
	addCmd.Flags().StringVar(&addReq.Launch, "launch", "", "executable to launch the app")
	addCmd.Flags().StringVar(&addReq.Icon, "icon", "", "icon URL")
	addCmd.Flags().StringVar(&addReq.Homepage, "homepage", "", "homepage URL")
	addCmd.Flags().StringVar(&addReq.Download, "download", "", "download page URL")
	rootCmd.AddCommand(addCmd)
}

var addReq api.AddAppRequest

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an app to the catalog",
	Long:  "Adds a catalog entry. With --name and --command the app is created directly; otherwise an interactive form collects the fields.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if addReq.Name == "" || addReq.Command == "" {
			if err := runAddForm(&addReq); err != nil {
				return err
			}
		}

		addReq.Name = strings.TrimSpace(addReq.Name)
		addReq.Command = strings.TrimSpace(addReq.Command)
		if addReq.Name == "" || addReq.Command == "" {
			return fmt.Errorf("name and command are required")
		}

		client := newClient(cfg)
		app, err := client.AddApp(context.Background(), addReq)
		if err != nil {
			return fmt.Errorf("adding app: %w", err)
		}

		fmt.Println(ui.Green.Render("Added ") + ui.White.Render(app.Name) +
			ui.Dim.Render(fmt.Sprintf(" (id %d)", app.ID)))
		return nil
	},
}

func runAddForm(req *api.AddAppRequest) error {
	required := func(field string) func(string) error {
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Display name in the catalog").
				Validate(required("name")).
				Value(&req.Name),
			huh.NewInput().
				Title("Winget package").
				Description("The winget package id, e.g. Git.Git").
				Validate(required("command")).
				Value(&req.Command),
			huh.NewInput().
				Title("Description").
				Value(&req.Description),
			huh.NewInput().
				Title("Category").
				Placeholder("Otros").
				Value(&req.Category),
			huh.NewInput().
				Title("Launch executable").
				Description("Optional, used by the open endpoint").
				Value(&req.Launch),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return form.Run()
}
