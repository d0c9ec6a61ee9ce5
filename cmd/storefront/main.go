package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/config"
	"github.com/inertz/storefront/internal/install"
	"github.com/inertz/storefront/internal/ui"
	"github.com/inertz/storefront/internal/version"
)

var (
	flagConfig string
	flagServer string
)

var rootCmd = &cobra.Command{
	Use:     "storefront",
	Short:   "Storefront — terminal client for the winget app store",
	Version: version.Version,
}

func init() {
	rootCmd.Long = ui.Green.Render("Storefront") + " " + ui.Cyan.Render(version.Version) + "\n" +
		ui.Dim.Render("A terminal client for the winget app store backend: browse the catalog, stream installs with live progress, and keep installed state in sync.")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "backend URL (overrides config)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.ServerURL, time.Duration(cfg.RequestTimeoutSecs)*time.Second)
}

// syncInterval paces the background reconciliation loop in browse mode.
const syncInterval = 60 * time.Second

func newRegistry(cfg *config.Config, client *api.Client) (*install.Registry, *install.Reconciler) {
	reg := install.NewRegistry(client, install.Options{
		Streaming:      cfg.Mode == config.ModeStream,
		LogCap:         cfg.LogCap,
		InstallTimeout: time.Duration(cfg.InstallTimeoutSecs) * time.Second,
		HistoryDepth:   cfg.HistoryDepth,
	})
	rc := install.NewReconciler(client, reg, syncInterval)
	return reg, rc
}

// resolveApp matches an argument against the catalog by numeric id first,
// then by case-insensitive name.
func resolveApp(apps []api.App, arg string) (api.App, error) {
	for _, app := range apps {
		if fmt.Sprintf("%d", app.ID) == arg {
			return app, nil
		}
	}
	for _, app := range apps {
		if strings.EqualFold(app.Name, arg) {
			return app, nil
		}
	}
	return api.App{}, fmt.Errorf("no app matches %q", arg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
