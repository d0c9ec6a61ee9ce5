package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/tui"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive catalog browser",
	Long:  "Browses the app catalog with live install progress, streamed logs, and recent install history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := newClient(cfg)
		reg, rc := newRegistry(cfg, client)
		reg.AfterTerminal(func() {
			// Best effort; the next periodic sync catches anything missed.
			_ = rc.Sync(ctx)
		})
		go rc.Run(ctx)

		return tui.Run(ctx, reg, rc)
	},
}
