package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inertz/storefront/internal/config"
	"github.com/inertz/storefront/internal/install"
	"github.com/inertz/storefront/internal/ui"
)

func init() {
	installCmd.Flags().BoolVar(&installBlocking, "blocking", false, "use the blocking install endpoint instead of the event stream")
	rootCmd.AddCommand(installCmd)
}

var installBlocking bool

var installCmd = &cobra.Command{
	Use:   "install <id|name>",
	Short: "Install an app and stream its output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if installBlocking {
			cfg.Mode = config.ModeBlocking
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := newClient(cfg)
		reg, rc := newRegistry(cfg, client)

		if err := rc.Refresh(ctx); err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}
		app, err := resolveApp(reg.Apps(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(ui.Cyan.Render("Installing ") + ui.White.Render(app.Name) +
			ui.Dim.Render(" ("+app.Command+", "+cfg.Mode+" mode)"))

		done := make(chan struct{})
		var (
			once   sync.Once
			mu     sync.Mutex
			follow logFollower
		)
		reg.Subscribe(func() {
			st := reg.Snapshot(app.ID)

			mu.Lock()
			if st.Phase == install.PhaseInstalling {
				if chunk := follow.next(st.Log); chunk != "" {
					fmt.Fprint(os.Stdout, ui.Dim.Render(chunk))
				}
			}
			mu.Unlock()

			if st.Phase == install.PhaseDone || st.Phase == install.PhaseFailed {
				once.Do(func() { close(done) })
			}
		})

		reg.Start(ctx, app)

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		fmt.Println()
		st := reg.Snapshot(app.ID)
		if st.Phase == install.PhaseFailed {
			if st.ExitCode != nil {
				return fmt.Errorf("install of %s failed (exit %d)", app.Name, *st.ExitCode)
			}
			return fmt.Errorf("install of %s failed", app.Name)
		}

		fmt.Println(ui.Green.Render("Installed ") + ui.White.Render(app.Name))
		return nil
	},
}
