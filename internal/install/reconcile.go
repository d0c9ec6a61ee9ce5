package install

import (
	"context"
	"sync"
	"time"

	"github.com/inertz/storefront/internal/api"
)

// Reconciler merges server-authoritative installed/version state into the
// registry. It never disturbs an item with an active session; in-flight
// local state wins until the session resolves.
type Reconciler struct {
	backend  Backend
	reg      *Registry
	interval time.Duration
}

// NewReconciler creates a reconciler that refreshes on demand and, via Run,
// on a fixed interval.
func NewReconciler(backend Backend, reg *Registry, interval time.Duration) *Reconciler {
	return &Reconciler{backend: backend, reg: reg, interval: interval}
}

// Refresh re-fetches the catalog, merges installed flags, and fans out the
// per-item version lookups. Version failures are isolated: each failed
// lookup resolves to the unknown placeholder without affecting the rest.
func (rc *Reconciler) Refresh(ctx context.Context) error {
	apps, err := rc.backend.Apps(ctx)
	if err != nil {
		return err
	}
	rc.reg.ApplyCatalog(apps)
	rc.fetchVersions(ctx, apps)
	return nil
}

// Check asks the backend to re-verify installations and merges the result.
func (rc *Reconciler) Check(ctx context.Context) error {
	results, err := rc.backend.CheckInstallations(ctx)
	if err != nil {
		return err
	}
	rc.reg.ApplyInstalled(results)
	return nil
}

// Sync performs a full refresh followed by a bulk installation check.
func (rc *Reconciler) Sync(ctx context.Context) error {
	if err := rc.Refresh(ctx); err != nil {
		return err
	}
	return rc.Check(ctx)
}

// Run refreshes immediately and then on every interval until the context is
// cancelled. Refresh errors are swallowed; the next tick retries.
func (rc *Reconciler) Run(ctx context.Context) {
	rc.Refresh(ctx)

	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rc.Refresh(ctx)
		}
	}
}

// fetchVersions issues every version lookup concurrently and waits for all
// of them to settle, success or failure.
func (rc *Reconciler) fetchVersions(ctx context.Context, apps []api.App) {
	var wg sync.WaitGroup
	for _, app := range apps {
		wg.Add(1)
		go func(app api.App) {
			defer wg.Done()
			info, err := rc.backend.Version(ctx, app.ID)
			if err != nil || info == nil {
				rc.reg.SetVersion(app.ID, api.UnknownVersionInfo())
				return
			}
			rc.reg.SetVersion(app.ID, *info)
		}(app)
	}
	wg.Wait()
	rc.reg.notify()
}
