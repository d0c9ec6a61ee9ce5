// Package install tracks the lifecycle of app install attempts for the
// storefront client: concurrent sessions, streamed progress and logs,
// and reconciliation of server-authoritative installed state.
package install

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/inertz/storefront/internal/api"
)

// NoOutputPlaceholder stands in for installs that produced no output at all.
const NoOutputPlaceholder = "no output (silent mode)"

// Backend is the slice of the API client the registry depends on.
type Backend interface {
	Install(ctx context.Context, id int) (*api.InstallResult, error)
	InstallStream(ctx context.Context, id int, h api.StreamHandlers) (func(), error)
	Open(ctx context.Context, id int) (*api.OpenResult, error)
	Apps(ctx context.Context) ([]api.App, error)
	CheckInstallations(ctx context.Context) ([]api.CheckResult, error)
	Version(ctx context.Context, id int) (*api.VersionInfo, error)
}

// Compile-time check that the API client satisfies Backend.
var _ Backend = (*api.Client)(nil)

// Options tunes the registry. Zero values fall back to the defaults the
// backend contract was observed with.
type Options struct {
	// Streaming selects the event-stream install mode; when false the
	// degraded blocking mode with locally synthesized progress is used.
	Streaming bool
	// Seed is the progress value set at session start. Small but positive
	// so "just started" is visibly distinct from idle.
	Seed float64
	// LogCap bounds the per-item live log buffer, in characters.
	LogCap int
	// FakeTick, FakeMaxStep and FakeCeiling shape the synthesized progress
	// of blocking mode: every FakeTick the value grows by a random step of
	// at most FakeMaxStep, never past FakeCeiling.
	FakeTick    time.Duration
	FakeMaxStep float64
	FakeCeiling float64
	// BlockingOutputCap bounds the output kept in a history record from a
	// blocking install response.
	BlockingOutputCap int
	// InstallTimeout bounds a blocking install request. Zero means no bound
	// beyond the caller's context; the server side enforces its own ceiling.
	InstallTimeout time.Duration
	// HistoryDepth is how many history records renderers show.
	HistoryDepth int
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = 1
	}
	if o.LogCap == 0 {
		o.LogCap = 12000
	}
	if o.FakeTick == 0 {
		o.FakeTick = 600 * time.Millisecond
	}
	if o.FakeMaxStep == 0 {
		o.FakeMaxStep = 8
	}
	if o.FakeCeiling == 0 {
		o.FakeCeiling = 90
	}
	if o.BlockingOutputCap == 0 {
		o.BlockingOutputCap = 2000
	}
	if o.HistoryDepth == 0 {
		o.HistoryDepth = 6
	}
	return o
}

// Registry is the single source of truth for per-item install state. All
// mutation is serialized by its mutex; sessions run in goroutines and report
// back through Deliver, guarded by their session token.
type Registry struct {
	backend Backend
	opts    Options

	mu       sync.Mutex
	states   map[int]*State
	apps     map[int]api.App
	buf      *Buffer
	est      *Estimator
	history  *History
	versions map[int]api.VersionInfo
	opening  map[int]bool
	session  uint64

	subs     []func()
	toasts   []func(string)
	terminal []func()
}

// NewRegistry creates a registry backed by the given client.
func NewRegistry(backend Backend, opts Options) *Registry {
	o := opts.withDefaults()
	return &Registry{
		backend:  backend,
		opts:     o,
		states:   make(map[int]*State),
		apps:     make(map[int]api.App),
		buf:      NewBuffer(o.LogCap),
		est:      NewEstimator(),
		history:  NewHistory(),
		versions: make(map[int]api.VersionInfo),
		opening:  make(map[int]bool),
	}
}

// Subscribe registers a callback invoked after every state change.
func (r *Registry) Subscribe(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// OnToast registers a callback for transient user-facing notices.
func (r *Registry) OnToast(fn func(msg string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, fn)
}

// AfterTerminal registers a callback invoked (in its own goroutine) after an
// install attempt resolves with a done event. Used to trigger reconciliation.
func (r *Registry) AfterTerminal(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminal = append(r.terminal, fn)
}

func (r *Registry) notify() {
	r.mu.Lock()
	subs := append([]func(){}, r.subs...)
	r.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (r *Registry) toast(msg string) {
	r.mu.Lock()
	toasts := append([]func(string){}, r.toasts...)
	r.mu.Unlock()
	for _, fn := range toasts {
		fn(msg)
	}
}

func (r *Registry) fireTerminal() {
	r.mu.Lock()
	hooks := append([]func(){}, r.terminal...)
	r.mu.Unlock()
	for _, fn := range hooks {
		go fn()
	}
}

// Start begins an install attempt for the app. Calling it while the item is
// already installing is a no-op, so a double-submission cannot spawn a
// second session. The attempt runs asynchronously; progress surfaces through
// snapshots and subscriber callbacks.
func (r *Registry) Start(ctx context.Context, app api.App) {
	r.mu.Lock()
	if st := r.states[app.ID]; st != nil && st.Phase == PhaseInstalling {
		r.mu.Unlock()
		return
	}
	r.session++
	session := r.session
	r.states[app.ID] = &State{
		Phase:     PhaseInstalling,
		Progress:  r.opts.Seed,
		SessionID: session,
	}
	r.apps[app.ID] = app
	r.buf.Clear(app.ID)
	r.est.Reset(app.ID, r.opts.Seed)
	streaming := r.opts.Streaming
	r.mu.Unlock()

	r.toast(fmt.Sprintf("Installing %s...", app.Name))
	r.notify()

	if streaming {
		go r.runStream(ctx, app, session)
	} else {
		go r.runBlocking(ctx, app, session)
	}
}

// Deliver is the single mutation entry point for session events. Events
// whose session token does not match the item's current session, or that
// arrive after the session resolved, are dropped silently.
func (r *Registry) Deliver(id int, session uint64, ev Event) {
	r.mu.Lock()
	st, ok := r.states[id]
	if !ok || st.SessionID != session || st.Phase != PhaseInstalling {
		r.mu.Unlock()
		return
	}

	var after func()
	switch ev.Kind {
	case EventStart:
		st.Progress = r.est.Set(id, r.opts.Seed)
	case EventProgress:
		st.Progress = r.est.Set(id, ev.Progress)
	case EventLog:
		r.buf.Append(id, ev.Line)
		st.Log = r.buf.Get(id)
	case EventTruncate:
		r.buf.Append(id, fmt.Sprintf("--- output truncated at %d chars ---", ev.Limit))
		st.Log = r.buf.Get(id)
	case EventDone:
		after = r.resolveLocked(id, st, ev.Result)
	case EventError:
		st.Phase = PhaseFailed
		st.Progress = 0
		msg := "Lost install progress stream"
		if !r.opts.Streaming {
			msg = "Install request failed"
		}
		after = func() {
			r.toast(msg)
		}
	}
	r.mu.Unlock()

	if after != nil {
		after()
	}
	r.notify()
}

// resolveLocked applies a terminal done payload. Caller holds the mutex;
// the returned func runs the unlocked side effects.
func (r *Registry) resolveLocked(id int, st *State, res *api.InstallResult) func() {
	app := r.apps[id]

	output := res.Output
	if output == "" {
		output = r.buf.Get(id)
	}
	if output == "" {
		output = NoOutputPlaceholder
	}

	if res.Status == api.StatusOK {
		st.Phase = PhaseDone
		st.Progress = 100
	} else {
		st.Phase = PhaseFailed
		st.Progress = 0
	}
	st.ExitCode = res.ExitCode
	st.Log = output

	r.history.Prepend(Record{
		App:      app.Name,
		Status:   res.Status,
		Command:  app.Command,
		Output:   output,
		ExitCode: res.ExitCode,
		When:     time.Now(),
	})
	r.buf.Clear(id)

	name := app.Name
	ok := res.Status == api.StatusOK
	return func() {
		if ok {
			r.toast(fmt.Sprintf("Installed %s", name))
		} else {
			r.toast(fmt.Sprintf("Install failed: %s", name))
		}
		r.fireTerminal()
	}
}

// Snapshot returns a copy of the item's current state. Untracked items
// report the implicit idle default.
func (r *Registry) Snapshot(id int) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[id]; ok {
		return *st
	}
	return State{Phase: PhaseIdle}
}

// SnapshotAll returns a copy of every tracked state, keyed by item id.
func (r *Registry) SnapshotAll() map[int]State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]State, len(r.states))
	for id, st := range r.states {
		out[id] = *st
	}
	return out
}

// ApplyCatalog merges a fresh catalog fetch: app metadata is refreshed and
// items the server reports as installed are promoted to done, unless a
// session is in flight for them.
func (r *Registry) ApplyCatalog(apps []api.App) {
	r.mu.Lock()
	for _, app := range apps {
		r.apps[app.ID] = app
		if !app.Installed {
			continue
		}
		st := r.states[app.ID]
		if st != nil && st.Phase == PhaseInstalling {
			continue
		}
		if st == nil {
			st = &State{}
			r.states[app.ID] = st
		}
		st.Phase = PhaseDone
		st.Progress = 100
	}
	r.mu.Unlock()
	r.notify()
}

// ApplyInstalled merges authoritative installed flags from a bulk check.
// Items with an active session are never overridden: local state is
// authoritative until the session resolves.
func (r *Registry) ApplyInstalled(results []api.CheckResult) {
	r.mu.Lock()
	for _, res := range results {
		st := r.states[res.ID]
		if st != nil && st.Phase == PhaseInstalling {
			continue
		}
		if st == nil {
			st = &State{}
			r.states[res.ID] = st
		}
		if app, ok := r.apps[res.ID]; ok {
			app.Installed = res.Installed
			r.apps[res.ID] = app
		}
		if res.Installed {
			st.Phase = PhaseDone
			st.Progress = 100
		} else {
			st.Phase = PhaseIdle
			st.Progress = 0
		}
	}
	r.mu.Unlock()
	r.notify()
}

// Apps returns the catalog metadata known to the registry, sorted by id.
func (r *Registry) Apps() []api.App {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]api.App, 0, len(r.apps))
	for _, app := range r.apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetVersion records the version view for an item.
func (r *Registry) SetVersion(id int, info api.VersionInfo) {
	if info.CurrentVersion == "" {
		info.CurrentVersion = api.UnknownVersion
	}
	if info.LatestVersion == "" {
		info.LatestVersion = api.UnknownVersion
	}
	r.mu.Lock()
	r.versions[id] = info
	r.mu.Unlock()
}

// Version returns the recorded version view for an item, or the unknown
// placeholder when no lookup has completed.
func (r *Registry) Version(id int) api.VersionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.versions[id]; ok {
		return info
	}
	return api.UnknownVersionInfo()
}

// Recent returns up to n history records, newest first.
func (r *Registry) Recent(n int) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Recent(n)
}

// HistoryDepth returns the configured history render depth.
func (r *Registry) HistoryDepth() int {
	return r.opts.HistoryDepth
}

// Open launches an installed app on the agent host. The item is marked
// pending for the duration of the request, independent of install state.
func (r *Registry) Open(ctx context.Context, app api.App) {
	r.mu.Lock()
	if r.opening[app.ID] {
		r.mu.Unlock()
		return
	}
	r.opening[app.ID] = true
	r.mu.Unlock()
	r.notify()

	go func() {
		res, err := r.backend.Open(ctx, app.ID)
		switch {
		case err != nil:
			r.toast(fmt.Sprintf("Could not open %s", app.Name))
		case res.Status == api.StatusOK:
			r.toast(fmt.Sprintf("Opening %s...", app.Name))
		case res.Error != "":
			r.toast(res.Error)
		case res.Output != "":
			r.toast(res.Output)
		default:
			r.toast(fmt.Sprintf("Could not open %s", app.Name))
		}

		r.mu.Lock()
		delete(r.opening, app.ID)
		r.mu.Unlock()
		r.notify()
	}()
}

// IsOpening reports whether an open request is pending for the item.
func (r *Registry) IsOpening(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opening[id]
}
