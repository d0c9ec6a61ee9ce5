package install

import (
	"context"
	"math/rand"
	"time"

	"github.com/inertz/storefront/internal/api"
)

// runStream consumes the server-push event channel for one install attempt.
// Every event funnels through Deliver with this attempt's session token, so
// a stale channel can never mutate a newer session.
func (r *Registry) runStream(ctx context.Context, app api.App, session uint64) {
	_, err := r.backend.InstallStream(ctx, app.ID, api.StreamHandlers{
		Start: func() {
			r.Deliver(app.ID, session, Event{Kind: EventStart})
		},
		Progress: func(v float64) {
			r.Deliver(app.ID, session, Event{Kind: EventProgress, Progress: v})
		},
		Log: func(line string) {
			r.Deliver(app.ID, session, Event{Kind: EventLog, Line: line})
		},
		Truncate: func(limit int) {
			r.Deliver(app.ID, session, Event{Kind: EventTruncate, Limit: limit})
		},
		Done: func(res api.InstallResult) {
			r.Deliver(app.ID, session, Event{Kind: EventDone, Result: &res})
		},
		Error: func(err error) {
			r.Deliver(app.ID, session, Event{Kind: EventError, Err: err})
		},
	})
	if err != nil {
		r.Deliver(app.ID, session, Event{Kind: EventError, Err: err})
	}
}

// runBlocking issues the single blocking install call. While the response is
// outstanding a local ticker fabricates progress, capped below completion so
// it can never falsely signal success. The ticker is owned by this session
// and guaranteed stopped once the response (or failure) arrives.
func (r *Registry) runBlocking(ctx context.Context, app api.App, session uint64) {
	if r.opts.InstallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.InstallTimeout)
		defer cancel()
	}

	stop := make(chan struct{})
	go r.fakeProgress(app.ID, session, stop)

	res, err := r.backend.Install(ctx, app.ID)
	close(stop)

	if err != nil {
		r.Deliver(app.ID, session, Event{Kind: EventError, Err: err})
		return
	}

	outcome := *res
	if len(outcome.Output) > r.opts.BlockingOutputCap {
		outcome.Output = outcome.Output[:r.opts.BlockingOutputCap]
	}
	r.Deliver(app.ID, session, Event{Kind: EventDone, Result: &outcome})
}

// fakeProgress synthesizes progress for a blocking install: a random step of
// at least 1 and at most FakeMaxStep per tick, capped at FakeCeiling. Ticks
// racing the terminal event are discarded by Deliver's session guard.
func (r *Registry) fakeProgress(id int, session uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(r.opts.FakeTick)
	defer ticker.Stop()

	value := r.opts.Seed
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			value += 1 + rand.Float64()*(r.opts.FakeMaxStep-1)
			if value > r.opts.FakeCeiling {
				value = r.opts.FakeCeiling
			}
			r.Deliver(id, session, Event{Kind: EventProgress, Progress: value})
		}
	}
}
