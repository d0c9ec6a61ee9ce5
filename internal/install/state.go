package install

import "github.com/inertz/storefront/internal/api"

// Phase is the lifecycle phase of an item's install state.
type Phase int

const (
	// PhaseIdle is the implicit default for untracked items.
	PhaseIdle Phase = iota
	PhaseInstalling
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInstalling:
		return "installing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the tracked install view for one catalog item. Progress is
// meaningful while installing and as a terminal snapshot (100 for done,
// 0 for failed). SessionID distinguishes successive attempts on the same
// item so stale events cannot mutate a newer session.
type State struct {
	Phase     Phase
	Progress  float64
	Log       string
	ExitCode  *int
	SessionID uint64
}

// EventKind names the messages an install session can report.
type EventKind int

const (
	EventStart EventKind = iota
	EventProgress
	EventLog
	EventTruncate
	EventDone
	// EventError is a channel-level failure: the stream dropped (or the
	// blocking call failed) without a terminal done event.
	EventError
)

// Event is one message reported by an install session to the registry.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Progress float64
	Line     string
	Limit    int
	Result   *api.InstallResult
	Err      error
}
