package install

import "testing"

func TestHistoryNewestFirst(t *testing.T) {
	h := NewHistory()
	h.Prepend(Record{App: "first"})
	h.Prepend(Record{App: "second"})

	recent := h.Recent(6)
	if len(recent) != 2 {
		t.Fatalf("Recent length = %d, want 2", len(recent))
	}
	if recent[0].App != "second" || recent[1].App != "first" {
		t.Errorf("order = %q, %q, want newest first", recent[0].App, recent[1].App)
	}
}

func TestHistoryRecentBounded(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 10; i++ {
		h.Prepend(Record{App: "app"})
	}
	if got := len(h.Recent(6)); got != 6 {
		t.Errorf("Recent(6) length = %d, want 6", got)
	}
	if h.Len() != 10 {
		t.Errorf("Len = %d, want 10", h.Len())
	}
}
