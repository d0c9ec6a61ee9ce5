package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/install"
)

type stubBackend struct{}

func (stubBackend) Install(context.Context, int) (*api.InstallResult, error) {
	return &api.InstallResult{Status: api.StatusOK}, nil
}

func (stubBackend) InstallStream(context.Context, int, api.StreamHandlers) (func(), error) {
	return func() {}, nil
}

func (stubBackend) Open(context.Context, int) (*api.OpenResult, error) {
	return &api.OpenResult{Status: api.StatusOK}, nil
}

func (stubBackend) Apps(context.Context) ([]api.App, error) { return nil, nil }

func (stubBackend) CheckInstallations(context.Context) ([]api.CheckResult, error) {
	return nil, nil
}

func (stubBackend) Version(context.Context, int) (*api.VersionInfo, error) {
	return &api.VersionInfo{CurrentVersion: "1.0", LatestVersion: "1.0"}, nil
}

func testModel(t *testing.T, apps []api.App) Model {
	t.Helper()

	reg := install.NewRegistry(stubBackend{}, install.Options{Streaming: true})
	reg.ApplyCatalog(apps)
	rc := install.NewReconciler(stubBackend{}, reg, 0)

	m := NewModel(context.Background(), reg, rc)
	m.loaded = true
	m.refreshSnapshots()
	return m
}

func catalog() []api.App {
	return []api.App{
		{ID: 1, Name: "Git", Category: "Desarrollo", Command: "Git.Git"},
		{ID: 2, Name: "Firefox", Category: "Navegadores", Command: "Mozilla.Firefox"},
		{ID: 3, Name: "VLC", Category: "Multimedia", Command: "VideoLAN.VLC"},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationMovesCursorWithinBounds(t *testing.T) {
	m := testModel(t, catalog())

	next, _ := m.Update(key("k"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor moved above top: %d", m.cursor)
	}

	for i := 0; i < 5; i++ {
		next, _ = m.Update(key("j"))
		m = next.(Model)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped to last item)", m.cursor)
	}
}

func TestSearchFiltersByNameCategoryDescription(t *testing.T) {
	m := testModel(t, catalog())

	m.search.SetValue("nav")
	got := m.visible()
	if len(got) != 1 || got[0].Name != "Firefox" {
		t.Fatalf("visible = %+v, want only Firefox", got)
	}

	m.search.SetValue("")
	if len(m.visible()) != 3 {
		t.Fatalf("empty query should show everything")
	}
}

func TestFilterClampsCursor(t *testing.T) {
	m := testModel(t, catalog())
	m.cursor = 2

	m.search.SetValue("git")
	m.clampCursor()
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after narrowing filter, want 0", m.cursor)
	}

	app, ok := m.selected()
	if !ok || app.Name != "Git" {
		t.Fatalf("selected = %+v, want Git", app)
	}
}

func TestEnterStartsInstallForSelection(t *testing.T) {
	m := testModel(t, catalog())
	m.cursor = 1

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	m.refreshSnapshots()

	st := m.states[2]
	if st.Phase != install.PhaseInstalling {
		t.Fatalf("Firefox phase = %v, want installing", st.Phase)
	}
}

func TestToastClearedOnlyByMatchingSeq(t *testing.T) {
	m := testModel(t, catalog())

	next, _ := m.Update(toastMsg("first"))
	m = next.(Model)
	next, _ = m.Update(toastMsg("second"))
	m = next.(Model)

	next, _ = m.Update(clearToastMsg{seq: 1})
	m = next.(Model)
	if m.toast != "second" {
		t.Fatalf("stale clear removed toast %q", m.toast)
	}

	next, _ = m.Update(clearToastMsg{seq: 2})
	m = next.(Model)
	if m.toast != "" {
		t.Fatalf("toast not cleared: %q", m.toast)
	}
}

func TestViewShowsInstalledAndFailedBadges(t *testing.T) {
	m := testModel(t, catalog())
	m.reg.ApplyInstalled([]api.CheckResult{{ID: 1, Installed: true}})
	m.refreshSnapshots()

	out := m.View()
	if !strings.Contains(out, "installed") {
		t.Fatalf("view missing installed badge:\n%s", out)
	}
	if !strings.Contains(out, "Git") || !strings.Contains(out, "Firefox") {
		t.Fatalf("view missing catalog rows:\n%s", out)
	}
}
