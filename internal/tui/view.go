package tui

import (
	"fmt"
	"strings"

	"github.com/inertz/storefront/internal/api"
	"github.com/inertz/storefront/internal/install"
)

// View renders the whole browser as a single string.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Storefront"))
	b.WriteString(" ")
	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("%d apps", len(m.apps))))
	if m.toast != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Toast.Render(m.toast))
	}
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if !m.loaded {
		b.WriteString(m.spinner.View())
		b.WriteString(" loading catalog...\n")
		return b.String()
	}
	if m.loadErr != nil && len(m.apps) == 0 {
		b.WriteString(m.styles.Failed.Render("catalog unavailable: " + m.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(m.footer())
		return b.String()
	}

	items := m.visible()
	if len(items) == 0 {
		b.WriteString(m.styles.Dim.Render("no apps match"))
		b.WriteString("\n")
	}
	for i, app := range items {
		b.WriteString(m.renderRow(app, i == m.cursor))
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(m.renderDetail(app))
		}
	}

	if m.showHist {
		b.WriteString(m.renderHistory())
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) renderRow(app api.App, selected bool) string {
	marker := "  "
	nameStyle := m.styles.Normal
	if selected {
		marker = "> "
		nameStyle = m.styles.Selected
	}
	name := nameStyle.Render(fmt.Sprintf("%-24s", app.Name))
	return marker + name + " " + m.renderStatus(app)
}

func (m Model) renderStatus(app api.App) string {
	st := m.states[app.ID]
	if m.reg.IsOpening(app.ID) {
		return m.styles.Running.Render("opening...")
	}
	switch st.Phase {
	case install.PhaseInstalling:
		return m.bar.ViewAs(st.Progress/100) + m.styles.Running.Render(fmt.Sprintf(" %3.0f%%", st.Progress))
	case install.PhaseDone:
		return m.styles.Done.Render("installed") + " " + m.renderVersion(app.ID)
	case install.PhaseFailed:
		if st.ExitCode != nil {
			return m.styles.Failed.Render(fmt.Sprintf("failed (exit %d)", *st.ExitCode))
		}
		return m.styles.Failed.Render("failed")
	default:
		return m.styles.Dim.Render(app.Category)
	}
}

func (m Model) renderVersion(id int) string {
	v := m.reg.Version(id)
	if v.CurrentVersion == api.UnknownVersion {
		return m.styles.Dim.Render(api.UnknownVersion)
	}
	if v.UpdateAvailable {
		return m.styles.Running.Render(v.CurrentVersion + " -> " + v.LatestVersion)
	}
	return m.styles.Dim.Render(v.CurrentVersion)
}

func (m Model) renderDetail(app api.App) string {
	var b strings.Builder
	pad := "    "
	if app.Description != "" {
		b.WriteString(pad + m.styles.Dim.Render(app.Description) + "\n")
	}
	b.WriteString(pad + m.styles.Dim.Render("winget: "+app.Command) + "\n")

	st := m.states[app.ID]
	if st.Log != "" && (st.Phase == install.PhaseInstalling || st.Phase == install.PhaseFailed) {
		for _, line := range tail(st.Log, logTailLines) {
			b.WriteString(m.styles.LogPane.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderHistory() string {
	records := m.reg.Recent(m.reg.HistoryDepth())
	if len(records) == 0 {
		return "\n" + m.styles.Dim.Render("no installs yet") + "\n"
	}
	var b strings.Builder
	b.WriteString("\n" + m.styles.Selected.Render("Recent installs") + "\n")
	for _, rec := range records {
		chip := m.styles.Done.Render("ok")
		if rec.Status != api.StatusOK {
			chip = m.styles.Failed.Render("error")
		}
		b.WriteString(fmt.Sprintf("  %s %-24s %s\n",
			chip, rec.App, m.styles.Dim.Render(rec.When.Format("15:04:05"))))
	}
	return b.String()
}

func (m Model) footer() string {
	return m.styles.Footer.Render(
		"enter install · o open · / search · s sync · h history · q quit")
}

// tail returns the last n lines of text.
func tail(text string, n int) []string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
