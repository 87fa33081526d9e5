package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/teranos/davit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	overloadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("76"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const helpLine = "h hoist  l lower  i/o luff in/out  p/s slew port/stbd  " +
	"space e-stop  c/r checklist run/reset  1 hoist cycle  2 transfer  q quit"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Crane secured. Logbook closed.\n"
	}
	return m.ConsoleView()
}

// ConsoleView renders the full console regardless of quit state, so
// the session report can capture the panels as they last looked even
// after the operator has pressed quit.
func (m Model) ConsoleView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DAVIT: ship's crane operating console"))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	checklist := panelStyle.Render(m.checklistPanel())
	logbook := panelStyle.Render(m.logbookPanel())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, checklist, " ", logbook))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine))
	b.WriteString("\n")

	return b.String()
}

func (m Model) statusLine() string {
	status := m.crane.Status()

	moving := "stopped"
	if status.Moving {
		moving = "IN MOTION"
	}

	line := fmt.Sprintf("mode %-6s  %-9s  hook %d / SWL %d kg",
		status.Mode, moving, status.HookLoad, status.SWL)
	if m.director.Running() {
		line += "  [scenario running]"
	}

	if status.Overloaded() {
		return statusStyle.Render(line) + " " + overloadStyle.Render("OVERLOAD")
	}
	return statusStyle.Render(line)
}

func (m Model) checklistPanel() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Pre-lift checklist"))
	b.WriteString("\n")

	for _, item := range m.checklist.Items() {
		if item.Checked {
			b.WriteString(checkedStyle.Render("[x] " + item.Text))
		} else {
			b.WriteString("[ ] " + item.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// logbookLines caps how much of the logbook the panel shows; the full
// transcript lives in the logbook itself and the session report.
const logbookLines = 12

func (m Model) logbookPanel() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Logbook (newest first)"))
	b.WriteString("\n")

	entries := m.logbook.Entries()
	if len(entries) == 0 {
		b.WriteString(helpStyle.Render("no entries yet"))
		b.WriteString("\n")
		return b.String()
	}

	for i, e := range entries {
		if i >= logbookLines {
			b.WriteString(helpStyle.Render(fmt.Sprintf("… %d older entries", len(entries)-logbookLines)))
			b.WriteString("\n")
			break
		}
		line := e.At.Format("15:04:05") + "  " + e.Text
		if e.Level == davit.LevelWarn {
			b.WriteString(warnStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
