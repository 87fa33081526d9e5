// Package tui provides the interactive crane console.
//
// The console maps one key per crane command, renders the pre-lift
// checklist and the scrolling logbook, and drives the two canned
// scenarios through the davit.Director. Scenarios play on the
// director's goroutine; a periodic tick keeps the view current while
// steps land.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/teranos/davit"
)

// tickMsg refreshes the view while a scenario is playing.
type tickMsg time.Time

const tickInterval = 100 * time.Millisecond

// Model is the Bubble Tea model for the crane console. It owns nothing:
// the crane, logbook, checklist and director are created by the
// application root and passed in by reference.
type Model struct {
	crane     *davit.Crane
	logbook   *davit.Logbook
	checklist *davit.Checklist
	director  *davit.Director

	width    int
	height   int
	quitting bool
}

// New creates a console model for the given session objects.
func New(crane *davit.Crane, logbook *davit.Logbook, checklist *davit.Checklist, director *davit.Director) Model {
	return Model{
		crane:     crane,
		logbook:   logbook,
		checklist: checklist,
		director:  director,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.director.Cancel()
			m.quitting = true
			return m, tea.Quit
		case "h":
			m.crane.Dispatch(davit.CmdHoist)
		case "l":
			m.crane.Dispatch(davit.CmdLower)
		case "i":
			m.crane.Dispatch(davit.CmdLuffIn)
		case "o":
			m.crane.Dispatch(davit.CmdLuffOut)
		case "p":
			m.crane.Dispatch(davit.CmdSlewPort)
		case "s":
			m.crane.Dispatch(davit.CmdSlewStarboard)
		case " ":
			m.director.Cancel()
			m.crane.EmergencyStop()
		case "c":
			m.checklist.Run()
		case "r":
			m.checklist.Reset()
		case "1":
			m.director.Run(davit.HoistCycle())
		case "2":
			m.director.Run(davit.Transfer())
		}
		return m, nil
	}

	return m, nil
}

// CurrentMode returns the crane's mode label, for assertions and the
// status bar.
func (m Model) CurrentMode() string {
	return m.crane.Status().Mode.String()
}
