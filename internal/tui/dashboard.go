// SPDX-License-Identifier: MIT

// Package tui implements a read-only Bubble Tea dashboard for the render
// command, showing frame throughput while the CQT engine runs.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))
)

// Stats is one snapshot of render progress, pushed by the hot-path loop
// over an Updates channel.
type Stats struct {
	FramesEmitted int64
	FPS           float64
	Status        string
}

// statsMsg wraps a Stats value as a tea.Msg.
type statsMsg Stats

// doneMsg signals the Updates channel closed; the dashboard exits.
type doneMsg struct{}

// DashboardModel is a Bubble Tea model that renders the latest Stats
// received from Updates. It never accepts input beyond quitting.
type DashboardModel struct {
	updates <-chan Stats
	start   time.Time
	stats   Stats
	done    bool
	spinner spinner.Model
}

// NewDashboardModel returns a dashboard fed by updates. The caller closes
// updates to end the program.
func NewDashboardModel(updates <-chan Stats) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = labelStyle
	return DashboardModel{updates: updates, start: time.Now(), spinner: s}
}

func waitForStats(updates <-chan Stats) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return statsMsg(s)
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(waitForStats(m.updates), m.spinner.Tick)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case statsMsg:
		m.stats = Stats(msg)
		return m, waitForStats(m.updates)
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DashboardModel) View() string {
	title := titleStyle.Render("showcqt")
	elapsed := time.Since(m.start).Round(time.Second)

	status := m.stats.Status
	if !m.done {
		status = fmt.Sprintf("%s %s", m.spinner.View(), status)
	}

	body := fmt.Sprintf(
		"%s %s\n%s %d\n%s %.1f\n%s %s\n",
		labelStyle.Render("elapsed:"), elapsed,
		labelStyle.Render("frames: "), m.stats.FramesEmitted,
		labelStyle.Render("fps:    "), m.stats.FPS,
		labelStyle.Render("status: "), status,
	)

	help := infoStyle.Render("q: quit")
	return fmt.Sprintf("%s\n\n%s\n%s", title, body, help)
}

// Run starts the dashboard and blocks until the user quits or updates
// closes.
func Run(updates <-chan Stats) error {
	p := tea.NewProgram(NewDashboardModel(updates))
	_, err := p.Run()
	return err
}
