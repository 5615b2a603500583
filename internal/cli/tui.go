package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/algoviz/pkg/errors"
)

var (
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// refreshInterval is how often the player redraws the board.
const refreshInterval = 50 * time.Millisecond

// runControl is the part of an engine the player drives.
type runControl interface {
	TogglePause() bool
	Paused() bool
}

type (
	tickMsg time.Time
	doneMsg struct{ err error }
)

// playerModel shows a board while an engine run animates it.
type playerModel struct {
	title string
	view  func() string
	done  <-chan error
	ctl   runControl

	// setSpeed is nil for engines with fixed timing.
	setSpeed func(int) error
	speed    int

	finished bool
	err      error
}

func newPlayerModel(title string, view func() string, done <-chan error, ctl runControl, setSpeed func(int) error, speed int) playerModel {
	return playerModel{
		title:    title,
		view:     view,
		done:     done,
		ctl:      ctl,
		setSpeed: setSpeed,
		speed:    speed,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitDone(done <-chan error) tea.Cmd {
	return func() tea.Msg { return doneMsg{err: <-done} }
}

func (m playerModel) Init() tea.Cmd {
	return tea.Batch(tick(), waitDone(m.done))
}

func (m playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			if !m.finished {
				m.ctl.TogglePause()
			}
		case "+", "=":
			m.changeSpeed(1)
		case "-", "_":
			m.changeSpeed(-1)
		}
	case tickMsg:
		return m, tick()
	case doneMsg:
		m.finished = true
		m.err = msg.err
	}
	return m, nil
}

func (m *playerModel) changeSpeed(delta int) {
	if m.setSpeed == nil {
		return
	}
	next := m.speed + delta
	if errors.ValidateSpeed(next) != nil {
		return
	}
	if m.setSpeed(next) == nil {
		m.speed = next
	}
}

func (m playerModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.view())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	help := "space pause  q quit"
	if m.setSpeed != nil {
		help = "space pause  +/- speed  q quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m playerModel) status() string {
	var parts []string
	switch {
	case m.finished && m.err != nil:
		parts = append(parts, "stopped: "+errors.UserMessage(m.err))
	case m.finished:
		parts = append(parts, "done")
	case m.ctl.Paused():
		parts = append(parts, "paused")
	default:
		parts = append(parts, "running")
	}
	if m.setSpeed != nil {
		parts = append(parts, fmt.Sprintf("speed %d", m.speed))
	}
	return strings.Join(parts, " · ")
}
