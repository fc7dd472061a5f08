package ticker

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/casefolio"
)

var (
	stripStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	heldStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type tickMsg time.Time

// StateMsg replaces the strip prices, the position is kept.
type StateMsg struct{ State *casefolio.State }

// Model is the bubbletea model of the ticker. The strip is on the first line.
type Model struct {
	currency string
	interval time.Duration
	text     []rune
	osc      Oscillator
	width    int
	ticking  bool
}

// New returns a ticker over s moving step cells every interval.
func New(s *casefolio.State, currency string, interval time.Duration, step int) Model {
	m := Model{
		currency: currency,
		interval: interval,
		width:    80,
		osc:      Oscillator{Step: step},
	}
	m.setStrip(NewStrip(s, currency))
	m.ticking = len(m.text) > 0
	return m
}

func (m *Model) setStrip(s Strip) {
	m.text = []rune(s.Text())
	m.osc.SetMax(len(m.text) - m.width)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the tick loop, an empty strip never ticks.
func (m Model) Init() tea.Cmd {
	if len(m.text) == 0 {
		return nil
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.MouseMsg:
		m.osc.Hovered = msg.Y == 0 && msg.Action == tea.MouseActionMotion

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.osc.SetMax(len(m.text) - m.width)

	case StateMsg:
		m.setStrip(NewStrip(msg.State, m.currency))
		if !m.ticking && len(m.text) > 0 {
			m.ticking = true
			return m, m.tick()
		}

	case tickMsg:
		if len(m.text) == 0 {
			m.ticking = false
			return m, nil
		}
		m.ticking = true
		m.osc.Tick()
		return m, m.tick()
	}
	return m, nil
}

// Window returns the visible part of the strip.
func (m Model) Window() string {
	end := min(m.osc.Pos+m.width, len(m.text))
	return string(m.text[m.osc.Pos:end])
}

func (m Model) View() string {
	if len(m.text) == 0 {
		return helpStyle.Render("No prices yet.") + "\n"
	}
	style := stripStyle
	if m.osc.Hovered {
		style = heldStyle
	}
	return style.Render(m.Window()) + "\n" + helpStyle.Render("hover to hold, q to quit") + "\n"
}
