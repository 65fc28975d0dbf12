// Package tui provides a terminal live view: it steps the simulation on
// a frame timer and renders charge traces and per-body state. It drives
// the core only through the step entry point and the painting contract;
// sphere rendering stays with richer frontends.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chargesim/internal/config"
	"github.com/san-kum/chargesim/internal/sim"
	"github.com/san-kum/chargesim/internal/world"
)

const (
	frameInterval   = 33 * time.Millisecond
	historyCapacity = 240
	graphHeight     = 10
	graphWidth      = 72
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	groundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model for the live view.
type Model struct {
	cfg     *config.Config
	stepper *sim.Stepper
	world   *world.World

	t        float64
	running  bool
	selected int
	history  []float64
	err      error
}

// NewModel builds the live view for one scenario.
func NewModel(cfg *config.Config) (*Model, error) {
	stepper := sim.NewStepper(cfg.Seed, nil)
	w, err := cfg.BuildWorld(stepper.Rand())
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:     cfg,
		stepper: stepper,
		world:   w,
		running: true,
		history: make([]float64, 0, historyCapacity),
	}, nil
}

// Run starts the program and blocks until it exits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd { return frameTick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if m.running {
			m.stepper.Step(m.world, m.cfg.Dt)
			m.t += m.cfg.Dt
			m.history = append(m.history, float64(m.world.NetCharge()))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, frameTick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "tab":
		if n := len(m.world.Bodies); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	case "+", "=":
		m.paint(1)
	case "-", "_":
		m.paint(-1)
	}
	return m, nil
}

func (m *Model) reset() {
	w, err := m.cfg.BuildWorld(m.stepper.Rand())
	if err != nil {
		m.err = err
		return
	}
	m.world = w
	m.t = 0
	m.history = m.history[:0]
}

// paint adjusts the selected conductor's offset by one unit, the way an
// external painting collaborator would: mutate the offset, then ask the
// body to resync its layout.
func (m *Model) paint(delta int) {
	if m.selected >= len(m.world.Bodies) {
		return
	}
	c, ok := m.world.Bodies[m.selected].(*world.Conductor)
	if !ok {
		return
	}
	next := c.Offset + delta
	if next > world.DefaultElectronCount || next < -world.DefaultElectronCount {
		return
	}
	c.Offset = next
	c.SyncLayout()
}

func (m *Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("chargesim — %s  t=%.2fs", m.cfg.Name, m.t)
	b.WriteString(headerStyle.Render(title))
	if m.world.ContactPaused {
		b.WriteString("  " + pausedStyle.Render("[contact pause]"))
	}
	if !m.running {
		b.WriteString("  " + pausedStyle.Render("[stopped]"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(pausedStyle.Render("error: "+m.err.Error()) + "\n")
	}

	if len(m.history) >= 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("net charge (e)"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	for i, body := range m.world.Bodies {
		b.WriteString(m.renderBody(i, body))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · tab select · +/- paint charge · r reset · q quit"))
	return b.String()
}

func (m *Model) renderBody(i int, body world.Body) string {
	marker := "  "
	if i == m.selected {
		marker = selectStyle.Render("> ")
	}

	switch t := body.(type) {
	case *world.Conductor:
		line := fmt.Sprintf("%s r=%.0f offset=%+d electrons=%d",
			t.Kind(), t.R, t.Offset, len(t.Angles))
		if t.Grounded {
			line += " " + groundStyle.Render("[grounded]")
		}
		return marker + labelStyle.Render(fmt.Sprintf("body %d ", i)) + valueStyle.Render(line)
	case *world.Insulator:
		line := fmt.Sprintf("%s r=%.0f painted +%d/-%d",
			t.Kind(), t.R, len(t.StaticPosRel), len(t.StaticNegRel))
		return marker + labelStyle.Render(fmt.Sprintf("body %d ", i)) + valueStyle.Render(line)
	}
	return marker
}
