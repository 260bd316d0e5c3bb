package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/scene"
)

const (
	width         = 80
	height        = 24
	trailCapacity = 300
	maxSpeed      = 16
)

type TickMsg time.Time

type extent struct{ w, h float64 }

// Model steps a simulation on every tick and renders it.
type Model struct {
	sc      *scene.Scene
	build   func() (dynamo.World, error)
	sim     *dynamo.Simulator
	cfg     dynamo.Config
	canvas  *Canvas
	view    Viewport
	sizes   map[string]extent
	tracked string
	trail   []float64
	running bool
	speed   int
	err     error
}

// NewModel builds the first world with build; r rebuilds it. cfg.Steps > 0
// pauses the view once that many steps were taken.
func NewModel(sc *scene.Scene, build func() (dynamo.World, error), cfg dynamo.Config) (Model, error) {
	w, err := build()
	if err != nil {
		return Model{}, err
	}
	sim := dynamo.New(w)
	if err := sim.Validate(cfg); err != nil {
		return Model{}, err
	}

	canvas := NewCanvas(width, height)
	dw, dh := canvas.Dots()
	sizes := make(map[string]extent, len(sc.Bodies))
	for _, b := range sc.Bodies {
		sizes[b.Name] = extent{b.Width, b.Height}
	}

	return Model{
		sc:      sc,
		build:   build,
		sim:     sim,
		cfg:     cfg,
		canvas:  canvas,
		view:    FitScene(sc, dw, dh),
		sizes:   sizes,
		tracked: sc.Tracked(),
		trail:   make([]float64, 0, trailCapacity),
		running: true,
		speed:   1,
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil && !m.done() {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) done() bool {
	return m.cfg.Steps > 0 && m.sim.Steps() >= m.cfg.Steps
}

// step advances speed steps, stopping at the step limit or a bad state.
func (m *Model) step() {
	for i := 0; i < m.speed; i++ {
		if m.done() {
			m.running = false
			return
		}
		f := m.sim.Advance(m.cfg)
		if m.cfg.ValidateState && !f.IsValid() {
			m.err = &dynamo.SimulationError{Step: f.Step, Time: f.Time, Wrapped: dynamo.ErrInvalidState}
			m.running = false
			return
		}
		if b, ok := f.Body(m.tracked); ok {
			m.trail = append(m.trail, b.Y)
			if len(m.trail) > trailCapacity {
				m.trail = m.trail[1:]
			}
		}
	}
}

func (m *Model) reset() {
	w, err := m.build()
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.sim.Reset(w)
	m.trail = m.trail[:0]
	m.err = nil
	m.running = true
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, b := range m.sim.Last().Bodies {
		size, ok := m.sizes[b.Name]
		if !ok {
			continue
		}
		m.view.Box(m.canvas, b.X, b.Y, size.w, size.h, b.Angle)
	}
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("ERROR: " + m.err.Error())
	case m.done():
		return StatusPaused.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sc.Name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.trail) > 1 {
		chart := asciigraph.Plot(m.trail, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(m.tracked+" y"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(Field("Time", fmt.Sprintf("%.2fs", m.sim.Time())) + "\n")
	s.WriteString(Field("Step", fmt.Sprintf("%d", m.sim.Steps())) + "\n")
	s.WriteString(Field("Speed", fmt.Sprintf("%dx", m.speed)) + "\n")
	s.WriteString(Field("Bodies", fmt.Sprintf("%d", len(m.sc.Bodies))) + "\n")
	s.WriteString(Field("Joints", fmt.Sprintf("%d", len(m.sc.Joints))) + "\n")

	if b, ok := m.sim.Last().Body(m.tracked); ok {
		s.WriteString("\n" + strings.ToUpper(m.tracked) + "\n")
		s.WriteString(Field("x", fmt.Sprintf("%.2f", b.X)) + "\n")
		s.WriteString(Field("y", fmt.Sprintf("%.2f", b.Y)) + "\n")
		s.WriteString(Field("angle", fmt.Sprintf("%.2f", b.Angle)) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the program on the terminal.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
