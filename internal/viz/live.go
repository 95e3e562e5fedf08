package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/san-kum/dpend/internal/trace"
)

const (
	CanvasWidth     = 60
	CanvasHeight    = 24
	historyCapacity = 300
	timeTemplate    = "time = %.1fs"
)

type TickMsg time.Time

// Model is the bubbletea model of the live view. It drives the simulator one
// step per tick.
type Model struct {
	sim           *sim.Simulator
	recorder      *trace.Recorder
	canvas        *Canvas
	view          Viewport
	name          string
	frame         int
	joint1        pendulum.Position
	joint2        pendulum.Position
	running       bool
	showHelp      bool
	energyHistory []float64
}

func NewModel(s *sim.Simulator, rec *trace.Recorder, name string) Model {
	canvas := NewCanvas(CanvasWidth, CanvasHeight)
	st := s.State()
	j1, j2 := st.Joints()
	return Model{
		sim:           s,
		recorder:      rec,
		canvas:        canvas,
		view:          NewViewport(canvas, st.TotalLength()),
		name:          name,
		joint1:        j1,
		joint2:        j2,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	interval := time.Duration(m.sim.Dt() * float64(time.Second))
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Frame is the index the next step will be recorded under.
func (m Model) Frame() int { return m.frame }

func (m Model) Running() bool { return m.running }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case ".":
			if !m.running {
				m.advance()
			}
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance steps the simulation once and hands the far joint to the trace.
func (m *Model) advance() {
	m.joint1, m.joint2 = m.sim.Step()
	m.recorder.Record(m.frame, m.joint2)
	m.frame++

	m.energyHistory = append(m.energyHistory, m.sim.State().Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset restarts the sequence at frame 0. The trail is dropped by the
// recorder when frame 0 is recorded.
func (m *Model) reset() {
	m.sim.Reset()
	m.frame = 0
	m.joint1, m.joint2 = m.sim.State().Joints()
	m.energyHistory = m.energyHistory[:0]
}

func (m Model) elapsed() float64 {
	if m.frame == 0 {
		return 0
	}
	return m.sim.Elapsed(m.frame - 1)
}

func (m *Model) draw() {
	m.canvas.Clear()
	DrawPendulum(m.canvas, m.view, m.recorder.Buffer().Positions(), m.joint1, m.joint2)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	st := m.sim.State()
	var s strings.Builder
	s.WriteString(headerStyle.Render("DOUBLE PENDULUM "+strings.ToUpper(m.name)) + "\n")

	switch {
	case !(sim.Frame{Joint1: m.joint1, Joint2: m.joint2}).IsFinite():
		s.WriteString(statusUnstable.Render("UNSTABLE"))
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING"))
	default:
		s.WriteString(statusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	s.WriteString(valueStyle.Render(fmt.Sprintf(timeTemplate, m.elapsed())) + "\n\n")

	if len(m.energyHistory) > 1 && allFinite(m.energyHistory) {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, format string, args ...any) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, args...)) + "\n")
	}
	row("Frame", "%d", m.frame)
	row("Energy", "%.3f", st.Energy())
	row("θ1 / ω1", "%.3f / %.3f", st.Arm1.Angle, st.Arm1.AngularVelocity)
	row("θ2 / ω2", "%.3f / %.3f", st.Arm2.Angle, st.Arm2.AngularVelocity)
	row("Trail", "%d/%d", m.recorder.Buffer().Len(), m.recorder.Buffer().Cap())

	s.WriteString(helpStyle.Render("SP:Pause .:Step R:Reset\n?:Help   Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
  Space  pause / resume
  .      single step while paused
  R      reset to the initial state
  ?      toggle this help
  Q      quit
` + "\n" + mainView
	}
	return mainView
}

func allFinite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Run opens the live view and blocks until the user quits.
func Run(s *sim.Simulator, rec *trace.Recorder, name string) error {
	p := tea.NewProgram(NewModel(s, rec, name), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
