package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/asolade/outbreak/internal/epi"
	"github.com/asolade/outbreak/internal/model"
)

const (
	historyCapacity = 400
	framesPerSecond = 30
)

type TickMsg time.Time

// Model is the Bubble Tea state for the live outbreak view.
type Model struct {
	dyn   *model.SEIRD
	integ epi.Integrator

	state   epi.State
	initial epi.State
	t       float64
	dt      float64
	speed   float64 // simulated days per wall second
	running bool

	infHist  []float64
	deadHist []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

// NewModel initializes the live view at the outbreak seed state.
func NewModel(dyn *model.SEIRD, integ epi.Integrator, initState epi.State, dt float64) Model {
	params := dyn.GetParams()
	initialParams := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		dyn:           dyn,
		integ:         integ,
		state:         initState.Clone(),
		initial:       initState.Clone(),
		dt:            dt,
		speed:         2.0,
		running:       true,
		infHist:       make([]float64, 0, historyCapacity),
		deadHist:      make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "+", "=":
			m.speed = math.Min(m.speed*2, 64)
		case "-", "_":
			m.speed = math.Max(m.speed/2, 0.25)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the outbreak by one frame's worth of simulated time.
func (m *Model) step() {
	span := m.speed / framesPerSecond
	n := int(math.Ceil(span / m.dt))
	if n < 1 {
		n = 1
	}
	dt := span / float64(n)

	for i := 0; i < n; i++ {
		next := m.integ.Step(m.dyn, m.state, m.t, dt)
		if !next.IsValid() {
			m.running = false
			return
		}
		m.state = next
		m.t += dt
	}

	m.infHist = append(m.infHist, m.state[epi.I])
	if len(m.infHist) > historyCapacity {
		m.infHist = m.infHist[1:]
	}
	m.deadHist = append(m.deadHist, m.state[epi.D])
	if len(m.deadHist) > historyCapacity {
		m.deadHist = m.deadHist[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initial.Clone()
	m.infHist = m.infHist[:0]
	m.deadHist = m.deadHist[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		m.dyn.SetParam(k, v)
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	m.dyn.SetParam(key, newVal)
}

func (m Model) View() string {
	var charts strings.Builder
	if len(m.infHist) > 1 {
		chart := asciigraph.Plot(m.infHist, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("infectious"))
		charts.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.deadHist) > 1 {
		chart := asciigraph.Plot(m.deadHist, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("cumulative deaths"))
		charts.WriteString(graphStyle.Render(chart) + "\n")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("SEIRD OUTBREAK ("+m.dyn.Tx.Name()+" beta)") + "\n")
	if m.running {
		s.WriteString(fmt.Sprintf("RUNNING  %.2gx\n\n", m.speed))
	} else {
		s.WriteString("PAUSED\n\n")
	}

	s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%.1f", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Susceptible") + valueStyle.Render(fmt.Sprintf("%.0f", m.state[epi.S])) + "\n")
	s.WriteString(labelStyle.Render("Exposed") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[epi.E])) + "\n")
	s.WriteString(labelStyle.Render("Infectious") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[epi.I])) + "\n")
	s.WriteString(labelStyle.Render("Recovered") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[epi.R])) + "\n")
	s.WriteString(labelStyle.Render("Dead") + valueStyle.Render(fmt.Sprintf("%.1f", m.state[epi.D])) + "\n")
	s.WriteString(labelStyle.Render("Beta(t)") + valueStyle.Render(fmt.Sprintf("%.3g", m.dyn.Tx.Beta(m.t))) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		barWidth := 10
		ratio := 0.5
		if initial != 0 {
			ratio = val / (2.0 * initial)
		}
		if ratio > 1 {
			ratio = 1
		} else if ratio < 0 {
			ratio = 0
		}
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-12s %s %.3g", k, bar, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune +/-:Speed"))

	stats := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, charts.String(), stats)
}
