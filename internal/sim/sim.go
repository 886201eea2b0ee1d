// Package sim runs the controller against a terminal front panel
// instead of real hardware: wire channels render as colored blocks,
// the space bar stands in for the mode button and the arrow keys drive
// the synthetic signal source.
package sim

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dooshek/vibelight/internal/audio"
	"github.com/dooshek/vibelight/internal/button"
	"github.com/dooshek/vibelight/internal/engine"
	"github.com/dooshek/vibelight/internal/loudness"
)

const framePeriod = 33 * time.Millisecond

// tickMsg drives one engine step per UI frame.
type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	wireOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Bold(true)

	wireOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#303030"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF87"))

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type model struct {
	eng  *engine.Engine
	deb  *button.Debouncer
	tone *audio.Tone
}

func newModel(eng *engine.Engine, deb *button.Debouncer, tone *audio.Tone) model {
	return model{eng: eng, deb: deb, tone: tone}
}

func tick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.eng.Step(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			// One full button tap.
			m.deb.FallingEdge()
			m.deb.RisingEdge()
		case "a":
			s := m.eng.Sampler()
			if s.Algorithm() == loudness.PeakToPeak {
				s.SetAlgorithm(loudness.RMS)
			} else {
				s.SetAlgorithm(loudness.PeakToPeak)
			}
		case "g":
			s := m.eng.Sampler()
			s.SetGain((s.Gain() + 1) % 3)
		case "up":
			if m.tone != nil {
				m.tone.SetAmplitude(m.tone.Amplitude() + 0.05)
			}
		case "down":
			if m.tone != nil {
				m.tone.SetAmplitude(m.tone.Amplitude() - 0.05)
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	seq := m.eng.Sequencer()
	s := m.eng.Sampler()
	mode := m.eng.ActiveMode()

	var b strings.Builder
	b.WriteString(titleStyle.Render("VIBELIGHT"))
	b.WriteString("\n\n")

	for i := 0; i < seq.Count(); i++ {
		if seq.IsOn(i) {
			b.WriteString(wireOnStyle.Render("██"))
		} else {
			b.WriteString(wireOffStyle.Render("░░"))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("mode: %-14s (%s)\n", mode.Name, mode.Kind))
	b.WriteString(fmt.Sprintf("algorithm: %-4s gain: %-7s low: %-5d high: %d\n",
		s.Algorithm(), s.Gain(), s.Low(), s.High()))
	b.WriteString(signalBar(m.eng.LastSignal(), s.Low(), s.High()))
	if m.tone != nil {
		b.WriteString(fmt.Sprintf("\ntone amplitude: %.2f", m.tone.Amplitude()))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("space: mode • a: algorithm • g: gain • ↑/↓: level • q: quit"))
	return b.String()
}

// signalBar renders the last signal against the calibration pair. The
// bar spans [0, high*1.25] with a marker at the low threshold.
func signalBar(signal, low, high uint16) string {
	const width = 40
	span := int(high) + int(high)/4
	if span == 0 {
		span = 1
	}
	fill := int(signal) * width / span
	if fill > width {
		fill = width
	}
	mark := int(low) * width / span
	if mark >= width {
		mark = width - 1
	}

	var b strings.Builder
	b.WriteString("signal: [")
	for i := 0; i < width; i++ {
		switch {
		case i == mark:
			b.WriteString(markStyle.Render("|"))
		case i < fill:
			b.WriteString(barStyle.Render("#"))
		default:
			b.WriteString(" ")
		}
	}
	b.WriteString(fmt.Sprintf("] %d", signal))
	return b.String()
}

// Run blocks running the front panel until the user quits.
func Run(eng *engine.Engine, deb *button.Debouncer, tone *audio.Tone) error {
	p := tea.NewProgram(newModel(eng, deb, tone), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
