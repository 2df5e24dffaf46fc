// Package tui is an interactive fret entry screen that names the chord as
// the fret spec is typed.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/instrument"
	"github.com/jsphweid/chordex/pitch"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	chordStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type Model struct {
	catalog    *chord.Catalog
	registry   *instrument.Registry
	instrument *instrument.Instrument
	spelling   pitch.Spelling

	input   textinput.Model
	pitches []pitch.Specific
	matches []chord.Match
	err     error
}

func New(c *chord.Catalog, r *instrument.Registry, inst *instrument.Instrument, sp pitch.Spelling) Model {
	ti := textinput.New()
	ti.Placeholder = strings.Repeat("0", inst.StringCount())
	ti.Prompt = "frets> "
	ti.CharLimit = 4 * inst.StringCount()
	ti.Focus()
	return Model{catalog: c, registry: r, instrument: inst, spelling: sp, input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m = m.nextInstrument()
			return m.evaluate(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m.evaluate(), cmd
}

// nextInstrument cycles through the registry in name order.
func (m Model) nextInstrument() Model {
	names := m.registry.Names()
	if len(names) == 0 {
		return m
	}
	next := names[0]
	for i, name := range names {
		if name == m.instrument.Name && i+1 < len(names) {
			next = names[i+1]
		}
	}
	if inst, err := m.registry.Get(next); err == nil {
		m.instrument = inst
		m.input.Placeholder = strings.Repeat("0", inst.StringCount())
		m.input.CharLimit = 4 * inst.StringCount()
	}
	return m
}

func (m Model) evaluate() Model {
	m.pitches, m.matches, m.err = nil, nil, nil
	spec := strings.TrimSpace(m.input.Value())
	if spec == "" {
		return m
	}
	pitches, err := m.instrument.Resolve(spec)
	if err != nil {
		m.err = err
		return m
	}
	m.pitches = pitches
	m.matches, m.err = m.catalog.Identify(pitches)
	return m
}

func (m Model) Matches() []chord.Match {
	return m.matches
}

func (m Model) Err() error {
	return m.err
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s", m.instrument.Name, m.instrument.Tuning())))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	var lm *instrument.LengthMismatchError
	switch {
	case errors.As(m.err, &lm):
		b.WriteString(hintStyle.Render(fmt.Sprintf("%d of %d strings", lm.Got, lm.Want)))
	case m.err != nil:
		b.WriteString(errStyle.Render(m.err.Error()))
	case len(m.pitches) > 0 && len(m.matches) == 0:
		b.WriteString(hintStyle.Render("no matches"))
	default:
		for _, match := range m.matches {
			b.WriteString(chordStyle.Render(match.Short(m.spelling)))
			b.WriteString("  " + match.Long(m.spelling) + "\n")
		}
	}
	b.WriteString("\n\n" + hintStyle.Render("tab: next instrument  esc: quit"))
	return b.String()
}

func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
