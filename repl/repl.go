// Package repl reads fret specs line by line and prints the chords they
// spell. Bad input is reported and the prompt comes back; only quit (or the
// end of input) stops the loop.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/instrument"
	"github.com/jsphweid/chordex/pitch"
)

const prompt = "> "

const help = `enter a fret spec such as 022100 or "x 3 2 0 1 0"
  tuning <pitches>   play on a custom tuning, e.g. tuning D2 A2 D3 G3 B3 E4
  instrument <name>  switch to a named instrument
  instruments        list named instruments
  show               print the current tuning
  short | long       choose chord name format
  quit               leave`

type Options struct {
	Catalog    *chord.Catalog
	Registry   *instrument.Registry
	Instrument *instrument.Instrument
	// registry name Instrument came from, if any; it is looked up again
	// before each fret spec so preset file reloads apply
	InstrumentName string
	Spelling       pitch.Spelling
	Short          bool
	Logger         *slog.Logger
}

type session struct {
	Options
	out    io.Writer
	styles styles
}

type styles struct {
	prompt lipgloss.Style
	chord  lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		prompt: r.NewStyle().Foreground(lipgloss.Color("6")),
		chord:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Faint(true),
		err:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Run loops until quit or EOF. Both end the session without error.
func Run(in io.Reader, out io.Writer, opts Options) error {
	s := &session{Options: opts, out: out, styles: newStyles(out)}
	s.Logger.Debug("repl.started", "instrument", s.Instrument.Name, "tuning", s.Instrument.Tuning())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, s.styles.prompt.Render(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if done := s.eval(line); done {
			return nil
		}
	}
}

func (s *session) eval(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true
	case "help", "?":
		s.println(help)
	case "show":
		s.println(fmt.Sprintf("%s: %s", s.Instrument.Name, s.Instrument.Tuning()))
	case "short":
		s.Short = true
	case "long":
		s.Short = false
	case "tuning":
		inst, err := instrument.FromTuning("custom", arg)
		if err != nil {
			s.fail(err)
			return false
		}
		s.Instrument = inst
		s.InstrumentName = ""
		s.println(fmt.Sprintf("tuning set to %s", inst.Tuning()))
	case "instrument":
		inst, err := s.Registry.Get(arg)
		if err != nil {
			s.fail(err)
			return false
		}
		s.Instrument = inst
		s.InstrumentName = arg
		s.println(fmt.Sprintf("%s: %s", inst.Name, inst.Tuning()))
	case "instruments":
		for _, name := range s.Registry.Names() {
			s.println(name)
		}
	default:
		s.identify(line)
	}
	return false
}

func (s *session) identify(spec string) {
	if s.InstrumentName != "" {
		// a preset dropped from the file keeps its last tuning
		if inst, err := s.Registry.Get(s.InstrumentName); err == nil {
			s.Instrument = inst
		}
	}
	pitches, err := s.Instrument.Resolve(spec)
	if err != nil {
		s.fail(err)
		return
	}
	matches, err := s.Catalog.Identify(pitches)
	if err != nil {
		s.fail(err)
		return
	}
	s.Logger.Debug("repl.identified", "spec", spec, "matches", len(matches))
	if len(matches) == 0 {
		s.println(s.styles.muted.Render("no matches"))
		return
	}
	for _, m := range matches {
		name := m.Long(s.Spelling)
		if s.Short {
			name = m.Short(s.Spelling)
		}
		s.println(s.styles.chord.Render(name))
	}
}

func (s *session) fail(err error) {
	var pe *instrument.ParseError
	var lm *instrument.LengthMismatchError
	msg := err.Error()
	switch {
	case errors.As(err, &pe):
		msg = fmt.Sprintf("could not read %q", pe.Token)
	case errors.As(err, &lm):
		msg = fmt.Sprintf("expected %d positions, one per string, got %d", lm.Want, lm.Got)
	case errors.Is(err, chord.ErrSilentChord):
		msg = "every string is muted"
	}
	s.println(s.styles.err.Render(msg))
}

func (s *session) println(text string) {
	fmt.Fprintln(s.out, text)
}
