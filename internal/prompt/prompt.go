// Package prompt asks for numeric run parameters on the terminal. A blank
// answer takes the field's default.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrCanceled = errors.New("prompt: canceled")

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

type Field struct {
	Label   string
	Default float64
}

// Model is a sequence of numeric fields answered one at a time.
type Model struct {
	fields   []Field
	values   []float64
	input    string
	err      string
	canceled bool
}

func New(fields ...Field) Model {
	return Model{fields: fields, values: make([]float64, 0, len(fields))}
}

// Parameters prompts for the map parameter and the seed.
func Parameters(a, x0 float64) Model {
	return New(
		Field{Label: fmt.Sprintf("parameter a (0<a<4, default to %g)", a), Default: a},
		Field{Label: fmt.Sprintf("initial x0 (0<=x0<=1, default to %g)", x0), Default: x0},
	)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Done() bool {
	return len(m.values) == len(m.fields)
}

func (m Model) Canceled() bool {
	return m.canceled
}

// Values returns the answers given so far, in field order.
func (m Model) Values() []float64 {
	return append([]float64(nil), m.values...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.Done() {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if strings.ContainsRune("0123456789.-+eE", r) {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	field := m.fields[len(m.values)]
	v := field.Default
	if s := strings.TrimSpace(m.input); s != "" {
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			m.err = fmt.Sprintf("not a number: %q", s)
			return m, nil
		}
		v = parsed
	}

	m.values = append(m.values, v)
	m.input = ""
	m.err = ""
	if m.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	for i, v := range m.values {
		b.WriteString(labelStyle.Render(m.fields[i].Label+":") + " " + valueStyle.Render(strconv.FormatFloat(v, 'g', -1, 64)) + "\n")
	}
	if m.canceled || m.Done() {
		return b.String()
	}

	b.WriteString(labelStyle.Render(m.fields[len(m.values)].Label+":") + " " + m.input + "█\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}
	b.WriteString(hintStyle.Render("enter to accept, esc to cancel") + "\n")
	return b.String()
}

// Run drives the model to completion and returns the answers.
func Run(m Model, opts ...tea.ProgramOption) ([]float64, error) {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(Model)
	if !ok || fm.Canceled() || !fm.Done() {
		return nil, ErrCanceled
	}
	return fm.Values(), nil
}

// WithIO returns program options that read keys from in and draw to out.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}
}
