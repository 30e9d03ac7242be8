// Package tui collects mock generation parameters with an interactive
// terminal form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swarnavabiswas0/Feedback/internal/mockdata"
	"github.com/swarnavabiswas0/Feedback/internal/report"
)

// ErrCancelled is returned when the user leaves the form without submitting
var ErrCancelled = errors.New("form cancelled")

// Values are the parameters entered in the form
type Values struct {
	EventName string
	EventDate string
	Count     int
	Format    report.Format
}

const (
	fieldEvent = iota
	fieldDate
	fieldCount
	fieldFormat
	fieldTotal
)

var fieldLabels = [fieldTotal]string{
	"Event name",
	"Event date (DD-MM-YYYY)",
	"Number of students",
	"Report format (docx/pdf)",
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / generate")),
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// Form is the bubbletea model of the mock generation form
type Form struct {
	inputs    [fieldTotal]textinput.Model
	focus     int
	errs      [fieldTotal]string
	values    Values
	submitted bool
	cancelled bool
}

// NewForm creates a form prefilled with defaults
func NewForm(defaults Values) Form {
	var f Form
	placeholders := [fieldTotal]string{"TechFest", "15-08-2024", "50", "docx"}
	prefill := [fieldTotal]string{defaults.EventName, defaults.EventDate, "", string(defaults.Format)}
	if defaults.Count > 0 {
		prefill[fieldCount] = strconv.Itoa(defaults.Count)
	}

	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.SetValue(prefill[i])
		f.inputs[i] = ti
	}
	f.inputs[fieldCount].CharLimit = 6
	f.inputs[fieldFormat].CharLimit = 4
	f.inputs[fieldEvent].Focus()
	return f
}

// Init implements tea.Model
func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			f.cancelled = true
			return f, tea.Quit
		case key.Matches(msg, keys.Next):
			cmd := f.moveFocus(1)
			return f, cmd
		case key.Matches(msg, keys.Prev):
			cmd := f.moveFocus(-1)
			return f, cmd
		case key.Matches(msg, keys.Submit):
			if f.focus < fieldTotal-1 {
				cmd := f.moveFocus(1)
				return f, cmd
			}
			if f.validate() {
				f.submitted = true
				return f, tea.Quit
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *Form) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldTotal) % fieldTotal
	return f.inputs[f.focus].Focus()
}

// validate parses every field and records per-field messages
func (f *Form) validate() bool {
	f.errs = [fieldTotal]string{}
	var v Values

	v.EventName = strings.TrimSpace(f.inputs[fieldEvent].Value())
	if v.EventName == "" {
		f.errs[fieldEvent] = "event name is required"
	}

	v.EventDate = strings.TrimSpace(f.inputs[fieldDate].Value())
	if _, err := mockdata.ParseEventDate(v.EventDate); err != nil {
		f.errs[fieldDate] = "Invalid date format. Please use DD-MM-YYYY."
	}

	count, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldCount].Value()))
	switch {
	case err != nil:
		f.errs[fieldCount] = "enter a whole number"
	case count < 1 || count > mockdata.TimestampSpace:
		f.errs[fieldCount] = fmt.Sprintf("must be between 1 and %d", mockdata.TimestampSpace)
	}
	v.Count = count

	format, err := report.ParseFormat(strings.TrimSpace(f.inputs[fieldFormat].Value()))
	if err != nil {
		f.errs[fieldFormat] = "choose docx or pdf"
	}
	v.Format = format

	for i, e := range f.errs {
		if e != "" {
			f.inputs[f.focus].Blur()
			f.focus = i
			f.inputs[i].Focus()
			return false
		}
	}
	f.values = v
	return true
}

// View implements tea.Model
func (f Form) View() string {
	if f.submitted || f.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Mock Event Feedback"))
	b.WriteString("\n")

	for i, in := range f.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = focusedStyle.Render(fieldLabels[i])
		}
		b.WriteString(label + "\n" + in.View() + "\n")
		if f.errs[i] != "" {
			b.WriteString(errorStyle.Render(f.errs[i]) + "\n")
		}
	}

	b.WriteString(hintStyle.Render("tab/shift+tab move • enter next/generate • esc cancel"))
	return b.String()
}

// Result returns the submitted values. ok is false until the form is submitted.
func (f Form) Result() (Values, bool) {
	return f.values, f.submitted
}

// Run shows the form on out, reading keys from in, and returns the submitted values
func Run(ctx context.Context, in io.Reader, out io.Writer, defaults Values) (Values, error) {
	p := tea.NewProgram(NewForm(defaults),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return Values{}, fmt.Errorf("run form: %w", err)
	}

	values, ok := final.(Form).Result()
	if !ok {
		return Values{}, ErrCancelled
	}
	return values, nil
}
