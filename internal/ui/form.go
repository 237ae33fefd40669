package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/agenda/internal/agenda"
	"github.com/nibzard/agenda/internal/todo"
)

const (
	fieldName = iota
	fieldDate
	fieldTime
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Date", "Time", "Description"}

// taskForm edits a Draft. editID is empty when adding.
type taskForm struct {
	editID string
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newTaskForm(dates DateInput, times TimeInput) *taskForm {
	f := &taskForm{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[fieldName].Placeholder = "Buy milk"
	f.inputs[fieldDate].Placeholder = dates.Placeholder()
	f.inputs[fieldDate].CharLimit = 25
	f.inputs[fieldTime].Placeholder = times.Placeholder()
	f.inputs[fieldTime].CharLimit = 5
	f.setFocus(fieldName)
	return f
}

// fill loads an existing task into the form for editing.
func (f *taskForm) fill(t todo.Task) {
	f.editID = t.ID
	f.inputs[fieldName].SetValue(t.Name)
	f.inputs[fieldDate].SetValue(t.Date)
	f.inputs[fieldTime].SetValue(t.Time)
	f.inputs[fieldDescription].SetValue(t.Description)
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = (i%fieldCount + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// draft reads the inputs into a Draft. Date and time go through the input
// capabilities; the name is checked by todo.ValidateDraft.
func (f *taskForm) draft(dates DateInput, times TimeInput) (todo.Draft, error) {
	date, err := dates.Parse(f.inputs[fieldDate].Value())
	if err != nil {
		return todo.Draft{}, &todo.ValidationError{Path: "date", Err: err}
	}
	tm, err := times.Parse(f.inputs[fieldTime].Value())
	if err != nil {
		return todo.Draft{}, &todo.ValidationError{Path: "time", Err: err}
	}
	d := todo.Draft{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Date:        date,
		Time:        tm,
	}
	if err := todo.ValidateDraft(d); err != nil {
		return todo.Draft{}, err
	}
	return d, nil
}

// fieldFor maps a validation error back to the input it came from.
func fieldFor(err error) int {
	var ve *todo.ValidationError
	if !errors.As(err, &ve) {
		return fieldName
	}
	switch ve.Path {
	case "date":
		return fieldDate
	case "time":
		return fieldTime
	default:
		return fieldName
	}
}

// errorText renders a form error in the configured language.
func errorText(err error, labels agenda.Labels) string {
	if errors.Is(err, todo.ErrNameRequired) {
		return labels.NameRequired
	}
	return err.Error()
}

func (f *taskForm) title() string {
	if f.editID == "" {
		return "New task"
	}
	return "Edit task"
}

func (f *taskForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title()) + "\n\n")
	for i := range f.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	return formStyle.Render(b.String())
}
