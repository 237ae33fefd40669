package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/agenda/internal/agenda"
	"github.com/nibzard/agenda/internal/logging"
	"github.com/nibzard/agenda/internal/todo"
)

// Option configures the UI model.
type Option func(*tuiModel)

// WithLogger sets the logger that receives mutation and validation records.
func WithLogger(logger *log.Logger) Option {
	return func(m *tuiModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithInputs replaces the date and time input capabilities.
func WithInputs(dates DateInput, times TimeInput) Option {
	return func(m *tuiModel) {
		if dates != nil {
			m.dates = dates
		}
		if times != nil {
			m.times = times
		}
	}
}

// WithRegroupInterval sets how often the list is regrouped against the clock.
// Zero disables the timer.
func WithRegroupInterval(d time.Duration) Option {
	return func(m *tuiModel) {
		m.tickInterval = d
	}
}

type tuiModel struct {
	store      *todo.Store
	classifier *agenda.Classifier
	logger     *log.Logger
	dates      DateInput
	times      TimeInput
	keys       KeyMap
	help       help.Model
	title      string

	groups []agenda.Group
	rows   []todo.Task // tasks in display order, the cursor indexes this
	cursor int
	now    time.Time

	form     *taskForm
	status   string
	showHelp bool

	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(store *todo.Store, classifier *agenda.Classifier, opts ...Option) *tuiModel {
	if classifier == nil {
		classifier = agenda.NewClassifier()
	}
	m := &tuiModel{
		store:        store,
		classifier:   classifier,
		logger:       logging.Discard(),
		dates:        TextDateInput{},
		times:        TextTimeInput{},
		keys:         DefaultKeyMap(),
		help:         help.New(),
		title:        "Agenda",
		tickInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	if m.tickInterval <= 0 {
		return nil
	}
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	case tea.KeyMsg:
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		return m, m.updateList(msg)
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Add):
		m.form = newTaskForm(m.dates, m.times)
		return textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			return nil
		}
		m.form = newTaskForm(m.dates, m.times)
		m.form.fill(task)
		return textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		return nil
	case key.Matches(msg, m.keys.Save):
		m.saveForm()
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m.form.setFocus(m.form.focus - 1)
	}
	m.form.err = ""
	return m.form.update(msg)
}

// saveForm validates the form and applies it to the store. On a validation
// error the store is left untouched and the form stays open.
func (m *tuiModel) saveForm() {
	d, err := m.form.draft(m.dates, m.times)
	if err != nil {
		m.form.err = errorText(err, m.labels())
		m.form.setFocus(fieldFor(err))
		m.logger.Warn("task rejected", "op", m.formOp(), "error", err)
		return
	}

	var task todo.Task
	if m.form.editID == "" {
		task = m.store.Add(d)
	} else {
		task, err = m.store.Edit(m.form.editID, d)
		if err != nil {
			m.form = nil
			m.fail("edit", err)
			return
		}
	}
	m.logger.Debug("task saved", "op", m.formOp(), "task_id", task.ID)
	m.form = nil
	m.refresh()
	m.selectID(task.ID)
}

func (m *tuiModel) formOp() string {
	if m.form == nil || m.form.editID == "" {
		return "add"
	}
	return "edit"
}

func (m *tuiModel) toggleSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	updated, err := m.store.ToggleCompletion(task.ID)
	if err != nil {
		m.fail("toggle", err)
		return
	}
	m.logger.Debug("task toggled", "op", "toggle", "task_id", updated.ID, "completed", updated.Completed)
	m.refresh()
	m.selectID(updated.ID)
}

func (m *tuiModel) deleteSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	if err := m.store.Delete(task.ID); err != nil {
		m.fail("delete", err)
		return
	}
	m.logger.Debug("task deleted", "op", "delete", "task_id", task.ID)
	m.refresh()
}

func (m *tuiModel) fail(op string, err error) {
	m.logger.Error("task operation failed", "op", op, "error", err)
	m.status = err.Error()
	m.refresh()
}

// refresh regroups the store against the classifier clock. The cursor stays
// on the same task when it still exists.
func (m *tuiModel) refresh() {
	selectedID := ""
	if task, ok := m.selected(); ok {
		selectedID = task.ID
	}

	m.now = m.classifier.Now()
	m.groups = agenda.Classify(m.store.List(), m.now, m.labels())
	m.rows = m.rows[:0]
	for _, g := range m.groups {
		m.rows = append(m.rows, g.Tasks...)
	}

	if selectedID != "" && m.selectID(selectedID) {
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) selectID(id string) bool {
	for i, t := range m.rows {
		if t.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return todo.Task{}, false
	}
	return m.rows[m.cursor], true
}

func (m *tuiModel) labels() agenda.Labels {
	if m.classifier.Labels.Name == "" {
		return agenda.DefaultLabels
	}
	return m.classifier.Labels
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.title, m.now)

	if m.form != nil {
		b.WriteString(m.form.view())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.View(formKeys(m.keys))))
		return b.String()
	}

	if len(m.rows) == 0 {
		b.WriteString("\n  No tasks. Press a to add one.\n")
	}
	row := 0
	for _, g := range m.groups {
		writeGroup(&b, g, m.labels(), &row, m.cursor)
	}
	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder, title string, now time.Time) {
	b.WriteString(titleStyle.Render(title))
	b.WriteString(" " + helpStyle.Render(now.Format("Mon 2006-01-02")))
	b.WriteString("\n")
}

func writeGroup(b *strings.Builder, g agenda.Group, labels agenda.Labels, row *int, cursor int) {
	style := groupStyle
	if g.Bucket == agenda.Overdue {
		style = overdueGroupStyle
	}
	b.WriteString(style.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Tasks))))
	b.WriteString("\n")
	for _, t := range g.Tasks {
		writeTask(b, t, labels, *row == cursor)
		*row++
	}
}

func writeTask(b *strings.Builder, t todo.Task, labels agenda.Labels, selected bool) {
	check := "✗"
	name := t.Name
	if t.Completed {
		check = "✓"
		name = completedTaskStyle.Render(name)
	}
	line := fmt.Sprintf("%s %s", check, name)
	if selected {
		b.WriteString(selectedTaskStyle.Render("> " + line))
	} else {
		b.WriteString(taskStyle.Render("  " + line))
	}
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(agenda.TaskSubtitle(t, labels)))
	b.WriteString("\n")
}
