package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/agenda/internal/agenda"
	"github.com/nibzard/agenda/internal/logging"
	"github.com/nibzard/agenda/internal/todo"
)

var referenceDay = time.Date(2024, 12, 6, 12, 0, 0, 0, time.UTC)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newTestModel(t *testing.T, labels agenda.Labels, opts ...Option) (*tuiModel, *todo.Store) {
	t.Helper()
	store, _, err := todo.SampleSeed().Store(todo.ValidationOptions{})
	if err != nil {
		t.Fatalf("sample store: %v", err)
	}
	classifier := &agenda.Classifier{Clock: agenda.FixedClock(referenceDay), Labels: labels}
	opts = append([]Option{WithRegroupInterval(0)}, opts...)
	return newTUIModel(store, classifier, opts...), store
}

func send(m *tuiModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func rowNames(m *tuiModel) []string {
	names := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		names = append(names, r.Name)
	}
	return names
}

func TestModelGroupsSampleTasks(t *testing.T) {
	m, _ := newTestModel(t, agenda.SpanishLabels)

	if got := strings.Join(rowNames(m), ","); got != "A,B,C,D,E" {
		t.Errorf("rows = %s, want A,B,C,D,E", got)
	}
	view := m.View()
	for _, want := range []string{"Hoy", "Mañana", "Mas tarde", "Sin fecha", "2024-12-06 - 10:00 AM", "Sin Fecha"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Atrasadas") {
		t.Error("empty overdue group should not be rendered")
	}
}

func TestModelCursorMovement(t *testing.T) {
	m, _ := newTestModel(t, agenda.SpanishLabels)

	send(m, keyMsg(tea.KeyUp))
	if m.cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.cursor)
	}
	send(m, runes("j"), runes("j"), keyMsg(tea.KeyDown))
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.cursor)
	}
	send(m, runes("j"), runes("j"), runes("j"))
	if m.cursor != 4 {
		t.Errorf("cursor moved past last row: %d", m.cursor)
	}
	send(m, runes("k"))
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.cursor)
	}
}

func TestModelToggle(t *testing.T) {
	m, store := newTestModel(t, agenda.SpanishLabels)

	send(m, keyMsg(tea.KeySpace))
	a, _ := store.Get("1")
	if !a.Completed {
		t.Fatal("space should toggle the selected task")
	}
	if m.cursor != 0 {
		t.Errorf("cursor should stay on the toggled task, got %d", m.cursor)
	}
	send(m, runes(" "))
	a, _ = store.Get("1")
	if a.Completed {
		t.Error("second toggle should restore the task")
	}
}

func TestModelAddTask(t *testing.T) {
	var logBuf bytes.Buffer
	logger := logging.NewFromConfig(&logBuf, "debug", "logfmt", false, false)
	m, store := newTestModel(t, agenda.SpanishLabels, WithLogger(logger))

	send(m, runes("a"))
	if m.form == nil {
		t.Fatal("a should open the form")
	}
	send(m,
		runes("Pay rent"),
		keyMsg(tea.KeyTab), runes("2024-12-05"),
		keyMsg(tea.KeyTab), runes("9:30"),
		keyMsg(tea.KeyTab), runes("before noon"),
		keyMsg(tea.KeyEnter),
	)
	if m.form != nil {
		t.Fatalf("form should close after saving, err = %q", m.form.err)
	}
	if store.Len() != 6 {
		t.Fatalf("store len = %d, want 6", store.Len())
	}

	added := store.List()[5]
	want := todo.Task{ID: added.ID, Name: "Pay rent", Description: "before noon", Date: "2024-12-05", Time: "09:30"}
	if added != want {
		t.Errorf("added = %+v, want %+v", added, want)
	}
	if m.groups[0].Bucket != agenda.Overdue || m.groups[0].Label != "Atrasadas" {
		t.Errorf("new overdue group missing: %+v", m.groups[0])
	}
	if sel, _ := m.selected(); sel.ID != added.ID {
		t.Errorf("cursor should move to the new task, got %s", sel.Name)
	}
	if !strings.Contains(logBuf.String(), "op=add") || !strings.Contains(logBuf.String(), added.ID) {
		t.Errorf("mutation not logged: %q", logBuf.String())
	}
}

func TestModelAddRejectsEmptyName(t *testing.T) {
	m, store := newTestModel(t, agenda.SpanishLabels)

	send(m, runes("a"), runes("   "), keyMsg(tea.KeyTab), runes("2024-12-06"), keyMsg(tea.KeyEnter))
	if m.form == nil {
		t.Fatal("form must stay open on validation error")
	}
	if m.form.err != "El nombre de la tarea es obligatorio" {
		t.Errorf("form error = %q", m.form.err)
	}
	if m.form.focus != fieldName {
		t.Errorf("focus = %d, want name field", m.form.focus)
	}
	if store.Len() != 5 {
		t.Errorf("store mutated on validation error: len %d", store.Len())
	}
	if !strings.Contains(m.View(), "El nombre de la tarea es obligatorio") {
		t.Error("validation message not rendered")
	}

	send(m, keyMsg(tea.KeyEsc))
	if m.form != nil {
		t.Error("esc should close the form")
	}
	if store.Len() != 5 {
		t.Errorf("cancel should not add a task: len %d", store.Len())
	}
}

func TestModelAddRejectsBadDate(t *testing.T) {
	m, store := newTestModel(t, agenda.EnglishLabels)

	send(m, runes("a"), runes("X"), keyMsg(tea.KeyTab), runes("12/06/2024"), keyMsg(tea.KeyEnter))
	if m.form == nil || !strings.Contains(m.form.err, "invalid date") {
		t.Fatalf("expected date error, form = %+v", m.form)
	}
	if m.form.focus != fieldDate {
		t.Errorf("focus = %d, want date field", m.form.focus)
	}
	if store.Len() != 5 {
		t.Errorf("store mutated: len %d", store.Len())
	}
}

func TestModelEditKeepsCompletion(t *testing.T) {
	m, store := newTestModel(t, agenda.SpanishLabels)

	// B is completed and sits second.
	send(m, runes("j"), runes("e"))
	if m.form == nil || m.form.editID != "2" {
		t.Fatalf("expected edit form for task 2, got %+v", m.form)
	}
	if got := m.form.inputs[fieldName].Value(); got != "B" {
		t.Errorf("name input = %q, want B", got)
	}

	m.form.inputs[fieldName].SetValue("B2")
	m.form.inputs[fieldDate].SetValue("2024-12-06")
	send(m, keyMsg(tea.KeyEnter))
	if m.form != nil {
		t.Fatalf("form still open: %q", m.form.err)
	}

	b, _ := store.Get("2")
	if b.Name != "B2" || b.Date != "2024-12-06" || !b.Completed {
		t.Errorf("edited task = %+v", b)
	}
	if m.groups[0].Bucket != agenda.Today || len(m.groups[0].Tasks) != 2 {
		t.Errorf("B2 should join today: %+v", m.groups[0])
	}
	if sel, _ := m.selected(); sel.ID != "2" {
		t.Errorf("cursor should follow the edited task, got %s", sel.ID)
	}
}

func TestModelDelete(t *testing.T) {
	m, store := newTestModel(t, agenda.SpanishLabels)

	send(m, runes("j"), runes("j"), runes("j"), runes("j"))
	send(m, runes("d"))
	if store.Len() != 4 {
		t.Fatalf("store len = %d, want 4", store.Len())
	}
	if _, ok := store.Get("5"); ok {
		t.Error("E should be deleted")
	}
	if m.cursor != 3 {
		t.Errorf("cursor should clamp to the last row, got %d", m.cursor)
	}
	if strings.Contains(m.View(), "Sin fecha") {
		t.Error("undated group should disappear once empty")
	}
}

func TestModelEmptyStore(t *testing.T) {
	store, err := todo.NewStore(nil)
	if err != nil {
		t.Fatal(err)
	}
	m := newTUIModel(store, &agenda.Classifier{Clock: agenda.FixedClock(referenceDay)}, WithRegroupInterval(0))

	send(m, keyMsg(tea.KeySpace), runes("d"), runes("e"))
	if m.form != nil {
		t.Error("edit without a selection should not open the form")
	}
	if !strings.Contains(m.View(), "No tasks") {
		t.Error("empty state not rendered")
	}
}

func TestModelRegroupsOnTick(t *testing.T) {
	clock := &movableClock{now: referenceDay}
	store, _, err := todo.SampleSeed().Store(todo.ValidationOptions{})
	if err != nil {
		t.Fatal(err)
	}
	m := newTUIModel(store, &agenda.Classifier{Clock: clock, Labels: agenda.EnglishLabels}, WithRegroupInterval(time.Minute))

	clock.now = referenceDay.AddDate(0, 0, 1)
	_, cmd := m.Update(tickMsg(clock.now))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.groups[0].Bucket != agenda.Overdue || m.groups[0].Tasks[0].Name != "A" {
		t.Errorf("A should be overdue after midnight: %+v", m.groups[0])
	}
	if m.groups[1].Bucket != agenda.Today || m.groups[1].Tasks[0].Name != "B" {
		t.Errorf("B should be due today: %+v", m.groups[1])
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, agenda.SpanishLabels)

	send(m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelFormIgnoresListKeys(t *testing.T) {
	m, store := newTestModel(t, agenda.SpanishLabels)

	send(m, runes("a"), runes("q"), runes(" "), runes("d"))
	if m.form == nil {
		t.Fatal("form closed by a list key")
	}
	if got := m.form.inputs[fieldName].Value(); got != "q d" {
		t.Errorf("name input = %q, want %q", got, "q d")
	}
	if store.Len() != 5 {
		t.Error("list keys must not mutate the store while the form is open")
	}
}

func TestModelCtrlCQuitsFromForm(t *testing.T) {
	for _, open := range []string{"a", "e"} {
		t.Run(open, func(t *testing.T) {
			m, store := newTestModel(t, agenda.SpanishLabels)
			send(m, runes(open), runes("x"))
			if m.form == nil {
				t.Fatalf("%s should open the form", open)
			}

			_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
			if cmd == nil {
				t.Fatal("ctrl+c should return a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("ctrl+c in the form should quit")
			}
			if store.Len() != 5 {
				t.Error("ctrl+c must not save the form")
			}
		})
	}
}

func TestTextInputs(t *testing.T) {
	dates := TextDateInput{}
	times := TextTimeInput{}

	if got, err := dates.Parse(" 2024-12-06 "); err != nil || got != "2024-12-06" {
		t.Errorf("date parse = %q, %v", got, err)
	}
	if got, err := dates.Parse("2024-12-06T08:00:00+01:00"); err != nil || got != "2024-12-06" {
		t.Errorf("rfc3339 date parse = %q, %v", got, err)
	}
	if got, err := dates.Parse(""); err != nil || got != "" {
		t.Errorf("empty date = %q, %v", got, err)
	}
	if _, err := dates.Parse("mañana"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	if got, err := times.Parse("7:05"); err != nil || got != "07:05" {
		t.Errorf("time parse = %q, %v", got, err)
	}
	for _, raw := range []string{"25:00", "+9:05", "-0:30", "9:+5"} {
		if _, err := times.Parse(raw); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("Parse(%q): expected ErrInvalidTime, got %v", raw, err)
		}
	}
}

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
