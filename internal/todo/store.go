package todo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store owns the tasks of one session in insertion order.
// It is not safe for concurrent use; the UI event loop is its only owner.
// The zero value is an empty store that generates UUID ids.
type Store struct {
	tasks []Task
	index map[string]int
	newID func() string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDFunc replaces the id generator. Generated ids that collide with an
// existing task are discarded and the generator is called again.
func WithIDFunc(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates a store pre-populated with tasks, in order.
// Seed tasks keep their ids and completion state; blank or duplicate ids
// are rejected.
func NewStore(tasks []Task, opts ...StoreOption) (*Store, error) {
	s := &Store{
		tasks: make([]Task, 0, len(tasks)),
		index: make(map[string]int, len(tasks)),
		newID: newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, task := range tasks {
		path := fmt.Sprintf("tasks[%d].id", i)
		if strings.TrimSpace(task.ID) == "" {
			return nil, &ValidationError{Path: path, Err: fmt.Errorf("missing required field")}
		}
		if _, exists := s.index[task.ID]; exists {
			return nil, &ValidationError{Path: path, Err: fmt.Errorf("duplicate id %q", task.ID)}
		}
		s.index[task.ID] = len(s.tasks)
		s.tasks = append(s.tasks, task)
	}
	return s, nil
}

func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Add appends a new task built from d and returns it.
// The id is fresh and Completed is false. Drafts are expected to have passed
// ValidateDraft.
func (s *Store) Add(d Draft) Task {
	task := Task{
		ID:          s.nextID(),
		Name:        d.Name,
		Description: d.Description,
		Date:        d.Date,
		Time:        d.Time,
		Completed:   false,
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[task.ID] = len(s.tasks)
	s.tasks = append(s.tasks, task)
	return task
}

func (s *Store) nextID() string {
	for {
		id := s.generateID()
		if id == "" {
			continue
		}
		if _, exists := s.index[id]; !exists {
			return id
		}
	}
}

func (s *Store) generateID() string {
	if s.newID == nil {
		return newUUID()
	}
	return s.newID()
}

// Edit replaces the editable fields of the task with the given id.
// The id, completion state and position in the list are kept.
func (s *Store) Edit(id string, d Draft) (Task, error) {
	i, ok := s.index[id]
	if !ok {
		return Task{}, &NotFoundError{ID: id}
	}
	task := s.tasks[i]
	task.Name = d.Name
	task.Description = d.Description
	task.Date = d.Date
	task.Time = d.Time
	s.tasks[i] = task
	return task, nil
}

// Delete removes the task with the given id.
// Deleting an unknown id returns ErrNotFound and leaves the store untouched.
func (s *Store) Delete(id string) error {
	i, ok := s.index[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.tasks); j++ {
		s.index[s.tasks[j].ID] = j
	}
	return nil
}

// ToggleCompletion flips the completed flag of the task with the given id.
func (s *Store) ToggleCompletion(id string) (Task, error) {
	i, ok := s.index[id]
	if !ok {
		return Task{}, &NotFoundError{ID: id}
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a snapshot of all tasks in insertion order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}
