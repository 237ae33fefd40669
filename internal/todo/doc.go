// Package todo holds the in-memory task store, task validation, and the
// read-only seed file import.
//
// A Store owns the canonical, ordered list of tasks for one session:
//
//	store, _ := todo.NewStore(nil)
//	task := store.Add(todo.Draft{Name: "Buy milk", Date: "2024-12-06", Time: "10:00"})
//	store.ToggleCompletion(task.ID)
//	snapshot := store.List()
//
// Nothing is ever written to disk. A seed file only pre-populates the Store
// at startup:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"id": "1", "name": "A", "date": "2024-12-06", "time": "10:00", "completed": false},
//	    {"name": "E"}
//	  ]
//	}
//
// # Validation
//
// Names must be non-empty after trimming whitespace. The check lives in
// ValidateDraft and is run by callers before Add and Edit; the Store itself
// stays a plain container.
//
// Seed files are validated in two steps:
//
//  1. JSON Schema validation against the embedded schema (draft 2020-12), or
//     against a schema file when one is configured.
//  2. Minimal checks: every task has a name, ids are unique.
//
// # Errors
//
//   - ErrNotFound: Edit, Delete and ToggleCompletion on an unknown id. Delete
//     of a missing id is an error, not a no-op.
//   - ErrNameRequired: a draft whose name is blank.
//
// Both are wrapped in typed errors (*NotFoundError, *ValidationError) and
// can be matched with errors.Is.
//
// # Dates and times
//
// Task.Date is a calendar date in YYYY-MM-DD form and Task.Time a 24-hour
// HH:MM time of day. Both are optional and independent. They are stored
// verbatim; a malformed date never makes a Store operation fail.
package todo
