package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/agenda/internal/utils"
)

// SeedSchemaVersion is the only seed file version understood.
const SeedSchemaVersion = 1

const embeddedSchemaURL = "agenda-seed.schema.json"

// SeedSchema is the JSON Schema used when no schema file is configured.
const SeedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "tasks"],
  "properties": {
    "schema_version": {"type": "integer", "const": 1},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "date": {"type": "string"},
          "time": {"type": "string"},
          "completed": {"type": "boolean"}
        }
      }
    }
  }
}`

// Seed is the read-only file used to pre-populate a Store.
type Seed struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`

	raw []byte
}

// ValidationOptions controls seed validation.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, the embedded SeedSchema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Err joins the validation errors into one, or returns nil when valid.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		msgs = append(msgs, err.Error())
	}
	return &ValidationError{Err: fmt.Errorf("invalid seed file: %s", strings.Join(msgs, "; "))}
}

// LoadSeed reads and parses a seed file from path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed parses seed file content.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	s.raw = data
	return &s, nil
}

// SampleSeed returns the demo tasks shown on first launch.
func SampleSeed() *Seed {
	return &Seed{
		SchemaVersion: SeedSchemaVersion,
		Tasks: []Task{
			{ID: "1", Name: "A", Date: "2024-12-06", Time: "10:00"},
			{ID: "2", Name: "B", Date: "2024-12-07", Time: "14:00", Completed: true},
			{ID: "3", Name: "C", Date: "2024-12-08", Time: "09:00"},
			{ID: "4", Name: "D", Date: "2024-12-10", Time: "16:00"},
			{ID: "5", Name: "E"},
		},
	}
}

// Validate validates the seed.
func (s *Seed) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schemaResult := s.validateWithSchema(opts.SchemaPath)
	result.UsedSchema = schemaResult.UsedSchema
	result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	if !schemaResult.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, schemaResult.Errors...)
		return result
	}
	if !schemaResult.UsedSchema {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	s.validateMinimal(result)
	return result
}

// Store validates the seed and builds a store from it. Tasks without an id
// get a generated one. The validation warnings are returned even when the
// seed is rejected.
func (s *Seed) Store(vopts ValidationOptions, opts ...StoreOption) (*Store, []string, error) {
	result := s.Validate(vopts)
	if err := result.Err(); err != nil {
		return nil, result.Warnings, err
	}

	store, err := NewStore(nil, opts...)
	if err != nil {
		return nil, result.Warnings, err
	}
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	taken := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if task.ID != "" {
			taken[task.ID] = true
		}
	}
	for i := range tasks {
		if tasks[i].ID != "" {
			continue
		}
		id := store.generateID()
		for id == "" || taken[id] {
			id = store.generateID()
		}
		taken[id] = true
		tasks[i].ID = id
	}
	store, err = NewStore(tasks, opts...)
	return store, result.Warnings, err
}

// validateMinimal performs the checks the schema cannot express.
func (s *Seed) validateMinimal(result *ValidationResult) {
	if s.SchemaVersion != SeedSchemaVersion {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SeedSchemaVersion, s.SchemaVersion),
		})
	}

	seen := make(map[string]int, len(s.Tasks))
	for i, task := range s.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if err := ValidateDraft(DraftOf(task)); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".name", Err: ErrNameRequired})
		}
		if task.ID == "" {
			continue
		}
		if first, dup := seen[task.ID]; dup {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %q (first used by tasks[%d])", task.ID, first),
			})
			continue
		}
		seen[task.ID] = i
	}
}

// validateWithSchema runs JSON Schema validation over the raw seed content.
func (s *Seed) validateWithSchema(schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:      true,
		Errors:     make([]error, 0),
		Warnings:   make([]string, 0),
		UsedSchema: false,
	}

	schema, warning := compileSchema(schemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema == nil {
		return result
	}
	result.UsedSchema = true

	data := s.raw
	if data == nil {
		var err error
		data, err = json.Marshal(s)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Err: fmt.Errorf("failed to marshal seed for validation: %w", err),
			})
			return result
		}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to unmarshal seed for validation: %w", err),
		})
		return result
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

// compileSchema compiles the schema at path, falling back to the embedded
// schema when path is empty. A schema file that cannot be used yields a
// warning and a nil schema.
func compileSchema(path string) (*jsonschema.Schema, string) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if path == "" {
		if err := compiler.AddResource(embeddedSchemaURL, strings.NewReader(SeedSchema)); err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		schema, err := compiler.Compile(embeddedSchemaURL)
		if err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
