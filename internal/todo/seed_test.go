package todo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `{
  "schema_version": 1,
  "tasks": [
    {"id": "1", "name": "A", "date": "2024-12-06", "time": "10:00", "completed": false},
    {"id": "2", "name": "B", "description": "call back", "completed": true},
    {"name": "E"}
  ]
}`)

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	if seed.SchemaVersion != 1 {
		t.Errorf("SchemaVersion: got %d, want 1", seed.SchemaVersion)
	}
	if len(seed.Tasks) != 3 {
		t.Fatalf("Tasks count: got %d, want 3", len(seed.Tasks))
	}
	if seed.Tasks[1].Description != "call back" || !seed.Tasks[1].Completed {
		t.Errorf("task B not decoded: %+v", seed.Tasks[1])
	}

	result := seed.Validate(ValidationOptions{})
	if !result.Valid {
		t.Fatalf("expected valid seed, got %v", result.Errors)
	}
	if !result.UsedSchema {
		t.Error("expected embedded schema to be used")
	}
}

func TestLoadSeedErrors(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeSeed(t, `{"schema_version": 1, "tasks": [`)
	if _, err := LoadSeed(path); err == nil || !strings.Contains(err.Error(), "parse seed file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestSeedValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing tasks",
			content: `{"schema_version": 1}`,
			wantErr: "tasks",
		},
		{
			name:    "wrong schema_version",
			content: `{"schema_version": 2, "tasks": []}`,
			wantErr: "schema_version",
		},
		{
			name:    "unknown task field",
			content: `{"schema_version": 1, "tasks": [{"name": "A", "priority": 1}]}`,
			wantErr: "tasks[0]",
		},
		{
			name:    "empty name",
			content: `{"schema_version": 1, "tasks": [{"name": ""}]}`,
			wantErr: "tasks[0].name",
		},
		{
			name:    "blank name passes schema but not minimal checks",
			content: `{"schema_version": 1, "tasks": [{"name": "   "}]}`,
			wantErr: "tasks[0].name",
		},
		{
			name:    "duplicate ids",
			content: `{"schema_version": 1, "tasks": [{"id": "1", "name": "A"}, {"id": "1", "name": "B"}]}`,
			wantErr: "tasks[1].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := ParseSeed([]byte(tt.content))
			if err != nil {
				t.Fatalf("ParseSeed failed: %v", err)
			}
			result := seed.Validate(ValidationOptions{})
			if result.Valid {
				t.Fatal("expected invalid seed")
			}
			err = result.Err()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Err() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseSeedTypeMismatch(t *testing.T) {
	_, err := ParseSeed([]byte(`{"schema_version": 1, "tasks": [{"name": "A", "completed": "yes"}]}`))
	if err == nil {
		t.Fatal("expected decode error for non-boolean completed")
	}
}

func TestSeedMalformedDateIsAccepted(t *testing.T) {
	seed, err := ParseSeed([]byte(`{"schema_version": 1, "tasks": [{"name": "A", "date": "not-a-date"}]}`))
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	if result := seed.Validate(ValidationOptions{}); !result.Valid {
		t.Errorf("malformed dates should degrade at display time, got %v", result.Errors)
	}
}

func TestSeedValidateWithSchemaFile(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	schema := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version", "tasks"],
  "properties": {
    "tasks": {"type": "array", "maxItems": 1}
  }
}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	seed, err := ParseSeed([]byte(`{"schema_version": 1, "tasks": [{"name": "A"}, {"name": "B"}]}`))
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}
	result := seed.Validate(ValidationOptions{SchemaPath: schemaPath})
	if !result.UsedSchema {
		t.Fatal("expected schema file to be used")
	}
	if result.Valid {
		t.Error("expected maxItems violation")
	}
}

func TestSeedValidateWithMissingSchemaFile(t *testing.T) {
	seed, err := ParseSeed([]byte(`{"schema_version": 1, "tasks": [{"name": "A"}]}`))
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}

	result := seed.Validate(ValidationOptions{SchemaPath: "/non/existent/schema.json"})
	if !result.Valid {
		t.Errorf("Valid should be true, got errors %v", result.Errors)
	}
	if result.UsedSchema {
		t.Error("UsedSchema should be false for a missing schema file")
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected warnings when schema file not found")
	}
}

func TestSeedStore(t *testing.T) {
	seed, err := ParseSeed([]byte(`{"schema_version": 1, "tasks": [
		{"id": "1", "name": "A"},
		{"name": "B"},
		{"name": "C", "completed": true}
	]}`))
	if err != nil {
		t.Fatalf("ParseSeed failed: %v", err)
	}

	store, warnings, err := seed.Store(ValidationOptions{}, WithIDFunc(sequentialIDs("1", "g1", "g2")))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	list := store.List()
	if len(list) != 3 {
		t.Fatalf("Len = %d, want 3", len(list))
	}
	if list[0].ID != "1" || list[1].ID != "g1" || list[2].ID != "g2" {
		t.Errorf("ids = %s,%s,%s; want 1,g1,g2", list[0].ID, list[1].ID, list[2].ID)
	}
	if !list[2].Completed {
		t.Error("completion state lost")
	}
	if seed.Tasks[1].ID != "" {
		t.Error("Store must not modify the seed")
	}
}

func TestSeedStoreRejectsInvalidSeed(t *testing.T) {
	seed := &Seed{SchemaVersion: 1, Tasks: []Task{{ID: "1", Name: ""}}}
	if _, _, err := seed.Store(ValidationOptions{}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSeedStoreReturnsWarnings(t *testing.T) {
	seed := SampleSeed()
	missing := filepath.Join(t.TempDir(), "missing.json")

	store, warnings, err := seed.Store(ValidationOptions{SchemaPath: missing})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if store.Len() != 5 {
		t.Errorf("Len = %d, want 5", store.Len())
	}
	joined := strings.Join(warnings, "\n")
	if !strings.Contains(joined, "schema file not found") {
		t.Errorf("missing schema warning, got %v", warnings)
	}
	if !strings.Contains(joined, "minimal checks") {
		t.Errorf("missing fallback warning, got %v", warnings)
	}

	bad := &Seed{SchemaVersion: 1, Tasks: []Task{{ID: "1"}}}
	if _, warnings, err := bad.Store(ValidationOptions{SchemaPath: missing}); err == nil || len(warnings) == 0 {
		t.Errorf("rejected seed: err = %v, warnings = %v", err, warnings)
	}
}

func TestSampleSeed(t *testing.T) {
	seed := SampleSeed()
	result := seed.Validate(ValidationOptions{})
	if !result.Valid {
		t.Fatalf("sample seed invalid: %v", result.Errors)
	}
	store, _, err := seed.Store(ValidationOptions{})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if store.Len() != 5 {
		t.Errorf("Len = %d, want 5", store.Len())
	}
	b, _ := store.Get("2")
	if !b.Completed {
		t.Error("sample task B should be completed")
	}
}
