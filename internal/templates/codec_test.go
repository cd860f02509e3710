package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading testdata %s: %v", name, err)
	}
	return data
}

func TestParseSet_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	s, err := ParseSet(readTestdata(t, "set-with-comments.jsonc"))
	if err != nil {
		t.Fatalf("ParseSet() error: %v", err)
	}

	want := Set{
		"backend-api": {
			Name:        "Team API",
			Description: "API with our conventions",
			Structure:   []string{"cmd", "internal"},
			Files:       map[string]string{".gitignore": "backend"},
		},
		"scratch": {
			Name:      "Scratch",
			Structure: []string{},
			Files:     map[string]string{},
		},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("ParseSet() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSet_RejectsSingleTemplate(t *testing.T) {
	_, err := ParseSet(readTestdata(t, "single-template.json"))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(se.Issues) == 0 {
		t.Error("expected at least one schema issue")
	}
}

func TestParseSet_NotJSON(t *testing.T) {
	_, err := ParseSet([]byte("this is not json"))
	if err == nil {
		t.Fatal("expected error for non-JSON input")
	}
	var se *SchemaError
	if errors.As(err, &se) {
		t.Error("non-JSON input should not be reported as a schema error")
	}
}

func TestParseTemplate(t *testing.T) {
	tmpl, err := ParseTemplate(readTestdata(t, "single-template.json"))
	if err != nil {
		t.Fatalf("ParseTemplate() error: %v", err)
	}
	if tmpl.Name != "Go Service" {
		t.Errorf("Name = %q, want %q", tmpl.Name, "Go Service")
	}
	if tmpl.Files[".gitignore"] != "go" {
		t.Errorf("Files[.gitignore] = %q, want %q", tmpl.Files[".gitignore"], "go")
	}
}

func TestParseTemplate_MissingField(t *testing.T) {
	_, err := ParseTemplate(readTestdata(t, "missing-files.json"))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if !strings.Contains(se.Error(), "files") {
		t.Errorf("schema error should mention the missing property, got %q", se.Error())
	}
}

func TestParseTemplate_WrongFieldType(t *testing.T) {
	_, err := ParseTemplate([]byte(`{"name":"x","description":"d","structure":"src","files":{}}`))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Issues[0].Path != "/structure" {
		t.Errorf("issue path = %q, want /structure", se.Issues[0].Path)
	}
}

func TestMarshalSet_RoundTrip(t *testing.T) {
	original := Set{
		"b": {Name: "B", Description: "second", Structure: []string{"src", "tests"}, Files: map[string]string{".gitignore": "backend"}},
		"a": {Name: "A"},
	}

	data, err := MarshalSet(original)
	if err != nil {
		t.Fatalf("MarshalSet() error: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("encoded set should end with a newline")
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("encoded set must not contain null:\n%s", data)
	}
	if strings.Index(string(data), `"a"`) > strings.Index(string(data), `"b"`) {
		t.Error("keys should be sorted")
	}

	decoded, err := ParseSet(data)
	if err != nil {
		t.Fatalf("ParseSet() of encoded set: %v", err)
	}

	again, err := MarshalSet(decoded)
	if err != nil {
		t.Fatalf("MarshalSet() second pass: %v", err)
	}
	if string(again) != string(data) {
		t.Errorf("encoding is not stable:\nfirst:\n%s\nsecond:\n%s", data, again)
	}
}

func TestDefaults(t *testing.T) {
	s, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error: %v", err)
	}

	for _, key := range []string{"backend-api", "frontend-react", "fullstack", "cli-tool", "python-ml", "rust-lib", "microservice"} {
		if _, ok := s[key]; !ok {
			t.Errorf("missing built-in template %q", key)
		}
	}
	if _, ok := s["nonexistent-template"]; ok {
		t.Error("unexpected key nonexistent-template")
	}

	if err := ValidateSet(s); err != nil {
		t.Errorf("built-in templates must pass validation: %v", err)
	}
}

func TestDefaults_FreshCopy(t *testing.T) {
	a, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	delete(a, "backend-api")

	b, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b["backend-api"]; !ok {
		t.Error("mutating one Defaults() result must not affect the next")
	}
}

func TestSkeleton(t *testing.T) {
	s := Skeleton("my-backend")
	if s.Name != "my-backend Template" {
		t.Errorf("Name = %q", s.Name)
	}
	if err := Validate(s); err != nil {
		t.Errorf("skeleton must validate: %v", err)
	}
	if s.Files[".gitignore"] != "backend" {
		t.Errorf("skeleton .gitignore kind = %q, want backend", s.Files[".gitignore"])
	}
}
