package templates

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/templates.schema.json
var schemaBytes []byte

const schemaResource = "templates.schema.json"

// Shape identifies which definition of the schema a document is checked
// against.
type Shape string

const (
	ShapeTemplate Shape = "template"
	ShapeSet      Shape = "templateSet"
)

var (
	compiled    map[Shape]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// SchemaIssue is a single schema violation.
type SchemaIssue struct {
	Path    string // instance location, e.g. "/backend-api/structure/0"
	Message string
	Keyword string
}

// SchemaError lists every issue found when a document does not match the
// expected shape.
type SchemaError struct {
	Shape  Shape
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("document is not a valid %s: %s", e.Shape, strings.Join(parts, "; "))
}

// getSchemas compiles both definitions once.
func getSchemas() (map[Shape]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}

		out := make(map[Shape]*jsonschema.Schema, 2)
		for _, shape := range []Shape{ShapeTemplate, ShapeSet} {
			s, err := c.Compile(schemaResource + "#/$defs/" + string(shape))
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", shape, err)
				return
			}
			out[shape] = s
		}
		compiled = out
	})
	return compiled, compileErr
}

// CheckShape validates plain JSON data against one schema definition. It
// returns a *SchemaError when the document parses but has the wrong shape,
// and a plain error when the data is not JSON at all.
func CheckShape(data []byte, shape Shape) error {
	schemas, err := getSchemas()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	err = schemas[shape].Validate(inst)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &SchemaError{Shape: shape, Issues: extractIssues(ve)}
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []SchemaIssue {
	var issues []SchemaIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []SchemaIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]SchemaIssue) {
	if len(ve.Causes) == 0 {
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}

		keyword, msg := "", ""
		if ve.ErrorKind != nil {
			if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
				keyword = kw[len(kw)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords only repeat what their causes say.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, SchemaIssue{Path: path, Message: msg, Keyword: keyword})
		return
	}

	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

func deduplicateIssues(issues []SchemaIssue) []SchemaIssue {
	seen := make(map[string]bool)
	var result []SchemaIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
