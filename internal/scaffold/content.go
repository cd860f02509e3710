package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"text/template"
)

//go:embed scaffolds
var scaffoldFS embed.FS

var readmeTmpl = template.Must(template.ParseFS(scaffoldFS, "scaffolds/README.md.tmpl"))

// readmeData holds the fields available to README.md.tmpl.
type readmeData struct {
	Project     string
	Template    string
	Description string
	Dirs        []string
}

// Content returns the seed content for a file at relPath with the given
// kind. Ignore bodies are only produced for files named .gitignore; every
// other file, and every unknown kind, is an empty placeholder.
func Content(relPath string, kind Kind) []byte {
	if path.Base(toSlash(relPath)) != ".gitignore" {
		return nil
	}
	switch kind {
	case KindBackend, KindFrontend, KindPython, KindRust:
	default:
		return nil
	}
	data, err := scaffoldFS.ReadFile("scaffolds/gitignore/" + kind.String() + ".gitignore")
	if err != nil {
		// Every listed kind has an embedded body.
		panic(fmt.Sprintf("scaffold: missing ignore body for %s: %v", kind, err))
	}
	return data
}

func renderReadme(d readmeData) ([]byte, error) {
	var buf bytes.Buffer
	if err := readmeTmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("rendering README.md: %w", err)
	}
	return buf.Bytes(), nil
}

// toSlash normalizes both separators so template paths behave the same on
// every platform.
func toSlash(p string) string {
	b := []byte(p)
	for i := range b {
		if b[i] == '\\' {
			b[i] = '/'
		}
	}
	return string(b)
}
