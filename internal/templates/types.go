package templates

import "sort"

// Template describes one project architecture.
type Template struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Structure   []string          `json:"structure" yaml:"structure"`
	Files       map[string]string `json:"files" yaml:"files"`
}

// Set maps architecture keys to templates.
type Set map[string]Template

// Keys returns the set's keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Overlay copies every entry of other into s, replacing whole templates on
// key conflict.
func (s Set) Overlay(other Set) {
	for k, t := range other {
		s[k] = t
	}
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, t := range s {
		out[k] = t.Clone()
	}
	return out
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	c := Template{
		Name:        t.Name,
		Description: t.Description,
		Structure:   append([]string(nil), t.Structure...),
		Files:       make(map[string]string, len(t.Files)),
	}
	for k, v := range t.Files {
		c.Files[k] = v
	}
	return c
}

// FilePaths returns the keys of Files in sorted order.
func (t Template) FilePaths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// normalized replaces nil collections with empty ones so the encoded form
// never contains null, which the schema rejects on the next read.
func (t Template) normalized() Template {
	if t.Structure == nil {
		t.Structure = []string{}
	}
	if t.Files == nil {
		t.Files = map[string]string{}
	}
	return t
}

// Skeleton returns the starter template written by "forge template add".
func Skeleton(key string) Template {
	return Template{
		Name:        key + " Template",
		Description: "Edit this description",
		Structure:   []string{"src", "tests"},
		Files:       map[string]string{".gitignore": "backend"},
	}
}
