package scaffold

import "strings"

// Kind classifies a template file's hint string.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmpty
	KindBackend
	KindFrontend
	KindPython
	KindRust
)

var kindHints = map[string]Kind{
	"":         KindEmpty,
	"empty":    KindEmpty,
	"backend":  KindBackend,
	"api":      KindBackend,
	"server":   KindBackend,
	"go":       KindBackend,
	"node":     KindBackend,
	"frontend": KindFrontend,
	"web":      KindFrontend,
	"react":    KindFrontend,
	"vue":      KindFrontend,
	"python":   KindPython,
	"ml":       KindPython,
	"data":     KindPython,
	"rust":     KindRust,
}

// ParseKind maps a hint to its Kind, ignoring case and surrounding space.
// Unrecognized hints yield KindUnknown.
func ParseKind(hint string) Kind {
	if k, ok := kindHints[strings.ToLower(strings.TrimSpace(hint))]; ok {
		return k
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindBackend:
		return "backend"
	case KindFrontend:
		return "frontend"
	case KindPython:
		return "python"
	case KindRust:
		return "rust"
	default:
		return "unknown"
	}
}
