package templates

import (
	_ "embed"

	"github.com/iamjuaness/ForgeArch/internal/errs"
)

//go:embed architectures.json
var builtinBytes []byte

// EmbeddedSource is the ConfigError source name for the built-in asset.
const EmbeddedSource = "embedded architectures.json"

// Defaults parses the built-in template set. The asset is compiled in, so a
// failure here is a programming error; it is still reported as a
// *errs.ConfigError rather than a panic. Every call returns a fresh Set.
func Defaults() (Set, error) {
	s, err := ParseSet(builtinBytes)
	if err != nil {
		return nil, &errs.ConfigError{Source: EmbeddedSource, Err: err}
	}
	return s, nil
}
