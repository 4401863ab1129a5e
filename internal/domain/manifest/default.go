package manifest

import (
	_ "embed"
	"fmt"
)

//go:embed default.yaml
var defaultManifest []byte

// Default returns the built-in Ax-Shell manifest.
func Default() (*Manifest, error) {
	m, err := Parse(defaultManifest, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in manifest: %w", err)
	}
	return m, nil
}

// DefaultSource returns the raw built-in manifest.
func DefaultSource() []byte {
	out := make([]byte, len(defaultManifest))
	copy(out, defaultManifest)
	return out
}
