package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization format.
type Format string

const (
	// FormatYAML is the default manifest format.
	FormatYAML Format = "yaml"
	// FormatTOML is accepted for manifests ending in .toml.
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", &UserError{
		Code:       ErrCodeUnsupportedType,
		Message:    fmt.Sprintf("unsupported manifest extension %q", filepath.Ext(path)),
		Context:    path,
		Suggestion: "use a .yaml, .yml or .toml file",
	}
}

// Load reads, defaults and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &UserError{
				Code:       ErrCodeNotFound,
				Message:    "manifest file not found",
				Context:    path,
				Suggestion: "omit --config to use the built-in Ax-Shell manifest, or run 'axsetup manifest > axsetup.yaml' to start from it",
				Underlying: err,
			}
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) && userErr.Context == "" {
			userErr.Context = path
		}
		return nil, err
	}
	return m, nil
}

// Parse decodes, defaults and validates manifest bytes. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&m)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, &UserError{
			Code:    ErrCodeUnsupportedType,
			Message: fmt.Sprintf("unsupported manifest format %q", format),
		}
	}
	if err != nil {
		return nil, &UserError{
			Code:       ErrCodeParse,
			Message:    fmt.Sprintf("failed to parse %s manifest", format),
			Suggestion: "check the manifest syntax and field names",
			Underlying: err,
		}
	}

	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Marshal encodes the manifest in the given format.
func Marshal(m *Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(m)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported manifest format %q", format)
}
