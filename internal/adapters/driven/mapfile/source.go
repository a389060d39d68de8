package mapfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/campusnav/internal/core/domain"
	"github.com/custodia-labs/campusnav/internal/core/ports/driven"
	"github.com/custodia-labs/campusnav/internal/logger"
	"github.com/custodia-labs/campusnav/internal/validation"
)

// Ensure Source implements the interface.
var _ driven.MapSource = (*Source)(nil)

// Source loads a map definition from a file or from embedded bytes.
type Source struct {
	path string
	name string
	data []byte
}

// NewFileSource creates a source that reads path on every Load.
func NewFileSource(path string) *Source {
	return &Source{path: path, name: filepath.Base(path)}
}

// NewBuiltinSource creates a source for the embedded A Block map.
func NewBuiltinSource() *Source {
	return &Source{name: builtinName, data: builtinMap}
}

// NewSource selects a file source for path, or the built-in map when
// path is empty.
func NewSource(path string) *Source {
	if strings.TrimSpace(path) == "" {
		return NewBuiltinSource()
	}
	return NewFileSource(path)
}

// Describe returns the file path, or "built-in" for the embedded map.
func (s *Source) Describe() string {
	if s.path == "" {
		return "built-in (" + s.name + ")"
	}
	return s.path
}

// Load reads, decodes and validates the map definition.
func (s *Source) Load(ctx context.Context) (*domain.MapDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := s.data
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read map file: %w", err)
		}
	}

	def, err := Decode(s.name, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded map %q from %s: %d locations", def.Name, s.Describe(), len(def.Locations))
	return def, nil
}

// Decode parses data according to the extension of name and validates it.
func Decode(name string, data []byte) (*domain.MapDefinition, error) {
	var def domain.MapDefinition

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidMap, name, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidMap, name, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(name, data, nil, &def); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidMap, name, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported map format %q", domain.ErrInvalidInput, ext)
	}

	if err := validation.ValidateMapDefinition(&def); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &def, nil
}
