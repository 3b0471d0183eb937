// Package config loads form definitions from YAML or JSON files.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/stepwise/pkg/domain"
)

// FileLoader implements ports.FormLoader for a definition on disk.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for the given path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load reads and parses the form file.
func (l *FileLoader) Load(ctx context.Context) (*domain.Form, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form %s: %w", l.Path, err)
	}
	form, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form %s: %w", l.Path, err)
	}
	return form, nil
}

// Parse decodes a YAML (or JSON) form definition. It only checks the shape of
// the document; structural rules are enforced by the validator.
func Parse(data []byte) (*domain.Form, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty form definition")
	}

	var dto formDTO
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &dto,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid form definition: %w", err)
	}
	return dto.toDomain()
}
