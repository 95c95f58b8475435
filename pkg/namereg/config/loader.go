package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by FromFile for extensions other than
// .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// decoder turns a document into the generic map read by FromMap.
type decoder func(data []byte) (map[string]any, error)

var decoders = map[string]decoder{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".json": decodeJSON,
}

// FromFile loads registrar settings from path. The format follows the file
// extension, case-insensitively. Errors name the file.
func FromFile(path string) (Settings, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return Settings{}, fmt.Errorf("registrar settings %s: %w %q", path, ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("registrar settings %s: %w", path, err)
	}
	m, err := decode(data)
	if err != nil {
		return Settings{}, fmt.Errorf("registrar settings %s: %w", path, err)
	}
	return FromMap(m), nil
}

// FromYAML reads registrar settings from a YAML document.
func FromYAML(data []byte) (Settings, error) {
	m, err := decodeYAML(data)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(m), nil
}

// FromJSON reads registrar settings from a JSON document.
func FromJSON(data []byte) (Settings, error) {
	m, err := decodeJSON(data)
	if err != nil {
		return Settings{}, err
	}
	return FromMap(m), nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode yaml settings: %w", err)
	}
	return m, nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode json settings: %w", err)
	}
	return m, nil
}
