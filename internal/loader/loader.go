// Package loader reads event files from disk and parses them into the
// universal JSON value form the validator consumes. Read and parse
// failures are plain errors for the caller; they are never turned into
// validation findings.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the file at path. Files ending in .yaml or .yml
// are parsed as YAML and converted to JSON-compatible values; anything
// else is parsed as JSON.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses raw JSON text into the any/map[string]any/[]any
// value form.
func ParseJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return v, nil
}

// ParseYAML parses YAML text and converts the result to JSON-compatible
// values, so the validator sees the same shapes as for JSON input.
func ParseYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return convertYAML(v), nil
}

// convertYAML normalizes YAML-parsed values: yaml.v3 produces
// map[string]any for most mappings but map[any]any for non-string keys.
func convertYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = convertYAML(item)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[fmt.Sprintf("%v", k)] = convertYAML(item)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertYAML(item)
		}
		return result
	default:
		return v
	}
}
