// Package output writes merged datasets to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/tarotdata/internal/card"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormat reports whether format is a supported dataset format. An empty
// format means JSON.
func ValidFormat(format string) bool {
	return format == "" || format == FormatJSON || format == FormatYAML
}

// WriteDataset writes the combined dataset, replacing any existing file
func WriteDataset(fs afero.Fs, path string, dataset card.Dataset, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON, "":
		data, err = MarshalJSON(dataset)
	case FormatYAML:
		data, err = marshalYAML(dataset)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	return writeFile(fs, path, data)
}

// WriteSample writes the sample file, replacing any existing file
func WriteSample(fs afero.Fs, path string, cards []card.Combined) error {
	data, err := MarshalJSON(card.Sample{Cards: cards})
	if err != nil {
		return fmt.Errorf("failed to encode sample: %w", err)
	}
	return writeFile(fs, path, data)
}

// MarshalJSON encodes v with a two-space indent and without HTML escaping
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
