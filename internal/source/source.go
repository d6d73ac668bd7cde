// Package source reads the static JSON card descriptions that feed the merge.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/tarotdata/internal/card"
)

// LoadBasic reads the basic card list
func LoadBasic(fs afero.Fs, path string) ([]card.Basic, error) {
	var f card.BasicFile
	if err := readJSON(fs, path, &f); err != nil {
		return nil, err
	}
	return f.Cards, nil
}

// LoadImages reads the image list
func LoadImages(fs afero.Fs, path string) ([]card.Image, error) {
	var f card.ImageFile
	if err := readJSON(fs, path, &f); err != nil {
		return nil, err
	}
	return f.Cards, nil
}

// LoadInterpretations reads the interpretation list
func LoadInterpretations(fs afero.Fs, path string) ([]card.Interpretation, error) {
	var f card.InterpretationFile
	if err := readJSON(fs, path, &f); err != nil {
		return nil, err
	}
	return f.Interpretations, nil
}

// LoadDataset reads a combined dataset previously written by the merge.
// Files ending in .yaml or .yml, or whose content is not a JSON object, are
// decoded as YAML.
func LoadDataset(fs afero.Fs, path string) (*card.Dataset, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var d card.Dataset
	if isYAML(path, data) {
		err = yaml.Unmarshal(data, &d)
	} else {
		err = json.Unmarshal(data, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &d, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

// Inputs bundles the three files a merge reads
type Inputs struct {
	Basic           []card.Basic
	Images          []card.Image
	Interpretations []card.Interpretation
}

// LoadAll reads the basic, image and interpretation files
func LoadAll(fs afero.Fs, basicPath, imagesPath, interpretationsPath string) (*Inputs, error) {
	basic, err := LoadBasic(fs, basicPath)
	if err != nil {
		return nil, err
	}
	images, err := LoadImages(fs, imagesPath)
	if err != nil {
		return nil, err
	}
	interps, err := LoadInterpretations(fs, interpretationsPath)
	if err != nil {
		return nil, err
	}
	return &Inputs{Basic: basic, Images: images, Interpretations: interps}, nil
}

func readJSON(fs afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
