package generator

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/arcanaland/tarotdata/internal/card"
)

// defaultLoreTOML is the lore bundled with the binary.
//
//go:embed lore.toml
var defaultLoreTOML string

// Entry holds the descriptive text for one card. Empty fields are filled
// from lower-priority sources.
type Entry struct {
	Description string   `toml:"description"`
	Upright     string   `toml:"upright"`
	Reversed    string   `toml:"reversed"`
	Keywords    []string `toml:"keywords"`
	Element     string   `toml:"element"`
}

// Lore maps card names to entries
type Lore map[string]Entry

type loreFile struct {
	Cards map[string]Entry `toml:"cards"`
}

// DefaultLore returns the bundled lore
func DefaultLore() (Lore, error) {
	return ParseLore(defaultLoreTOML)
}

// ParseLore decodes a lore document
func ParseLore(doc string) (Lore, error) {
	var f loreFile
	if _, err := toml.Decode(doc, &f); err != nil {
		return nil, fmt.Errorf("error parsing lore: %w", err)
	}
	if f.Cards == nil {
		return Lore{}, nil
	}
	return Lore(f.Cards), nil
}

// LoadLore reads a lore file
func LoadLore(fs afero.Fs, path string) (Lore, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lore file %s: %w", path, err)
	}
	lore, err := ParseLore(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lore, nil
}

// LoreFromDataset derives lore from a combined dataset: the modern
// interpretation becomes the description and the light and shadow meanings
// become the upright and reversed text.
func LoreFromDataset(d *card.Dataset) Lore {
	lore := make(Lore, len(d.Cards))
	for _, c := range d.Cards {
		lore[c.Name] = Entry{
			Description: c.ModernInterpretation,
			Upright:     strings.Join(c.Meanings.Light, ", "),
			Reversed:    strings.Join(c.Meanings.Shadow, ", "),
			Keywords:    c.Keywords,
		}
	}
	return lore
}
