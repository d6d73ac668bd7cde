package validator

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/arcanaland/tarotdata/internal/card"
	"github.com/arcanaland/tarotdata/internal/deck"
	"github.com/arcanaland/tarotdata/internal/generator"
	"github.com/arcanaland/tarotdata/internal/merge"
	"github.com/arcanaland/tarotdata/internal/source"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Paths locates the merge inputs. ImageDir is optional.
type Paths struct {
	Basic           string
	Images          string
	Interpretations string
	ImageDir        string
}

type Validator struct {
	Paths   Paths
	Aliases []merge.Alias
	Results ValidationResults

	fs    afero.Fs
	names map[string]bool
	order []string
}

func NewValidator(fs afero.Fs, paths Paths, aliases []merge.Alias) *Validator {
	return &Validator{
		Paths:   paths,
		Aliases: aliases,
		Results: ValidationResults{},
		fs:      fs,
		names:   make(map[string]bool),
	}
}

// Validate checks the merge inputs. It only returns an error when the basic
// card list cannot be read, since every other check depends on it.
func (v *Validator) Validate() (ValidationResults, error) {
	basic, err := source.LoadBasic(v.fs, v.Paths.Basic)
	if err != nil {
		return v.Results, err
	}

	v.validateBasic(basic)
	v.validateInterpretations()
	v.validateImages()
	if v.Paths.ImageDir != "" {
		v.validateImageDir()
	}

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateBasic checks that every card is named exactly once
func (v *Validator) validateBasic(basic []card.Basic) {
	if len(basic) == 0 {
		v.errorf("no cards found in %s", v.Paths.Basic)
		return
	}

	for i, c := range basic {
		if strings.TrimSpace(c.Name) == "" {
			v.errorf("card #%d in %s has no name", i+1, v.Paths.Basic)
			continue
		}
		if v.names[c.Name] {
			v.warnf("duplicate card in %s: %s", v.Paths.Basic, c.Name)
			continue
		}
		v.names[c.Name] = true
		v.order = append(v.order, c.Name)
	}
}

// validateInterpretations checks interpretation coverage after aliasing
func (v *Validator) validateInterpretations() {
	interps, err := source.LoadInterpretations(v.fs, v.Paths.Interpretations)
	if err != nil {
		v.errorf("%v", err)
		return
	}

	rename := make(map[string]string, len(v.Aliases))
	for _, a := range v.Aliases {
		rename[a.From] = a.To
	}

	names := make([]string, 0, len(interps))
	for _, in := range interps {
		name := in.Name
		if to, ok := rename[name]; ok {
			name = to
		}
		names = append(names, name)
	}

	v.checkCoverage("interpretation", v.Paths.Interpretations, names)
}

// validateImages checks image list coverage
func (v *Validator) validateImages() {
	images, err := source.LoadImages(v.fs, v.Paths.Images)
	if err != nil {
		v.errorf("%v", err)
		return
	}

	names := make([]string, 0, len(images))
	for _, img := range images {
		if img.Img == "" {
			v.warnf("image entry for %s has no filename", img.Name)
		}
		names = append(names, img.Name)
	}

	v.checkCoverage("image", v.Paths.Images, names)
}

// checkCoverage reports duplicates, entries for unknown cards and cards without an entry
func (v *Validator) checkCoverage(kind, path string, names []string) {
	seen := make(map[string]bool, len(names))
	unknown := []string{}
	for _, name := range names {
		if seen[name] {
			v.warnf("duplicate %s in %s: %s (last entry wins)", kind, path, name)
			continue
		}
		seen[name] = true
		if !v.names[name] {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		v.warnf("%s entries for unknown cards in %s: %s", kind, path, strings.Join(unknown, ", "))
	}

	missing := []string{}
	for _, name := range v.order {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		v.warnf("cards without %s: %s", kind, strings.Join(missing, ", "))
	}
}

// validateImageDir checks that the image directory holds all 78 cards
func (v *Validator) validateImageDir() {
	images, err := generator.ScanImages(v.fs, v.Paths.ImageDir, nil)
	if err != nil {
		v.errorf("%v", err)
		return
	}

	found := make(map[deck.Slot]bool, len(images))
	for _, img := range images {
		found[img.Slot] = true
	}

	// Check for all 22 major arcana cards (00-21)
	missingCards := []string{}
	for i := 0; i < deck.MajorCount; i++ {
		if !found[deck.Slot{Major: true, Number: i}] {
			missingCards = append(missingCards, fmt.Sprintf("%02d", i))
		}
	}
	if len(missingCards) > 0 {
		v.warnf("missing major arcana images in %s: %s", v.Paths.ImageDir, strings.Join(missingCards, ", "))
	}

	// Check for all 14 cards in each suit
	for _, suit := range deck.Suits {
		missingCards := []string{}
		for i := range deck.Ranks {
			if !found[deck.Slot{Suit: suit, Number: i + 1}] {
				missingCards = append(missingCards, deck.Ranks[i])
			}
		}
		if len(missingCards) > 0 {
			v.warnf("missing %s images in %s: %s", suit, v.Paths.ImageDir, strings.Join(missingCards, ", "))
		}
	}
}
