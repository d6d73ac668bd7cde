// Package merge combines basic card metadata, image filenames and
// interpretations into a single record per card.
package merge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/tarotdata/internal/card"
)

// Alias rewrites a card name used by the interpretation list into the name
// used by the basic card list
type Alias struct {
	From string `toml:"from" mapstructure:"from"`
	To   string `toml:"to" mapstructure:"to"`
}

// DefaultAliases covers the two major arcana that the interpretation list names differently
var DefaultAliases = []Alias{
	{From: "The Papess/High Priestess", To: "The High Priestess"},
	{From: "The Pope/Hierophant", To: "The Hierophant"},
}

// modernPrefixCount is how many light meanings feed the modern interpretation
const modernPrefixCount = 3

// BuildInterpretationMap indexes interpretations by card name after applying aliases.
// Missing fields are replaced by empty values; later duplicates overwrite earlier ones.
func BuildInterpretationMap(list []card.Interpretation, aliases []Alias) map[string]card.Interpretation {
	rename := make(map[string]string, len(aliases))
	for _, a := range aliases {
		rename[a.From] = a.To
	}

	m := make(map[string]card.Interpretation, len(list))
	for _, in := range list {
		name := in.Name
		if to, ok := rename[name]; ok {
			name = to
		}
		in.Name = name
		m[name] = normalizeInterpretation(in)
	}
	return m
}

// BuildImageMap indexes image filenames by card name; later duplicates overwrite earlier ones
func BuildImageMap(list []card.Image) map[string]string {
	m := make(map[string]string, len(list))
	for _, img := range list {
		m[img.Name] = img.Img
	}
	return m
}

// MergeCard builds the combined record for one basic card
func MergeCard(basic card.Basic, interps map[string]card.Interpretation, images map[string]string) card.Combined {
	in, ok := interps[basic.Name]
	if !ok {
		in = normalizeInterpretation(card.Interpretation{Name: basic.Name})
	}

	return card.Combined{
		Name:                 basic.Name,
		Number:               basic.Number,
		Arcana:               basic.Arcana,
		Suit:                 basic.Suit,
		Image:                images[basic.Name],
		FortuneTelling:       in.FortuneTelling,
		Keywords:             in.Keywords,
		Meanings:             *in.Meanings,
		ModernInterpretation: ModernInterpretation(in.Meanings.Light),
		Affirmation:          Affirmation(in.Keywords, in.Meanings.Light),
	}
}

// ModernInterpretation summarises up to the first three light meanings
func ModernInterpretation(light []string) string {
	if len(light) == 0 {
		return ""
	}
	n := min(len(light), modernPrefixCount)
	return "This card represents " + strings.Join(light[:n], ", ")
}

// Affirmation builds a first-person sentence from the first keyword,
// falling back to the first light meaning
func Affirmation(keywords, light []string) string {
	if len(keywords) > 0 {
		return fmt.Sprintf("I embrace %s and welcome its energy into my life.", keywords[0])
	}
	if len(light) > 0 {
		return fmt.Sprintf("I am %s.", strings.ToLower(light[0]))
	}
	return ""
}

// Stats summarises how complete a merge was
type Stats struct {
	Cards                 int
	Skipped               int
	MissingInterpretation []string
	MissingImage          []string
}

// Merger runs the merge over a full set of inputs
type Merger struct {
	Aliases []Alias
	logger  *zap.Logger
}

// NewMerger creates a merger that renames interpretations through aliases
func NewMerger(aliases []Alias, logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{Aliases: aliases, logger: logger}
}

// Merge produces one combined record per named basic card, in input order.
// Basic cards with a blank name are skipped.
func (m *Merger) Merge(basic []card.Basic, images []card.Image, interps []card.Interpretation) ([]card.Combined, Stats) {
	interpMap := BuildInterpretationMap(interps, m.Aliases)
	imageMap := BuildImageMap(images)

	var stats Stats
	combined := make([]card.Combined, 0, len(basic))
	for i, b := range basic {
		if strings.TrimSpace(b.Name) == "" {
			m.logger.Warn("Skipping card without a name", zap.Int("index", i))
			stats.Skipped++
			continue
		}

		if _, ok := interpMap[b.Name]; !ok {
			m.logger.Debug("No interpretation for card", zap.String("card", b.Name))
			stats.MissingInterpretation = append(stats.MissingInterpretation, b.Name)
		}
		if _, ok := imageMap[b.Name]; !ok {
			m.logger.Debug("No image for card", zap.String("card", b.Name))
			stats.MissingImage = append(stats.MissingImage, b.Name)
		}

		combined = append(combined, MergeCard(b, interpMap, imageMap))
	}
	stats.Cards = len(combined)

	m.logger.Info("Merged cards",
		zap.Int("cards", stats.Cards),
		zap.Int("skipped", stats.Skipped),
		zap.Int("without_interpretation", len(stats.MissingInterpretation)),
		zap.Int("without_image", len(stats.MissingImage)))

	return combined, stats
}

// NewDataset wraps combined cards with the standard description
func NewDataset(cards []card.Combined) card.Dataset {
	return card.Dataset{Description: card.DatasetDescription, Cards: cards}
}

// Sample returns the first n cards in their original order
func Sample(cards []card.Combined, n int) []card.Combined {
	if n < 0 {
		n = 0
	}
	if n > len(cards) {
		n = len(cards)
	}
	out := make([]card.Combined, n)
	copy(out, cards[:n])
	return out
}

func normalizeInterpretation(in card.Interpretation) card.Interpretation {
	if in.FortuneTelling == nil {
		in.FortuneTelling = []string{}
	}
	if in.Keywords == nil {
		in.Keywords = []string{}
	}
	meanings := card.Meanings{Light: []string{}, Shadow: []string{}}
	if in.Meanings != nil {
		if in.Meanings.Light != nil {
			meanings.Light = in.Meanings.Light
		}
		if in.Meanings.Shadow != nil {
			meanings.Shadow = in.Meanings.Shadow
		}
	}
	in.Meanings = &meanings
	if in.Rank == "" {
		in.Rank = "0"
	}
	return in
}
