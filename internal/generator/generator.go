// Package generator builds a JavaScript module that embeds card data for the
// front-end, deriving the card list from a directory of card images.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/arcanaland/tarotdata/internal/card"
	"github.com/arcanaland/tarotdata/internal/deck"
	"github.com/arcanaland/tarotdata/internal/output"
)

const (
	DefaultConstName      = "tarotCards"
	DefaultHeader         = "Auto-generated tarot card data"
	DefaultImageURLPrefix = "/images/cards"

	defaultMeaning = "Meaning to be discovered"
	defaultElement = "Unknown"
)

var defaultKeywords = []string{"mystery", "symbolism"}

// ImageExtensions are the file extensions recognised as card images
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".svg"}

// ErrNoImages is returned when an image directory holds no recognisable card images
var ErrNoImages = errors.New("no card images found")

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var moduleTemplate = template.Must(template.New("module").Parse(`// {{.Header}}

const {{.ConstName}} = {{.Cards}};

export default {{.ConstName}};
`))

// Options controls how the module is rendered
type Options struct {
	ConstName      string
	Header         string
	ImageURLPrefix string
}

func (o Options) withDefaults() Options {
	if o.ConstName == "" {
		o.ConstName = DefaultConstName
	}
	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if o.ImageURLPrefix == "" {
		o.ImageURLPrefix = DefaultImageURLPrefix
	}
	return o
}

// Validate checks that the options produce a well-formed module
func (o Options) Validate() error {
	o = o.withDefaults()
	if !identPattern.MatchString(o.ConstName) {
		return fmt.Errorf("invalid constant name: %q", o.ConstName)
	}
	return nil
}

// ImageFile is a card image found in the image directory
type ImageFile struct {
	Slot     deck.Slot
	Filename string
}

// ScanImages lists dir and returns the recognised card images in deck order.
// When a card has several images the first filename in lexical order wins.
func ScanImages(fs afero.Fs, dir string, logger *zap.Logger) ([]ImageFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", dir, err)
	}

	seen := make(map[deck.Slot]bool)
	var images []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !isImageExt(ext) {
			logger.Debug("Ignoring non-image file", zap.String("file", name))
			continue
		}

		slot, ok := deck.ParseCode(strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))))
		if !ok {
			logger.Debug("Ignoring image with unrecognised name", zap.String("file", name))
			continue
		}
		if seen[slot] {
			logger.Warn("Duplicate image for card", zap.String("card", slot.Name()), zap.String("file", name))
			continue
		}
		seen[slot] = true
		images = append(images, ImageFile{Slot: slot, Filename: name})
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Slot.Order() < images[j].Slot.Order()
	})

	return images, nil
}

// Generator turns image files into module cards
type Generator struct {
	opts   Options
	layers []Lore
	logger *zap.Logger
}

// New creates a generator. Lore layers are consulted in order; the first
// non-empty value for each field wins.
func New(opts Options, logger *zap.Logger, layers ...Lore) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{opts: opts.withDefaults(), layers: layers, logger: logger}
}

// Cards builds the module records for the given images
func (g *Generator) Cards(images []ImageFile) []card.ModuleCard {
	cards := make([]card.ModuleCard, 0, len(images))
	for _, img := range images {
		cards = append(cards, g.buildCard(img))
	}
	return cards
}

func (g *Generator) buildCard(img ImageFile) card.ModuleCard {
	name := img.Slot.Name()
	entry := g.resolve(name)

	c := card.ModuleCard{
		Name:            name,
		Number:          strconv.Itoa(img.Slot.Number),
		Arcana:          img.Slot.Arcana(),
		ImageURL:        strings.TrimRight(g.opts.ImageURLPrefix, "/") + "/" + img.Filename,
		Description:     entry.Description,
		UprightMeaning:  entry.Upright,
		ReversedMeaning: entry.Reversed,
		Keywords:        entry.Keywords,
		Element:         entry.Element,
		Type:            "minor",
	}
	if img.Slot.Major {
		c.Type = "major"
	} else {
		suit := img.Slot.Suit
		c.Suit = &suit
	}
	return c
}

// resolve merges the lore layers for one card and fills remaining gaps with defaults
func (g *Generator) resolve(name string) Entry {
	var e Entry
	for _, layer := range g.layers {
		l, ok := layer[name]
		if !ok {
			continue
		}
		if e.Description == "" {
			e.Description = l.Description
		}
		if e.Upright == "" {
			e.Upright = l.Upright
		}
		if e.Reversed == "" {
			e.Reversed = l.Reversed
		}
		if len(e.Keywords) == 0 {
			e.Keywords = l.Keywords
		}
		if e.Element == "" {
			e.Element = l.Element
		}
	}

	if e.Description == "" {
		e.Description = defaultDescription(name)
	}
	if e.Upright == "" {
		e.Upright = defaultMeaning
	}
	if e.Reversed == "" {
		e.Reversed = defaultMeaning
	}
	if len(e.Keywords) == 0 {
		e.Keywords = append([]string(nil), defaultKeywords...)
	}
	if e.Element == "" {
		e.Element = defaultElement
	}
	return e
}

func defaultDescription(name string) string {
	subject := name
	if !strings.HasPrefix(name, "The ") {
		subject = "The " + name
	}
	return subject + " is a powerful symbol in the tarot deck."
}

// Render writes the module source for cards
func Render(w io.Writer, cards []card.ModuleCard, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()

	if cards == nil {
		cards = []card.ModuleCard{}
	}
	data, err := output.MarshalJSON(cards)
	if err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}

	return moduleTemplate.Execute(w, struct {
		Header    string
		ConstName string
		Cards     string
	}{
		Header:    strings.Join(strings.Fields(opts.Header), " "),
		ConstName: opts.ConstName,
		Cards:     string(bytes.TrimRight(data, "\n")),
	})
}

// Generate scans imageDir and writes the module to outPath, returning the number of cards written
func (g *Generator) Generate(fs afero.Fs, imageDir, outPath string) (int, error) {
	if err := g.opts.Validate(); err != nil {
		return 0, err
	}

	images, err := ScanImages(fs, imageDir, g.logger)
	if err != nil {
		return 0, err
	}
	if len(images) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoImages, imageDir)
	}

	cards := g.Cards(images)

	var buf bytes.Buffer
	if err := Render(&buf, cards, g.opts); err != nil {
		return 0, err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, outPath, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	g.logger.Info("Generated module", zap.String("path", outPath), zap.Int("cards", len(cards)))
	return len(cards), nil
}

func isImageExt(ext string) bool {
	for _, e := range ImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
