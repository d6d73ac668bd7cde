package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/tarotdata/internal/ansi"
	"github.com/arcanaland/tarotdata/internal/card"
	"github.com/arcanaland/tarotdata/internal/config"
	"github.com/arcanaland/tarotdata/internal/search"
	"github.com/arcanaland/tarotdata/internal/source"
)

// maxOtherMatches limits how many alternative matches are listed
const maxOtherMatches = 5

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display a card from the combined dataset",
	Long: `Show looks up a card in the combined dataset by name and prints its merged
record. Names are matched approximately, so 'priestess' finds The High Priestess.
A dataset written with --format yaml is read back as YAML.

When the card's image is found in the image directory it is rendered as ANSI
art next to the card text.

Examples:
  tarotdata show the fool
  tarotdata show "queen of cups" --no-art
  tarotdata show tower --dataset out/combined.json --image-dir public/images/cards`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("dataset", "d", "", "Combined dataset to read")
	showCmd.Flags().String("image-dir", "", "Directory holding the card images")
	showCmd.Flags().Bool("no-art", false, "Do not render the card image")
}

func runShow(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	datasetPath := stringFlag(cmd, "dataset", c.Output.Combined)
	imageDir := stringFlag(cmd, "image-dir", c.Inputs.ImageDir)
	noArt, _ := cmd.Flags().GetBool("no-art")

	dataset, err := source.LoadDataset(appFs, datasetPath)
	if err != nil {
		return fmt.Errorf("error loading dataset: %w", err)
	}

	query := strings.Join(args, " ")
	matches, err := search.Find(dataset.Cards, query)
	if errors.Is(err, search.ErrCardNotFound) {
		return fmt.Errorf("no card matching %q in %s", query, datasetPath)
	}
	if err != nil {
		return err
	}
	match := matches[0]

	var art string
	if !noArt {
		art = cardArt(match, imageDir)
	}

	out := cmd.OutOrStdout()
	displayCard(out, match, art, terminalWidth())

	if len(matches) > 1 {
		var others []string
		for _, m := range matches[1:min(len(matches), maxOtherMatches+1)] {
			others = append(others, m.Name)
		}
		fmt.Fprintln(out, color.CyanString("Other matches: ")+strings.Join(others, ", "))
	}

	return nil
}

// cardArt renders the card image when it can be found, or returns ""
func cardArt(c card.Combined, imageDir string) string {
	if c.Image == "" || imageDir == "" {
		return ""
	}

	imagePath := filepath.Join(imageDir, c.Image)
	if ok, _ := afero.Exists(appFs, imagePath); !ok {
		log.Debug("Card image not found", zap.String("path", imagePath))
		return ""
	}

	renderer := ansi.NewRenderer(appFs, filepath.Join(config.GetCacheDir(), "ansi_cache"))
	art, err := renderer.Render(imagePath)
	if err != nil {
		log.Warn("Failed to render card image", zap.String("path", imagePath), zap.Error(err))
		return ""
	}
	return art
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // Default if we can't get terminal width
	}
	return width
}

func getSuitSymbol(suit string) string {
	switch strings.ToLower(suit) {
	case "wands":
		return "♣"
	case "cups":
		return "♥"
	case "swords":
		return "♠"
	case "pentacles", "coins":
		return "♦"
	default:
		return "•"
	}
}

// wrapText wraps text to a specified width, counted in runes
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40 // Use a sensible default if width is too small
	}

	var result []string
	var currentLine string
	lineWidth := 0
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		wordWidth := utf8.RuneCountInString(word)
		if lineWidth == 0 {
			// First word on the line, always add it
			currentLine, lineWidth = word, wordWidth
		} else if lineWidth+1+wordWidth <= width {
			currentLine += " " + word
			lineWidth += 1 + wordWidth
		} else {
			// Word doesn't fit, start a new line
			result = append(result, currentLine)
			currentLine, lineWidth = word, wordWidth
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// cardInfoLines builds the text column for a card
func cardInfoLines(c card.Combined, width int) []string {
	label := color.CyanString
	value := color.HiWhiteString

	var lines []string
	lines = append(lines, label("Card:   ")+value("%s", c.Name))
	lines = append(lines, label("Arcana: ")+value("%s", c.Arcana))
	if c.Number.Value != "" {
		lines = append(lines, label("Number: ")+value("%s", c.Number))
	}
	if c.Suit != nil && *c.Suit != "" {
		lines = append(lines, label("Suit:   ")+value("%s · %s", *c.Suit, getSuitSymbol(*c.Suit)))
	}
	if c.Image != "" {
		lines = append(lines, label("Image:  ")+value("%s", c.Image))
	}
	if len(c.Keywords) > 0 {
		lines = append(lines, label("Keywords: ")+value("%s", strings.Join(c.Keywords, ", ")))
	}

	section := func(title, text string) {
		if text == "" {
			return
		}
		lines = append(lines, "", label(title))
		lines = append(lines, wrapText(text, width)...)
	}
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, "", label(title))
		for _, item := range items {
			wrapped := wrapText(item, width-2)
			lines = append(lines, "• "+wrapped[0])
			for _, rest := range wrapped[1:] {
				lines = append(lines, "  "+rest)
			}
		}
	}

	section("Modern interpretation:", c.ModernInterpretation)
	section("Affirmation:", c.Affirmation)
	list("Light:", c.Meanings.Light)
	list("Shadow:", c.Meanings.Shadow)
	list("Fortune telling:", c.FortuneTelling)

	return lines
}

// displayCard prints the ANSI art, if any, on the left and the card text on the right
func displayCard(w io.Writer, c card.Combined, ansiArt string, width int) {
	var ansiLines []string
	maxAnsiWidth := 0
	if ansiArt != "" {
		ansiLines = strings.Split(strings.TrimRight(ansiArt, "\n"), "\n")
		maxAnsiWidth = ansi.Width(ansiArt)
	}

	spacing := 4
	infoStartCol := 0
	if maxAnsiWidth > 0 {
		infoStartCol = maxAnsiWidth + spacing
	}

	// Leave a small margin and keep at least 20 columns for text
	infoWidth := max(width-infoStartCol-2, 20)
	infoLines := cardInfoLines(c, infoWidth)

	fmt.Fprintln(w)
	for i := 0; i < max(len(ansiLines), len(infoLines)); i++ {
		fmt.Fprint(w, "  ")
		if i < len(ansiLines) {
			fmt.Fprint(w, ansiLines[i])
			fmt.Fprint(w, strings.Repeat(" ", max(infoStartCol-ansi.Width(ansiLines[i]), 0)))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(w, infoLines[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
