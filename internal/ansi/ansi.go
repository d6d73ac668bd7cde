// Package ansi renders card images as ANSI half-block art for terminal display.
package ansi

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/spf13/afero"
)

const (
	DefaultWidth  = 40
	DefaultHeight = 32
)

// Renderer converts images to ANSI art and caches the result
type Renderer struct {
	Fs        afero.Fs
	CacheDir  string
	Width     int
	Height    int
	TrueColor bool
}

// NewRenderer creates a renderer caching into cacheDir
func NewRenderer(fs afero.Fs, cacheDir string) *Renderer {
	return &Renderer{
		Fs:        fs,
		CacheDir:  cacheDir,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		TrueColor: true,
	}
}

// CachePath returns where the art for imagePath is cached
func (r *Renderer) CachePath(imagePath string) string {
	cacheFilename := fmt.Sprintf("%x.ansi", md5.Sum([]byte(imagePath)))
	return filepath.Join(r.CacheDir, cacheFilename)
}

// Render returns the ANSI art for imagePath, generating and caching it on first use
func (r *Renderer) Render(imagePath string) (string, error) {
	cachePath := r.CachePath(imagePath)

	// Check if we already have a cached version
	if data, err := afero.ReadFile(r.Fs, cachePath); err == nil {
		return string(data), nil
	}

	art, err := r.generate(imagePath)
	if err != nil {
		return "", err
	}

	if err := r.Fs.MkdirAll(r.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}
	if err := afero.WriteFile(r.Fs, cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
	}

	return art, nil
}

func (r *Renderer) generate(imagePath string) (string, error) {
	file, err := r.Fs.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img, r.Width, r.Height, r.TrueColor), nil
}

// FromImage converts an image to width x height character cells. Each cell
// is an upper half block: the top pixel pair is the foreground colour and the
// bottom pair the background.
func FromImage(img image.Image, width, height int, trueColor bool) string {
	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(colorAt(resized, x, y))
			col2, _ := colorful.MakeColor(colorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(colorAt(resized, x+1, y+1))

			fg := toRGBA(average(col1, col2))
			bg := toRGBA(average(col3, col4))

			buffer.WriteString(cell('▀', fg, bg, trueColor))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns black for out-of-bounds coordinates
func colorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func cell(char rune, fg, bg color.RGBA, trueColor bool) string {
	if !trueColor {
		return string(char)
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, char)
}

// Strip removes ANSI escape sequences from s
func Strip(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// Width returns the number of visible runes on the widest line of s
func Width(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := len([]rune(Strip(line))); w > widest {
			widest = w
		}
	}
	return widest
}
