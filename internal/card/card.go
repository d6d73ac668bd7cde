package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FlexString is a JSON value that source files write either as a string or as a number
type FlexString string

// UnmarshalJSON accepts strings, numbers and null
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

// Number is a card number kept as the source wrote it. Source files mix
// JSON strings ("0") and JSON numbers (0); the kind survives a merge.
type Number struct {
	Value   string
	Numeric bool
}

// NewNumber returns a number written as a string
func NewNumber(s string) Number {
	return Number{Value: s}
}

// NumberOf returns a number written as a JSON number
func NumberOf(n int) Number {
	return Number{Value: strconv.Itoa(n), Numeric: true}
}

func (n Number) String() string {
	return n.Value
}

// UnmarshalJSON accepts strings, numbers and null
func (n *Number) UnmarshalJSON(data []byte) error {
	var f FlexString
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	*n = Number{
		Value:   string(f),
		Numeric: len(data) > 0 && data[0] != '"' && !bytes.Equal(data, []byte("null")),
	}
	return nil
}

// MarshalJSON writes numeric values bare and everything else as a string
func (n Number) MarshalJSON() ([]byte, error) {
	if n.Numeric && json.Valid([]byte(n.Value)) {
		return []byte(n.Value), nil
	}
	return json.Marshal(n.Value)
}

// MarshalYAML writes numeric values as YAML numbers
func (n Number) MarshalYAML() (interface{}, error) {
	if n.Numeric {
		if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f, nil
		}
	}
	return n.Value, nil
}

// UnmarshalYAML reads a scalar, keeping whether it was an int or a float
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar card number", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*n = Number{}
	case "!!int", "!!float":
		*n = Number{Value: node.Value, Numeric: true}
	default:
		*n = Number{Value: node.Value}
	}
	return nil
}

// Basic is an entry of the basic card list
type Basic struct {
	Name   string `json:"name"`
	Number Number `json:"number"`
	Arcana string     `json:"arcana"`
	Suit   *string    `json:"suit"`
}

// BasicFile is the layout of the basic card list file
type BasicFile struct {
	Cards []Basic `json:"cards"`
}

// Meanings groups the upright (light) and reversed (shadow) readings of a card
type Meanings struct {
	Light  []string `json:"light" yaml:"light"`
	Shadow []string `json:"shadow" yaml:"shadow"`
}

// Interpretation is an entry of the interpretation list
type Interpretation struct {
	Name           string     `json:"name"`
	FortuneTelling []string   `json:"fortune_telling"`
	Keywords       []string   `json:"keywords"`
	Meanings       *Meanings  `json:"meanings"`
	Rank           FlexString `json:"rank"`
	Suit           string     `json:"suit"`
}

// InterpretationFile is the layout of the interpretation list file
type InterpretationFile struct {
	Interpretations []Interpretation `json:"tarot_interpretations"`
}

// Image maps a card name to its image filename
type Image struct {
	Name string `json:"name"`
	Img  string `json:"img"`
}

// ImageFile is the layout of the image list file
type ImageFile struct {
	Cards []Image `json:"cards"`
}

// Combined is a basic card merged with its image and interpretation
type Combined struct {
	Name                 string   `json:"name" yaml:"name"`
	Number               Number   `json:"number" yaml:"number"`
	Arcana               string   `json:"arcana" yaml:"arcana"`
	Suit                 *string  `json:"suit" yaml:"suit"`
	Image                string   `json:"image" yaml:"image"`
	FortuneTelling       []string `json:"fortune_telling" yaml:"fortune_telling"`
	Keywords             []string `json:"keywords" yaml:"keywords"`
	Meanings             Meanings `json:"meanings" yaml:"meanings"`
	ModernInterpretation string   `json:"modern_interpretation" yaml:"modern_interpretation"`
	Affirmation          string   `json:"affirmation" yaml:"affirmation"`
}

// DatasetDescription is written at the top of every combined dataset
const DatasetDescription = "Combined tarot card dataset with images and interpretations"

// Dataset is the combined output file
type Dataset struct {
	Description string     `json:"description" yaml:"description"`
	Cards       []Combined `json:"cards" yaml:"cards"`
}

// Sample is the truncated output file
type Sample struct {
	Cards []Combined `json:"cards"`
}

// ModuleCard is a card as embedded in the generated front-end module
type ModuleCard struct {
	Name            string   `json:"name"`
	Number          string   `json:"number"`
	Arcana          string   `json:"arcana"`
	Suit            *string  `json:"suit"`
	ImageURL        string   `json:"image_url"`
	Description     string   `json:"description"`
	UprightMeaning  string   `json:"upright_meaning"`
	ReversedMeaning string   `json:"reversed_meaning"`
	Keywords        []string `json:"keywords"`
	Element         string   `json:"element"`
	Type            string   `json:"type"`
}
