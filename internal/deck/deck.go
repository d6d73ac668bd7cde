package deck

import (
	"fmt"
	"strings"
)

const (
	MajorArcana = "Major Arcana"
	MinorArcana = "Minor Arcana"

	// MajorCount is the number of major arcana cards (00-21)
	MajorCount = 22
)

// Suits in the order cards are laid out in generated modules
var Suits = []string{"cups", "swords", "wands", "pentacles"}

// Ranks of a minor arcana suit, numbered 1-14
var Ranks = []string{
	"ace", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"page", "knight", "queen", "king",
}

var suitPrefixes = map[string]byte{
	"cups":      'c',
	"swords":    's',
	"wands":     'w',
	"pentacles": 'p',
}

// Slot identifies a card by its position in the standard 78-card deck
type Slot struct {
	Major  bool
	Suit   string // empty for major arcana
	Number int    // 0-21 for major arcana, 1-14 for minor arcana
}

// Name returns the conventional English name of the card
func (s Slot) Name() string {
	if s.Major {
		return MajorName(s.Number)
	}
	return MinorName(s.Number, s.Suit)
}

// Code returns the image file stem used for the card, e.g. m00 or c14
func (s Slot) Code() string {
	if s.Major {
		return fmt.Sprintf("m%02d", s.Number)
	}
	return fmt.Sprintf("%c%02d", suitPrefixes[s.Suit], s.Number)
}

// Arcana returns the display name of the card's arcana
func (s Slot) Arcana() string {
	if s.Major {
		return MajorArcana
	}
	return MinorArcana
}

// Standard returns all 78 slots: majors first, then each suit in Suits order
func Standard() []Slot {
	slots := make([]Slot, 0, MajorCount+len(Suits)*len(Ranks))
	for i := 0; i < MajorCount; i++ {
		slots = append(slots, Slot{Major: true, Number: i})
	}
	for _, suit := range Suits {
		for i := range Ranks {
			slots = append(slots, Slot{Suit: suit, Number: i + 1})
		}
	}
	return slots
}

// ParseCode parses an image file stem such as m07 or w12 into a slot
func ParseCode(code string) (Slot, bool) {
	if len(code) != 3 || code[1] < '0' || code[1] > '9' || code[2] < '0' || code[2] > '9' {
		return Slot{}, false
	}
	n := int(code[1]-'0')*10 + int(code[2]-'0')

	if code[0] == 'm' {
		if n >= MajorCount {
			return Slot{}, false
		}
		return Slot{Major: true, Number: n}, true
	}

	for suit, prefix := range suitPrefixes {
		if prefix == code[0] {
			if n < 1 || n > len(Ranks) {
				return Slot{}, false
			}
			return Slot{Suit: suit, Number: n}, true
		}
	}
	return Slot{}, false
}

// Order returns the position of the slot within Standard
func (s Slot) Order() int {
	if s.Major {
		return s.Number
	}
	for i, suit := range Suits {
		if suit == s.Suit {
			return MajorCount + i*len(Ranks) + s.Number - 1
		}
	}
	return MajorCount + len(Suits)*len(Ranks)
}

// MajorName returns the default name for a major arcana card
func MajorName(number int) string {
	names := []string{
		"The Fool",
		"The Magician",
		"The High Priestess",
		"The Empress",
		"The Emperor",
		"The Hierophant",
		"The Lovers",
		"The Chariot",
		"Strength",
		"The Hermit",
		"Wheel of Fortune",
		"Justice",
		"The Hanged Man",
		"Death",
		"Temperance",
		"The Devil",
		"The Tower",
		"The Star",
		"The Moon",
		"The Sun",
		"Judgement",
		"The World",
	}

	if number >= 0 && number < len(names) {
		return names[number]
	}

	return fmt.Sprintf("Major Arcana %02d", number)
}

// MinorName returns the default name for a minor arcana card, e.g. "Queen of Wands"
func MinorName(rank int, suit string) string {
	if rank < 1 || rank > len(Ranks) || suit == "" {
		return fmt.Sprintf("Minor Arcana %s %d", suit, rank)
	}
	return fmt.Sprintf("%s of %s", capitalize(Ranks[rank-1]), capitalize(suit))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
