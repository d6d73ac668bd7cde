// Package search finds cards in a combined dataset by approximate name.
package search

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/arcanaland/tarotdata/internal/card"
)

// ErrCardNotFound is returned when no card matches a query
var ErrCardNotFound = errors.New("card not found")

// cardNames implements fuzzy.Source over a card list
type cardNames []card.Combined

func (c cardNames) String(i int) string {
	return strings.ToLower(c[i].Name)
}

func (c cardNames) Len() int {
	return len(c)
}

// Find returns the cards matching query, best match first. An exact
// case-insensitive name match always comes first and is returned alone.
func Find(cards []card.Combined, query string) ([]card.Combined, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrCardNotFound
	}

	for _, c := range cards {
		if strings.ToLower(c.Name) == q {
			return []card.Combined{c}, nil
		}
	}

	matches := fuzzy.FindFrom(q, cardNames(cards))
	if len(matches) == 0 {
		return nil, ErrCardNotFound
	}

	results := make([]card.Combined, len(matches))
	for i, match := range matches {
		results[i] = cards[match.Index]
	}
	return results, nil
}
