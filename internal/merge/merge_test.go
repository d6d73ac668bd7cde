package merge

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcanaland/tarotdata/internal/card"
)

func strPtr(s string) *string { return &s }

func fixtureBasic() []card.Basic {
	return []card.Basic{
		{Name: "The Fool", Number: card.NewNumber("0"), Arcana: "Major Arcana"},
		{Name: "The High Priestess", Number: card.NewNumber("2"), Arcana: "Major Arcana"},
		{Name: "Ace of Cups", Number: card.NewNumber("1"), Arcana: "Minor Arcana", Suit: strPtr("Cups")},
		{Name: "Two of Cups", Number: card.NewNumber("2"), Arcana: "Minor Arcana", Suit: strPtr("Cups")},
		{Name: "Three of Cups", Number: card.NewNumber("3"), Arcana: "Minor Arcana", Suit: strPtr("Cups")},
		{Name: "Four of Cups", Number: card.NewNumber("4"), Arcana: "Minor Arcana", Suit: strPtr("Cups")},
		{Name: "Five of Cups", Number: card.NewNumber("5"), Arcana: "Minor Arcana", Suit: strPtr("Cups")},
	}
}

func fixtureInterpretations() []card.Interpretation {
	return []card.Interpretation{
		{
			Name:           "The Fool",
			FortuneTelling: []string{"Watch for new projects"},
			Keywords:       []string{"freedom", "faith"},
			Meanings: &card.Meanings{
				Light:  []string{"Freeing yourself", "Trusting the universe", "Making a leap", "Being spontaneous"},
				Shadow: []string{"Being gullible"},
			},
		},
		{
			Name:     "The Papess/High Priestess",
			Meanings: &card.Meanings{Light: []string{"Intuitive"}},
		},
	}
}

func TestMergeCardWithInterpretation(t *testing.T) {
	interps := BuildInterpretationMap(fixtureInterpretations(), DefaultAliases)
	images := BuildImageMap([]card.Image{{Name: "The Fool", Img: "m00.jpg"}})

	got := MergeCard(fixtureBasic()[0], interps, images)
	want := card.Combined{
		Name:           "The Fool",
		Number:         card.NewNumber("0"),
		Arcana:         "Major Arcana",
		Image:          "m00.jpg",
		FortuneTelling: []string{"Watch for new projects"},
		Keywords:       []string{"freedom", "faith"},
		Meanings: card.Meanings{
			Light:  []string{"Freeing yourself", "Trusting the universe", "Making a leap", "Being spontaneous"},
			Shadow: []string{"Being gullible"},
		},
		ModernInterpretation: "This card represents Freeing yourself, Trusting the universe, Making a leap",
		Affirmation:          "I embrace freedom and welcome its energy into my life.",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeCard() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeCardWithoutInterpretation(t *testing.T) {
	got := MergeCard(fixtureBasic()[2], map[string]card.Interpretation{}, map[string]string{})

	assert.Equal(t, "Ace of Cups", got.Name)
	assert.Equal(t, "", got.Image)
	require.NotNil(t, got.Keywords)
	assert.Empty(t, got.Keywords)
	require.NotNil(t, got.FortuneTelling)
	assert.Empty(t, got.FortuneTelling)
	require.NotNil(t, got.Meanings.Light)
	require.NotNil(t, got.Meanings.Shadow)
	assert.Empty(t, got.Meanings.Light)
	assert.Empty(t, got.Meanings.Shadow)
	assert.Equal(t, "", got.ModernInterpretation)
	assert.Equal(t, "", got.Affirmation)
}

func TestBuildInterpretationMapAliases(t *testing.T) {
	m := BuildInterpretationMap(fixtureInterpretations(), DefaultAliases)

	_, ok := m["The Papess/High Priestess"]
	assert.False(t, ok)

	hp, ok := m["The High Priestess"]
	require.True(t, ok)
	assert.Equal(t, "The High Priestess", hp.Name)
	assert.Equal(t, []string{"Intuitive"}, hp.Meanings.Light)
	assert.Equal(t, []string{}, hp.Meanings.Shadow)
	assert.Equal(t, []string{}, hp.Keywords)
	assert.Equal(t, card.FlexString("0"), hp.Rank)
}

func TestBuildMapsLastWriteWins(t *testing.T) {
	interps := BuildInterpretationMap([]card.Interpretation{
		{Name: "The Sun", Keywords: []string{"first"}},
		{Name: "The Sun", Keywords: []string{"second"}},
	}, nil)
	assert.Equal(t, []string{"second"}, interps["The Sun"].Keywords)

	images := BuildImageMap([]card.Image{
		{Name: "The Sun", Img: "a.jpg"},
		{Name: "The Sun", Img: "b.jpg"},
		{Name: "The Moon"},
	})
	assert.Equal(t, "b.jpg", images["The Sun"])
	v, ok := images["The Moon"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestModernInterpretation(t *testing.T) {
	tests := []struct {
		name  string
		light []string
		want  string
	}{
		{name: "empty", light: nil, want: ""},
		{name: "one", light: []string{"Joy"}, want: "This card represents Joy"},
		{name: "three", light: []string{"a", "b", "c"}, want: "This card represents a, b, c"},
		{name: "more than three", light: []string{"a", "b", "c", "d"}, want: "This card represents a, b, c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModernInterpretation(tt.light))
		})
	}
}

func TestAffirmation(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		light    []string
		want     string
	}{
		{
			name:     "keyword preferred over light meaning",
			keywords: []string{"courage"},
			light:    []string{"Being Brave"},
			want:     "I embrace courage and welcome its energy into my life.",
		},
		{
			name:  "light meaning lowercased",
			light: []string{"Being Brave", "Other"},
			want:  "I am being brave.",
		},
		{
			name:     "empty keywords fall through",
			keywords: []string{},
			light:    []string{"Calm"},
			want:     "I am calm.",
		},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Affirmation(tt.keywords, tt.light))
		})
	}
}

func TestMergeEveryCardOnceInOrder(t *testing.T) {
	basic := fixtureBasic()
	m := NewMerger(DefaultAliases, zap.NewNop())

	combined, stats := m.Merge(basic, []card.Image{{Name: "The Fool", Img: "m00.jpg"}}, fixtureInterpretations())

	require.Len(t, combined, len(basic))
	assert.Equal(t, len(basic), stats.Cards)
	for i, b := range basic {
		assert.Equal(t, b.Name, combined[i].Name)
	}

	seen := map[string]int{}
	for _, c := range combined {
		seen[c.Name]++
	}
	for name, n := range seen {
		assert.Equal(t, 1, n, "card %s", name)
	}

	assert.Equal(t, []string{"Ace of Cups", "Two of Cups", "Three of Cups", "Four of Cups", "Five of Cups"}, stats.MissingInterpretation)
	assert.Len(t, stats.MissingImage, len(basic)-1)
	assert.Equal(t, "I am intuitive.", combined[1].Affirmation)
}

func TestMergeSkipsBlankNames(t *testing.T) {
	basic := []card.Basic{{Name: "The Fool"}, {Name: "  "}, {Name: "The Magician"}}
	combined, stats := NewMerger(nil, nil).Merge(basic, nil, nil)

	require.Len(t, combined, 2)
	assert.Equal(t, 1, stats.Skipped)
	for _, c := range combined {
		assert.NotEmpty(t, c.Name)
	}
}

func TestSample(t *testing.T) {
	combined, _ := NewMerger(nil, nil).Merge(fixtureBasic(), nil, nil)

	sample := Sample(combined, 5)
	require.Len(t, sample, 5)
	if diff := cmp.Diff(combined[:5], sample); diff != "" {
		t.Errorf("Sample() mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, Sample(combined, 100), len(combined))
	assert.Empty(t, Sample(combined, -1))
}

func TestNewDataset(t *testing.T) {
	var cards []card.Combined
	for i := 0; i < 3; i++ {
		cards = append(cards, card.Combined{Name: fmt.Sprintf("card %d", i)})
	}
	d := NewDataset(cards)
	assert.Equal(t, card.DatasetDescription, d.Description)
	assert.Len(t, d.Cards, 3)
}
