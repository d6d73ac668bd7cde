package source

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tarotdata/internal/card"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestLoadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "basic.json", `{"cards": [
		{"name": "The Fool", "number": "0", "arcana": "Major Arcana"},
		{"name": "Ace of Cups", "number": 1, "arcana": "Minor Arcana", "suit": "Cups"}
	]}`)
	writeFile(t, fs, "images.json", `{"cards": [{"name": "The Fool", "img": "m00.jpg"}]}`)
	writeFile(t, fs, "interp.json", `{"tarot_interpretations": [
		{"name": "The Fool", "rank": 0, "suit": "Trump", "keywords": ["freedom"],
		 "meanings": {"light": ["Freeing yourself"], "shadow": ["Being gullible"]}},
		{"name": "Page of Cups", "rank": "page", "suit": "cups"}
	]}`)

	in, err := LoadAll(fs, "basic.json", "images.json", "interp.json")
	require.NoError(t, err)

	require.Len(t, in.Basic, 2)
	assert.Equal(t, card.NewNumber("0"), in.Basic[0].Number)
	assert.Nil(t, in.Basic[0].Suit)
	assert.Equal(t, card.NumberOf(1), in.Basic[1].Number)
	require.NotNil(t, in.Basic[1].Suit)
	assert.Equal(t, "Cups", *in.Basic[1].Suit)

	require.Len(t, in.Images, 1)
	assert.Equal(t, "m00.jpg", in.Images[0].Img)

	require.Len(t, in.Interpretations, 2)
	assert.Equal(t, "page", string(in.Interpretations[1].Rank))
	assert.Nil(t, in.Interpretations[1].Meanings)
	require.NotNil(t, in.Interpretations[0].Meanings)
	assert.Equal(t, []string{"Being gullible"}, in.Interpretations[0].Meanings.Shadow)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "broken.json", `{"cards": [`)

	_, err := LoadBasic(fs, "missing.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.json")

	_, err = LoadImages(fs, "broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse broken.json")
}

func TestLoadDatasetFormats(t *testing.T) {
	fs := afero.NewMemMapFs()
	yamlDoc := `description: Combined tarot card dataset with images and interpretations
cards:
  - name: The Fool
    number: 0
    arcana: Major Arcana
    suit: null
  - name: Ace of Cups
    number: "1"
    arcana: Minor Arcana
    suit: Cups
`
	writeFile(t, fs, "combined.yaml", yamlDoc)
	writeFile(t, fs, "combined.yml", yamlDoc)
	writeFile(t, fs, "yaml_in_json_name.json", yamlDoc)
	writeFile(t, fs, "combined.json", `{"description": "d", "cards": [{"name": "The Fool", "number": 0, "suit": null}]}`)

	for _, path := range []string{"combined.yaml", "combined.yml", "yaml_in_json_name.json"} {
		t.Run(path, func(t *testing.T) {
			d, err := LoadDataset(fs, path)
			require.NoError(t, err)
			require.Len(t, d.Cards, 2)
			assert.Equal(t, card.NumberOf(0), d.Cards[0].Number)
			assert.Nil(t, d.Cards[0].Suit)
			assert.Equal(t, card.NewNumber("1"), d.Cards[1].Number)
			require.NotNil(t, d.Cards[1].Suit)
			assert.Equal(t, "Cups", *d.Cards[1].Suit)
		})
	}

	d, err := LoadDataset(fs, "combined.json")
	require.NoError(t, err)
	require.Len(t, d.Cards, 1)
	assert.Equal(t, card.NumberOf(0), d.Cards[0].Number)
}

func TestLoadDatasetErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "broken.json", `{"cards": [`)
	writeFile(t, fs, "broken.yaml", "cards: [\n")

	_, err := LoadDataset(fs, "broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse broken.json")

	_, err = LoadDataset(fs, "broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse broken.yaml")

	_, err = LoadDataset(fs, "missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
