package output

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/tarotdata/internal/card"
)

func testDataset() card.Dataset {
	cups := "Cups"
	return card.Dataset{
		Description: card.DatasetDescription,
		Cards: []card.Combined{
			{
				Name:           "The Fool",
				Number:         card.NewNumber("0"),
				Arcana:         "Major Arcana",
				Image:          "m00.jpg",
				FortuneTelling: []string{},
				Keywords:       []string{"freedom"},
				Meanings:       card.Meanings{Light: []string{"Freeing yourself"}, Shadow: []string{}},
				Affirmation:    "I embrace freedom and welcome its energy into my life.",
			},
			{
				Name:           "Ace of Cups",
				Number:         card.NewNumber("1"),
				Arcana:         "Minor Arcana",
				Suit:           &cups,
				FortuneTelling: []string{},
				Keywords:       []string{},
				Meanings:       card.Meanings{Light: []string{}, Shadow: []string{}},
			},
		},
	}
}

func TestWriteDatasetJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteDataset(fs, "out/combined.json", testDataset(), FormatJSON))

	data, err := afero.ReadFile(fs, "out/combined.json")
	require.NoError(t, err)

	var got card.Dataset
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, card.DatasetDescription, got.Description)
	require.Len(t, got.Cards, 2)
	assert.Nil(t, got.Cards[0].Suit)

	assert.Contains(t, string(data), "\n  \"cards\": [")
	assert.Contains(t, string(data), `"suit": null`)
	assert.Contains(t, string(data), `"keywords": []`)
}

func TestWriteDatasetOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "combined.json", []byte("stale content that is longer than needed"), 0644))

	d := testDataset()
	d.Cards = d.Cards[:1]
	require.NoError(t, WriteDataset(fs, "combined.json", d, ""))

	data, err := afero.ReadFile(fs, "combined.json")
	require.NoError(t, err)
	var got card.Dataset
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.Cards, 1)
}

func TestWriteDatasetYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteDataset(fs, "combined.yaml", testDataset(), FormatYAML))

	data, err := afero.ReadFile(fs, "combined.yaml")
	require.NoError(t, err)

	var got struct {
		Description string `yaml:"description"`
		Cards       []struct {
			Name string  `yaml:"name"`
			Suit *string `yaml:"suit"`
		} `yaml:"cards"`
	}
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, card.DatasetDescription, got.Description)
	require.Len(t, got.Cards, 2)
	assert.Nil(t, got.Cards[0].Suit)
	require.NotNil(t, got.Cards[1].Suit)
	assert.Equal(t, "Cups", *got.Cards[1].Suit)
}

func TestWriteDatasetUnknownFormat(t *testing.T) {
	err := WriteDataset(afero.NewMemMapFs(), "x", testDataset(), "xml")
	require.Error(t, err)
	assert.False(t, ValidFormat("xml"))
	assert.True(t, ValidFormat(FormatYAML))
	assert.True(t, ValidFormat(""))
}

func TestWriteSample(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteSample(fs, "sample.json", testDataset().Cards[:1]))

	data, err := afero.ReadFile(fs, "sample.json")
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 1)

	var sample card.Sample
	require.NoError(t, json.Unmarshal(data, &sample))
	require.Len(t, sample.Cards, 1)
	assert.Equal(t, "The Fool", sample.Cards[0].Name)
}
