// Package pipeline runs the end-to-end merge and module generation flows.
package pipeline

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/arcanaland/tarotdata/internal/generator"
	"github.com/arcanaland/tarotdata/internal/merge"
	"github.com/arcanaland/tarotdata/internal/output"
	"github.com/arcanaland/tarotdata/internal/source"
)

// MergeOptions locates the merge inputs and outputs. An empty Sample path
// disables the sample file.
type MergeOptions struct {
	Basic           string
	Images          string
	Interpretations string
	Output          string
	Sample          string
	SampleSize      int
	Format          string
	Aliases         []merge.Alias
}

// MergeResult reports what a merge wrote
type MergeResult struct {
	Stats       merge.Stats
	SampleCount int
}

// Merge loads the inputs, merges them and writes the dataset and sample
func Merge(fs afero.Fs, opts MergeOptions, logger *zap.Logger) (*MergeResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !output.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	in, err := source.LoadAll(fs, opts.Basic, opts.Images, opts.Interpretations)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded inputs",
		zap.Int("cards", len(in.Basic)),
		zap.Int("images", len(in.Images)),
		zap.Int("interpretations", len(in.Interpretations)))

	combined, stats := merge.NewMerger(opts.Aliases, logger).Merge(in.Basic, in.Images, in.Interpretations)

	if err := output.WriteDataset(fs, opts.Output, merge.NewDataset(combined), opts.Format); err != nil {
		return nil, err
	}
	logger.Info("Wrote combined dataset", zap.String("path", opts.Output), zap.Int("cards", len(combined)))

	result := &MergeResult{Stats: stats}
	if opts.Sample != "" {
		sample := merge.Sample(combined, opts.SampleSize)
		if err := output.WriteSample(fs, opts.Sample, sample); err != nil {
			return nil, err
		}
		result.SampleCount = len(sample)
		logger.Info("Wrote sample", zap.String("path", opts.Sample), zap.Int("cards", len(sample)))
	}

	return result, nil
}

// GenerateOptions configures module generation. LoreFile and Dataset are optional.
type GenerateOptions struct {
	ImageDir string
	Output   string
	LoreFile string
	Dataset  string
	Module   generator.Options
}

// Generate writes the front-end module, layering lore from the lore file,
// then the combined dataset, then the bundled lore
func Generate(fs afero.Fs, opts GenerateOptions, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var layers []generator.Lore

	if opts.LoreFile != "" {
		lore, err := generator.LoadLore(fs, opts.LoreFile)
		if err != nil {
			return 0, err
		}
		logger.Debug("Loaded lore file", zap.String("path", opts.LoreFile), zap.Int("cards", len(lore)))
		layers = append(layers, lore)
	}

	if opts.Dataset != "" {
		d, err := source.LoadDataset(fs, opts.Dataset)
		if err != nil {
			return 0, err
		}
		logger.Debug("Loaded dataset lore", zap.String("path", opts.Dataset), zap.Int("cards", len(d.Cards)))
		layers = append(layers, generator.LoreFromDataset(d))
	}

	bundled, err := generator.DefaultLore()
	if err != nil {
		return 0, err
	}
	layers = append(layers, bundled)

	return generator.New(opts.Module, logger, layers...).Generate(fs, opts.ImageDir, opts.Output)
}
