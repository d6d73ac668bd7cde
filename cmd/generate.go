package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdata/internal/generator"
	"github.com/arcanaland/tarotdata/internal/pipeline"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a JavaScript module embedding card data",
	Long: `Generate lists a directory of card images named like m00.jpg (major arcana),
c01.jpg, s01.jpg, w01.jpg and p01.jpg (cups, swords, wands, pentacles), and writes
a JavaScript module exporting one record per card.

Card text comes from a lore file (--lore), then from a combined dataset
(--dataset), then from the lore bundled with tarotdata. Remaining gaps are
filled with placeholder text.

Examples:
  tarotdata generate --image-dir public/images/cards --output src/services/tarotData.js
  tarotdata generate --dataset combined_tarot_data.json --const cards`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("image-dir", "", "Directory of card images")
	generateCmd.Flags().StringP("output", "o", "", "Module output file")
	generateCmd.Flags().String("dataset", "", "Combined dataset to take card text from")
	generateCmd.Flags().String("lore", "", "Lore file (TOML) to take card text from")
	generateCmd.Flags().String("const", "", "Name of the exported constant")
	generateCmd.Flags().String("header", "", "Comment written at the top of the module")
	generateCmd.Flags().String("image-prefix", "", "URL prefix for card images")
}

// generateOptions combines the config with flags given on the command line
func generateOptions(cmd *cobra.Command) pipeline.GenerateOptions {
	c := currentConfig()

	return pipeline.GenerateOptions{
		ImageDir: stringFlag(cmd, "image-dir", c.Inputs.ImageDir),
		Output:   stringFlag(cmd, "output", c.Generator.Module),
		LoreFile: stringFlag(cmd, "lore", c.Generator.LoreFile),
		Dataset:  stringFlag(cmd, "dataset", c.Generator.Dataset),
		Module: generator.Options{
			ConstName:      stringFlag(cmd, "const", c.Generator.ConstName),
			Header:         stringFlag(cmd, "header", c.Generator.Header),
			ImageURLPrefix: stringFlag(cmd, "image-prefix", c.Generator.ImageURLPrefix),
		},
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := generateOptions(cmd)

	n, err := pipeline.Generate(appFs, opts, log)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Module %s created with %d cards.\n", opts.Output, n)
	return nil
}
