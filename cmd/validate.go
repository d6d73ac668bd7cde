package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/tarotdata/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the merge inputs",
	Long: `Validate checks the basic card list, the image list and the interpretation list
before a merge. It reports unnamed cards as errors, and duplicates, unmatched
entries and cards missing an image or interpretation as warnings.

When an image directory is given (or the configured one exists) it also checks
that an image is present for each of the 78 cards.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("basic", "", "Basic card list (JSON)")
	validateCmd.Flags().String("images", "", "Image list (JSON)")
	validateCmd.Flags().String("interpretations", "", "Interpretation list (JSON)")
	validateCmd.Flags().String("image-dir", "", "Directory of card images to check")
}

func runValidate(cmd *cobra.Command, args []string) error {
	c := currentConfig()

	paths := validator.Paths{
		Basic:           stringFlag(cmd, "basic", c.Inputs.Basic),
		Images:          stringFlag(cmd, "images", c.Inputs.Images),
		Interpretations: stringFlag(cmd, "interpretations", c.Inputs.Interpretations),
		ImageDir:        stringFlag(cmd, "image-dir", ""),
	}
	if paths.ImageDir == "" && c.Inputs.ImageDir != "" {
		if ok, _ := afero.DirExists(appFs, c.Inputs.ImageDir); ok {
			paths.ImageDir = c.Inputs.ImageDir
		}
	}
	log.Debug("Validating inputs",
		zap.String("basic", paths.Basic),
		zap.String("images", paths.Images),
		zap.String("interpretations", paths.Interpretations),
		zap.String("image_dir", paths.ImageDir))

	// Create validator and run validation
	v := validator.NewValidator(appFs, paths, c.Aliases)
	results, err := v.Validate()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Display validation results
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Validation Results:")
	fmt.Fprintln(out, "-------------------")

	if len(results.Errors) == 0 {
		color.New(color.FgGreen).Fprintln(out, "✅ Inputs are valid.")
	} else {
		color.New(color.FgRed).Fprintf(out, "❌ Inputs have %d validation errors:\n", len(results.Errors))
		for i, err := range results.Errors {
			fmt.Fprintf(out, "%d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) > 0 {
		color.New(color.FgYellow).Fprintln(out, "\nWarnings:")
		for i, warn := range results.Warnings {
			fmt.Fprintf(out, "%d. %s\n", i+1, warn)
		}
	}

	if len(results.Errors) > 0 {
		return fmt.Errorf("validation failed")
	}
	return nil
}
