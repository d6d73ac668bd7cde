package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdata/internal/pipeline"
	"github.com/arcanaland/tarotdata/internal/watch"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge card inputs into a combined dataset",
	Long: `Merge reads the basic card list, the image list and the interpretation list,
and writes one combined record per card together with a small sample file.

Cards without an interpretation or image are kept with empty values. Cards
with a blank name in the basic list are skipped and counted in the summary;
run 'tarotdata validate' to list them.

Examples:
  tarotdata merge
  tarotdata merge --basic data/tarot-basic.json --output out/combined.json
  tarotdata merge --format yaml --output combined.yaml --no-sample
  tarotdata merge --watch`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	RootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().String("basic", "", "Basic card list (JSON)")
	mergeCmd.Flags().String("images", "", "Image list (JSON)")
	mergeCmd.Flags().String("interpretations", "", "Interpretation list (JSON)")
	mergeCmd.Flags().StringP("output", "o", "", "Combined dataset output file")
	mergeCmd.Flags().String("sample", "", "Sample output file")
	mergeCmd.Flags().Int("sample-size", 0, "Number of cards in the sample")
	mergeCmd.Flags().StringP("format", "f", "", "Combined dataset format: json or yaml")
	mergeCmd.Flags().Bool("no-sample", false, "Do not write the sample file")
	mergeCmd.Flags().BoolP("watch", "w", false, "Re-run the merge whenever an input file changes")
}

// mergeOptions combines the config with flags given on the command line
func mergeOptions(cmd *cobra.Command) pipeline.MergeOptions {
	c := currentConfig()

	opts := pipeline.MergeOptions{
		Basic:           stringFlag(cmd, "basic", c.Inputs.Basic),
		Images:          stringFlag(cmd, "images", c.Inputs.Images),
		Interpretations: stringFlag(cmd, "interpretations", c.Inputs.Interpretations),
		Output:          stringFlag(cmd, "output", c.Output.Combined),
		Sample:          stringFlag(cmd, "sample", c.Output.Sample),
		SampleSize:      intFlag(cmd, "sample-size", c.Output.SampleSize),
		Format:          stringFlag(cmd, "format", c.Output.Format),
		Aliases:         c.Aliases,
	}

	if noSample, _ := cmd.Flags().GetBool("no-sample"); noSample {
		opts.Sample = ""
	}
	return opts
}

func runMerge(cmd *cobra.Command, args []string) error {
	opts := mergeOptions(cmd)

	if err := mergeOnce(cmd, opts); err != nil {
		return err
	}

	if w, _ := cmd.Flags().GetBool("watch"); !w {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New([]string{opts.Basic, opts.Images, opts.Interpretations}, func(ctx context.Context) error {
		return mergeOnce(cmd, opts)
	}, log)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Watching inputs for changes (Ctrl+C to stop)")
	return watcher.Run(ctx)
}

// mergeOnce runs a single merge and prints a summary
func mergeOnce(cmd *cobra.Command, opts pipeline.MergeOptions) error {
	result, err := pipeline.Merge(appFs, opts, log)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)

	green.Fprintf(out, "Combined dataset created with %d cards.\n", result.Stats.Cards)
	if opts.Sample != "" {
		green.Fprintf(out, "Sample dataset created with %d cards.\n", result.SampleCount)
	}

	if n := len(result.Stats.MissingInterpretation); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "%d cards have no interpretation.\n", n)
	}
	if n := len(result.Stats.MissingImage); n > 0 {
		color.New(color.FgYellow).Fprintf(out, "%d cards have no image.\n", n)
	}
	if result.Stats.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(out, "%d cards without a name were skipped.\n", result.Stats.Skipped)
	}

	return nil
}
