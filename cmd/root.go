package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/tarotdata/internal/config"
	"github.com/arcanaland/tarotdata/internal/logger"
)

// skipConfigAnnotation marks commands that run without loading the config file
const skipConfigAnnotation = "tarotdata/skip-config"

var (
	cfgFile string
	verbose bool

	cfg *config.Config
	log = zap.NewNop()

	// appFs backs every file read and write made by commands
	appFs afero.Fs = afero.NewOsFs()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tarotdata",
	Short: "Tool for preparing static tarot card datasets",
	Long: `Tarotdata merges tarot card descriptions (basic metadata, image filenames and
interpretations) into a single combined dataset, and generates a JavaScript module
embedding card data for a front-end application.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = l

		if cmd.Annotations[skipConfigAnnotation] == "true" {
			return nil
		}

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		log.Debug("Loaded configuration", zap.String("file", cfgFile))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/tarotdata/config.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// currentConfig returns the loaded config, or the defaults when none was loaded
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// stringFlag returns the flag value when it was set on the command line and fallback otherwise
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fallback
	}
	return v
}

// intFlag is stringFlag for integer flags
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return fallback
	}
	return v
}
