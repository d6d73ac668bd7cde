package cmd

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tarotdata/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tarotdata config file",
	Long:  `Commands for creating and inspecting the tarotdata config file.`,
}

// configInitCmd writes a config file with the default settings
var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the default settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

// configPathCmd prints where the config file is read from
var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

// configShowCmd prints the effective config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(currentConfig()); err != nil {
			return fmt.Errorf("error encoding config: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.GetConfigFilePath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path, err := config.Init(cfgFile, force)
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Use --force to overwrite it.")
		return nil
	}
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
	return nil
}
