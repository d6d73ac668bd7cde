package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/arcanaland/tarotdata/internal/merge"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. TAROTDATA_OUTPUT_SAMPLE_SIZE for output.sample_size
const EnvPrefix = "TAROTDATA"

// ErrConfigExists is returned when init would overwrite an existing config file
var ErrConfigExists = errors.New("config file already exists")

// Config represents the application configuration
type Config struct {
	Inputs    Inputs        `toml:"inputs" mapstructure:"inputs"`
	Output    Output        `toml:"output" mapstructure:"output"`
	Generator Generator     `toml:"generator" mapstructure:"generator"`
	Aliases   []merge.Alias `toml:"aliases" mapstructure:"aliases"`
}

// Inputs locates the files read by merge and validate
type Inputs struct {
	Basic           string `toml:"basic" mapstructure:"basic"`
	Images          string `toml:"images" mapstructure:"images"`
	Interpretations string `toml:"interpretations" mapstructure:"interpretations"`
	ImageDir        string `toml:"image_dir" mapstructure:"image_dir"`
}

// Output locates the files written by merge
type Output struct {
	Combined   string `toml:"combined" mapstructure:"combined"`
	Sample     string `toml:"sample" mapstructure:"sample"`
	SampleSize int    `toml:"sample_size" mapstructure:"sample_size"`
	Format     string `toml:"format" mapstructure:"format"`
}

// Generator configures the front-end module generator
type Generator struct {
	Module         string `toml:"module" mapstructure:"module"`
	ConstName      string `toml:"const_name" mapstructure:"const_name"`
	Header         string `toml:"header" mapstructure:"header"`
	ImageURLPrefix string `toml:"image_url_prefix" mapstructure:"image_url_prefix"`
	LoreFile       string `toml:"lore_file" mapstructure:"lore_file"`
	Dataset        string `toml:"dataset" mapstructure:"dataset"`
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Inputs: Inputs{
			Basic:           "tarot-basic.json",
			Images:          "tarot-images.json",
			Interpretations: "tarot-interpretations.json",
			ImageDir:        "images/cards",
		},
		Output: Output{
			Combined:   "combined_tarot_data.json",
			Sample:     "sample_cards.json",
			SampleSize: 5,
			Format:     "json",
		},
		Generator: Generator{
			Module:         "tarotData.js",
			ConstName:      "tarotCards",
			Header:         "Auto-generated tarot card data",
			ImageURLPrefix: "/images/cards",
		},
		Aliases: append([]merge.Alias(nil), merge.DefaultAliases...),
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "tarotdata", "config.toml")
}

// GetCacheDir returns the directory for generated artefacts such as ANSI art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "tarotdata")
}

// Load reads the configuration. An explicit path must exist; without one the
// default config file is used when present. Values from a .env file in the
// working directory and TAROTDATA_* environment variables override the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Dir(GetConfigFilePath()))
	}

	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("inputs.basic", d.Inputs.Basic)
	v.SetDefault("inputs.images", d.Inputs.Images)
	v.SetDefault("inputs.interpretations", d.Inputs.Interpretations)
	v.SetDefault("inputs.image_dir", d.Inputs.ImageDir)

	v.SetDefault("output.combined", d.Output.Combined)
	v.SetDefault("output.sample", d.Output.Sample)
	v.SetDefault("output.sample_size", d.Output.SampleSize)
	v.SetDefault("output.format", d.Output.Format)

	v.SetDefault("generator.module", d.Generator.Module)
	v.SetDefault("generator.const_name", d.Generator.ConstName)
	v.SetDefault("generator.header", d.Generator.Header)
	v.SetDefault("generator.image_url_prefix", d.Generator.ImageURLPrefix)
	v.SetDefault("generator.lore_file", d.Generator.LoreFile)
	v.SetDefault("generator.dataset", d.Generator.Dataset)

	aliases := make([]map[string]any, 0, len(d.Aliases))
	for _, a := range d.Aliases {
		aliases = append(aliases, map[string]any{"from": a.From, "to": a.To})
	}
	v.SetDefault("aliases", aliases)
}

// Init writes the default config file to path, or to the default location
// when path is empty. An existing file is only replaced when force is set.
func Init(path string, force bool) (string, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(Default()); err != nil {
		return path, fmt.Errorf("error encoding config: %w", err)
	}

	return path, nil
}
