package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tarotdata/internal/merge"
)

// isolate points the XDG dirs and the working directory at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, merge.DefaultAliases, cfg.Aliases)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[inputs]
basic = "data/basic.json"

[output]
sample_size = 3
format = "yaml"

[[aliases]]
from = "Le Mat"
to = "The Fool"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/basic.json", cfg.Inputs.Basic)
	assert.Equal(t, "tarot-images.json", cfg.Inputs.Images)
	assert.Equal(t, 3, cfg.Output.SampleSize)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, []merge.Alias{{From: "Le Mat", To: "The Fool"}}, cfg.Aliases)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TAROTDATA_OUTPUT_SAMPLE_SIZE", "9")
	t.Setenv("TAROTDATA_GENERATOR_CONST_NAME", "cards")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Output.SampleSize)
	assert.Equal(t, "cards", cfg.Generator.ConstName)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TAROTDATA_OUTPUT_COMBINED=from-dotenv.json\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TAROTDATA_OUTPUT_COMBINED") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.Output.Combined)
}

func TestInitRoundTrip(t *testing.T) {
	isolate(t)

	path, err := Init("", false)
	require.NoError(t, err)
	assert.Equal(t, GetConfigFilePath(), path)

	_, err = Init("", false)
	assert.True(t, errors.Is(err, ErrConfigExists))

	_, err = Init("", true)
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestCacheDir(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "cache", "tarotdata"), GetCacheDir())
}
