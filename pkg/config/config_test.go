package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Join("input", "data_small.csv"), cfg.InputPath())
	assert.Equal(t, byte(';'), cfg.Delimiter())
	assert.Nil(t, cfg.DistributionDay)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "antibio.yaml")
	body := "output_dir: results\ndistribution_day: 7\nchart:\n  width_in: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, "input", cfg.InputDir)
	require.NotNil(t, cfg.DistributionDay)
	assert.Equal(t, 7, *cfg.DistributionDay)
	assert.Equal(t, 8.0, cfg.Chart.WidthIn)
	assert.Equal(t, 6.0, cfg.Chart.HeightIn)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("strings", func(t *testing.T) {
		t.Setenv("ANTIBIO_INPUT_DIR", "/data/in")
		t.Setenv("ANTIBIO_INPUT_FILE", "mice.csv")
		t.Setenv("ANTIBIO_LOG_LEVEL", "debug")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "/data/in", cfg.InputDir)
		assert.Equal(t, "mice.csv", cfg.InputFile)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "output", cfg.OutputDir)
	})

	t.Run("distribution day", func(t *testing.T) {
		t.Setenv("ANTIBIO_DISTRIBUTION_DAY", "7")
		cfg, err := Load("")
		require.NoError(t, err)
		require.NotNil(t, cfg.DistributionDay)
		assert.Equal(t, 7, *cfg.DistributionDay)
	})

	t.Run("bad distribution day", func(t *testing.T) {
		t.Setenv("ANTIBIO_DISTRIBUTION_DAY", "seven")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.InputDir = ""
	cfg.InputDelimiter = ";;"
	cfg.Chart.HeightIn = 0
	cfg.LogLevel = "chatty"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"input_dir", "input_delimiter", "chart size", "chatty"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.InputDir = filepath.Join(root, "in")
	cfg.OutputDir = filepath.Join(root, "out")
	cfg.ImagesDir = filepath.Join(root, "img")

	require.NoError(t, cfg.EnsureDirs())
	require.NoError(t, cfg.EnsureDirs())
	for _, d := range []string{cfg.InputDir, cfg.OutputDir, cfg.ImagesDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
