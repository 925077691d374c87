package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/config"
	"curator/scoring"
)

func TestLoadDefaults(t *testing.T) {
	// empty variables fall back to the defaults
	for _, key := range []string{"PORT", "AGGREGATION_MODE", "RAILWAY_VOLUME_MOUNT_PATH", "DB_PATH", "QR_SIZE", "WEIGHTS_FILE"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./curator.db", cfg.DatabasePath())
	assert.Equal(t, 256, cfg.QRSize)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Scoring()
	require.NoError(t, err)
	assert.Equal(t, scoring.ModeFirst, opts.Mode)
	assert.Equal(t, scoring.DefaultWeights(), opts.Weights)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "/data")
	t.Setenv("AGGREGATION_MODE", "mean")
	t.Setenv("QR_SIZE", "512")
	t.Setenv("SPREADSHEET_ID", "sheet-9")

	cfg := config.Load()
	assert.Equal(t, ":9000", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, filepath.Join("/data", "curator.db"), cfg.DatabasePath())
	assert.Equal(t, 512, cfg.QRSize)
	assert.Equal(t, "sheet-9", cfg.SpreadsheetID)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Scoring()
	require.NoError(t, err)
	assert.Equal(t, scoring.ModeMean, opts.Mode)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{Port: ":8080", AggregationMode: "median", QRSize: 256}
	assert.ErrorContains(t, cfg.Validate(), "AGGREGATION_MODE")

	cfg = &config.Config{Port: ":8080", QRSize: 10}
	assert.ErrorContains(t, cfg.Validate(), "QR_SIZE")

	cfg = &config.Config{QRSize: 256}
	assert.ErrorContains(t, cfg.Validate(), "PORT")
}

func TestWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
teleop:
  basket_high: 12
endgame_ascent:
  Level 3: 40
`), 0o644))

	cfg := &config.Config{Port: ":8080", QRSize: 256, WeightsFile: path}
	opts, err := cfg.Scoring()
	require.NoError(t, err)
	assert.Equal(t, 12.0, opts.Weights.Teleop.BasketHigh)
	assert.Equal(t, 4.0, opts.Weights.Teleop.BasketLow)
	assert.Equal(t, 40.0, opts.Weights.EndgameAscent[scoring.AscentLevel3])
	assert.Equal(t, 15.0, opts.Weights.EndgameAscent[scoring.AscentLevel2])

	cfg.WeightsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Scoring()
	assert.Error(t, err)
}
