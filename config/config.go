// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"curator/scoring"
	"curator/store"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Debug bool
	Port  string

	// SQLite file; a Railway volume mount overrides the local path.
	DBPath          string
	RailwayMountDir string

	// Spreadsheet export. SpreadsheetID is the default until one is saved
	// through the settings endpoint.
	SheetsEndpoint string
	SpreadsheetID  string

	// Leaderboard
	AggregationMode string
	WeightsFile     string

	QRSize int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("PORT", ":8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("DB_PATH", "./curator.db")
	v.SetDefault("AGGREGATION_MODE", string(scoring.ModeFirst))
	v.SetDefault("QR_SIZE", 256)

	return &Config{
		Debug:           v.GetBool("DEBUG"),
		Port:            v.GetString("PORT"),
		DBPath:          v.GetString("DB_PATH"),
		RailwayMountDir: v.GetString("RAILWAY_VOLUME_MOUNT_PATH"),
		SheetsEndpoint:  v.GetString("SHEETS_ENDPOINT"),
		SpreadsheetID:   v.GetString("SPREADSHEET_ID"),
		AggregationMode: v.GetString("AGGREGATION_MODE"),
		WeightsFile:     v.GetString("WEIGHTS_FILE"),
		QRSize:          v.GetInt("QR_SIZE"),
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: PORT must not be empty")
	}
	if _, err := scoring.ParseMode(c.AggregationMode); err != nil {
		return fmt.Errorf("config: AGGREGATION_MODE: %w", err)
	}
	if c.QRSize < 64 || c.QRSize > 2048 {
		return fmt.Errorf("config: QR_SIZE %d out of range 64-2048", c.QRSize)
	}
	return nil
}

// DatabasePath returns the SQLite file the store should open.
func (c *Config) DatabasePath() string {
	return store.DBPath(c.RailwayMountDir, c.DBPath)
}

// Scoring builds the aggregation options, layering WEIGHTS_FILE over the
// default point values.
func (c *Config) Scoring() (scoring.Options, error) {
	mode, err := scoring.ParseMode(c.AggregationMode)
	if err != nil {
		return scoring.Options{}, err
	}
	weights := scoring.DefaultWeights()
	if c.WeightsFile != "" {
		override, err := LoadWeights(c.WeightsFile)
		if err != nil {
			return scoring.Options{}, err
		}
		weights = weights.Merge(override)
	}
	return scoring.Options{Weights: weights, Mode: mode}, nil
}

// LoadWeights reads a YAML point table. Only the values present in the file
// are set; Merge fills the rest from the defaults.
func LoadWeights(path string) (scoring.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scoring.Weights{}, fmt.Errorf("read weights: %w", err)
	}
	var w scoring.Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return scoring.Weights{}, fmt.Errorf("parse weights %s: %w", path, err)
	}
	return w, nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: reading .env: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}
