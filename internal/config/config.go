// Package config builds the process-wide configuration from the environment.
// It is constructed once at startup and passed explicitly to every store; no
// package-level paths, no import-time side effects.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the demo binaries read from the environment.
type Config struct {
	DataDir string `envconfig:"DATA_DIR" default:"shared-data"`

	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`
	DeepgramAPIKey string `envconfig:"DEEPGRAM_API_KEY"`
	MurfAPIKey     string `envconfig:"MURF_API_KEY"`

	Model    string `envconfig:"LLM_MODEL" default:"gemini-2.5-flash"`
	STTModel string `envconfig:"STT_MODEL" default:"nova-3"`

	Voice      string `envconfig:"TTS_VOICE" default:"en-US-matthew"`
	VoiceStyle string `envconfig:"TTS_STYLE" default:"Conversation"`

	TutorMode string `envconfig:"TUTOR_MODE" default:"learn"`
}

// Load reads the environment and creates the data directory.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", cfg.DataDir, err)
	}
	return &cfg, nil
}

// CatalogPath is the grocery catalog JSON file.
func (c *Config) CatalogPath() string { return filepath.Join(c.DataDir, "catalog.json") }

// OrdersPath is the placed-orders JSON file.
func (c *Config) OrdersPath() string { return filepath.Join(c.DataDir, "orders.json") }

// LeadsDir is the directory holding one JSON file per captured lead.
func (c *Config) LeadsDir() string { return filepath.Join(c.DataDir, "leads") }

// WellnessLogPath is the wellness check-in JSON array file.
func (c *Config) WellnessLogPath() string { return filepath.Join(c.DataDir, "wellness_log.json") }

// FAQPath is the product FAQ JSON file.
func (c *Config) FAQPath() string { return filepath.Join(c.DataDir, "faq.json") }

// TutorContentPath is the tutor concept table JSON file.
func (c *Config) TutorContentPath() string { return filepath.Join(c.DataDir, "tutor_content.json") }

// FraudDBPath is the SQLite database holding the fraud case.
func (c *Config) FraudDBPath() string { return filepath.Join(c.DataDir, "fraud.db") }
