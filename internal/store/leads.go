package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Lead is one captured prospect. Immutable once written.
type Lead struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	UseCase   string `json:"use_case"`
	TeamSize  string `json:"team_size"`
	Timeline  string `json:"timeline"`
	Notes     string `json:"notes"`
}

// LeadStore writes one JSON file per lead, keyed by capture time.
type LeadStore struct {
	dir    string
	logger *slog.Logger
}

// NewLeadStore creates a store writing into dir.
func NewLeadStore(dir string, logger *slog.Logger) *LeadStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadStore{dir: dir, logger: logger.With("component", "leads")}
}

// Save writes the lead as lead_<YYYYMMDD_HHMMSS>.json and returns the file
// name. The lead's Timestamp field is filled from now.
func (s *LeadStore) Save(lead Lead, now time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create leads dir: %w", err)
	}

	lead.Timestamp = Timestamp(now)
	name := fmt.Sprintf("lead_%s.json", now.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	if err := writeJSONFile(path, lead); err != nil {
		return "", err
	}
	s.logger.Info("saved lead", "file", name, "company", lead.Company)
	return name, nil
}

// Load reads one lead file back. Used by tests and the SDR recap prompt.
func (s *LeadStore) Load(name string) (Lead, error) {
	var lead Lead
	if err := readJSONFile(filepath.Join(s.dir, name), &lead); err != nil {
		return Lead{}, err
	}
	return lead, nil
}
