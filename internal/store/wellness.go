package store

import (
	"log/slog"
	"os"
	"time"
)

// WellnessEntry is one saved check-in.
type WellnessEntry struct {
	Timestamp string   `json:"timestamp"`
	Mood      string   `json:"mood"`
	Energy    string   `json:"energy"`
	Goals     []string `json:"goals"`
	Summary   string   `json:"summary"`
}

// WellnessLog persists check-ins as one JSON array, rewritten in full on
// each save.
type WellnessLog struct {
	path   string
	logger *slog.Logger
}

// NewWellnessLog creates a log writing to path.
func NewWellnessLog(path string, logger *slog.Logger) *WellnessLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &WellnessLog{path: path, logger: logger.With("component", "wellness")}
}

// Load returns all saved check-ins, oldest first. Missing or unreadable
// files yield an empty list.
func (l *WellnessLog) Load() []WellnessEntry {
	var entries []WellnessEntry
	if err := readJSONFile(l.path, &entries); err != nil {
		if !os.IsNotExist(err) {
			l.logger.Error("failed to load wellness log, resetting", "path", l.path, "error", err)
		}
		return nil
	}
	return entries
}

// Append persists a new check-in with the given capture time.
func (l *WellnessLog) Append(entry WellnessEntry, now time.Time) error {
	entry.Timestamp = Timestamp(now)
	entries := append(l.Load(), entry)
	if err := writeJSONFile(l.path, entries); err != nil {
		return err
	}
	l.logger.Info("saved check-in", "count", len(entries))
	return nil
}

// Last returns the most recent check-in, if any.
func (l *WellnessLog) Last() (WellnessEntry, bool) {
	entries := l.Load()
	if len(entries) == 0 {
		return WellnessEntry{}, false
	}
	return entries[len(entries)-1], true
}
