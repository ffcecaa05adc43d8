package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStoreSaveAndLoad(t *testing.T) {
	s := NewLeadStore(t.TempDir(), nil)
	at := time.Date(2025, 11, 26, 14, 30, 5, 0, time.UTC)

	lead := Lead{
		Name:    "Priya Shah",
		Company: "Acme Robotics",
		Email:   "priya@acme.test",
		UseCase: "order-status hotline",
	}
	name, err := s.Save(lead, at)
	require.NoError(t, err)
	assert.Equal(t, "lead_20251126_143005.json", name)

	loaded, err := s.Load(name)
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", loaded.Name)
	assert.Equal(t, "2025-11-26T14:30:05", loaded.Timestamp)
}

func TestLeadStoreCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/leads"
	s := NewLeadStore(dir, nil)

	_, err := s.Save(Lead{Name: "X"}, time.Now())
	require.NoError(t, err)
}
