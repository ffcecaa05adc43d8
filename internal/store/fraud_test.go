package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *FraudCaseRepo {
	t.Helper()
	repo, err := OpenFraudCaseRepo(context.Background(), filepath.Join(t.TempDir(), "fraud.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestOpenSeedsSingleCase(t *testing.T) {
	repo := openTestRepo(t)

	c, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Aman Gupta", c.UserName)
	assert.Equal(t, CaseStatusPendingReview, c.Status)
	assert.NotEmpty(t, c.VerificationQuestion)
}

func TestUpdatePersistsStatus(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	c, err := repo.Get(ctx)
	require.NoError(t, err)

	c.Status = CaseStatusConfirmedFraud
	c.OutcomeNote = "customer did not recognize the charge"
	require.NoError(t, repo.Update(ctx, c))

	reloaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, CaseStatusConfirmedFraud, reloaded.Status)
	assert.Equal(t, "customer did not recognize the charge", reloaded.OutcomeNote)
	assert.NotEmpty(t, reloaded.LastUpdated)
}

func TestUpdateRequiresID(t *testing.T) {
	repo := openTestRepo(t)
	err := repo.Update(context.Background(), FraudCase{})
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fraud.db")
	ctx := context.Background()

	repo, err := OpenFraudCaseRepo(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// Reopening must not insert a second row.
	repo, err = OpenFraudCaseRepo(ctx, path, nil)
	require.NoError(t, err)
	defer repo.Close()

	var count int
	require.NoError(t, repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM fraud_cases`))
	assert.Equal(t, 1, count)
}

func TestAnswerMatches(t *testing.T) {
	c := FraudCase{VerificationAnswer: "blue"}

	assert.True(t, c.AnswerMatches("blue"))
	assert.True(t, c.AnswerMatches("  Blue "))
	assert.True(t, c.AnswerMatches("BLUE"))
	assert.False(t, c.AnswerMatches("light blue"))
	assert.False(t, c.AnswerMatches(""))
}
