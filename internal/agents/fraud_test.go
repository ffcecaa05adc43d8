package agents

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicelab-go/agent-days/internal/store"
)

func newFraudFixture(t *testing.T) (toolCaller, *store.FraudCaseRepo) {
	t.Helper()
	repo, err := store.OpenFraudCaseRepo(context.Background(), filepath.Join(t.TempDir(), "fraud.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	persona := NewFraud(repo, nil)
	return toolCaller{t: t, tools: persona.Tools}, repo
}

func TestCaseDetailsOmitAnswer(t *testing.T) {
	f, _ := newFraudFixture(t)

	details := f.call("get_case_details", `{}`)
	assert.Equal(t, "Aman Gupta", details["userName"])
	assert.NotEmpty(t, details["verificationQuestion"])
	_, leaked := details["verificationAnswer"]
	assert.False(t, leaked, "verification answer must never reach the model")
}

func TestWrongAnswerFailsAndPersists(t *testing.T) {
	f, repo := newFraudFixture(t)

	r := f.call("check_verification_answer", `{"answer":"green"}`)
	assert.Equal(t, false, r["success"])
	assert.Equal(t, false, r["verified"])

	c, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.CaseStatusVerificationFailed, c.Status)
}

func TestCorrectAnswerVerifies(t *testing.T) {
	f, repo := newFraudFixture(t)

	r := f.call("check_verification_answer", `{"answer":" Blue "}`)
	assert.Equal(t, true, r["success"])
	assert.Equal(t, true, r["verified"])

	// Verification alone does not change the case status.
	c, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.CaseStatusPendingReview, c.Status)
}

func TestResolveRequiresVerification(t *testing.T) {
	f, repo := newFraudFixture(t)

	r := f.call("resolve_case", `{"recognized_transaction":true}`)
	assert.Equal(t, false, r["success"])

	c, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.CaseStatusPendingReview, c.Status)
}

func TestResolveSafe(t *testing.T) {
	f, repo := newFraudFixture(t)

	f.call("check_verification_answer", `{"answer":"blue"}`)
	r := f.call("resolve_case", `{"recognized_transaction":true}`)
	assert.Equal(t, true, r["success"])

	c, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.CaseStatusConfirmedSafe, c.Status)
}

func TestResolveFraudBlocksCard(t *testing.T) {
	f, repo := newFraudFixture(t)

	f.call("check_verification_answer", `{"answer":"blue"}`)
	r := f.call("resolve_case", `{"recognized_transaction":false}`)
	assert.Equal(t, true, r["success"])
	assert.Contains(t, r["message"], "4242")

	c, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.CaseStatusConfirmedFraud, c.Status)
	assert.NotEmpty(t, c.OutcomeNote)
}
