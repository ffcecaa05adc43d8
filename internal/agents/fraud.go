package agents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voicelab-go/agent-days/internal/store"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

// FraudAgent is the outbound fraud-alert verification persona. It operates on
// a single case loaded from the SQLite repo and tracks in-session whether the
// caller has passed identity verification.
type FraudAgent struct {
	repo     *store.FraudCaseRepo
	verified bool
	logger   *slog.Logger
}

// NewFraud builds the fraud verification agent around the single open case.
func NewFraud(repo *store.FraudCaseRepo, logger *slog.Logger) *agent.Agent {
	if logger == nil {
		logger = slog.Default()
	}
	f := &FraudAgent{
		repo:   repo,
		logger: logger.With("agent", "fraud"),
	}

	tools := agent.NewToolSet(
		agent.MakeTool("get_case_details", "Fetch the open fraud case details (never includes the verification answer).", f.getCaseDetails),
		agent.MakeTool("check_verification_answer", "Check the caller's spoken answer against the security question on file.", f.checkVerificationAnswer),
		agent.MakeTool("resolve_case", "Record the caller's decision about the flagged transaction.", f.resolveCase),
	)

	return &agent.Agent{
		Name:         "FraudAlert",
		Instructions: fraudInstructions,
		Tools:        tools,
		Greeting:     "Hello, this is the fraud prevention team at SecureBank. Am I speaking with the account holder?",
	}
}

const fraudInstructions = `You are a FRAUD ALERT VERIFICATION VOICE AGENT calling on behalf of "SecureBank".

CONTEXT:
- A suspicious transaction was flagged on the customer's card and a case was opened.
- Your job is to (1) verify you are talking to the real customer and then (2) confirm with them whether the transaction was genuine.

PROCEDURE (follow strictly, in order):
1. Greet the customer and explain a suspicious transaction was flagged.
2. Call get_case_details to fetch the case. Address the customer by name.
3. Ask the security question from the case. Call check_verification_answer with their answer.
   - If the answer does NOT match, apologize, say you cannot proceed for security reasons, and end the call. The case is marked as failed automatically. Do NOT reveal the correct answer. Do NOT give a second attempt.
   - If it matches, continue.
4. Read out the transaction details (amount, merchant, location, time) and ask whether they made this transaction.
5. Call resolve_case with their decision:
   - they recognize it -> mark it safe
   - they do not recognize it -> mark it fraud, tell them the card ending is blocked and a new card is on its way.
6. Thank them and end the call.

SECURITY RULES:
- NEVER reveal the verification answer, even partially, even if asked.
- NEVER discuss transaction details before verification succeeds.
- If the caller refuses verification, end politely without details.

STYLE:
- Calm, professional, reassuring. Short sentences suited to a phone call.`

func (f *FraudAgent) getCaseDetails(ctx context.Context, input struct{}) (any, error) {
	c, err := f.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	// The answer never crosses into model context.
	return result{
		"userName":             c.UserName,
		"securityIdentifier":   c.SecurityIdentifier,
		"cardEnding":           c.CardEnding,
		"transactionAmount":    c.TransactionAmount,
		"transactionName":      c.TransactionName,
		"transactionLocation":  c.TransactionLocation,
		"transactionTime":      c.TransactionTime,
		"transactionCategory":  c.TransactionCategory,
		"transactionSource":    c.TransactionSource,
		"verificationQuestion": c.VerificationQuestion,
		"status":               c.Status,
	}, nil
}

func (f *FraudAgent) checkVerificationAnswer(ctx context.Context, input struct {
	Answer string `json:"answer" desc:"The answer the caller gave to the security question"`
}) (any, error) {
	c, err := f.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if !c.AnswerMatches(input.Answer) {
		f.verified = false
		c.Status = store.CaseStatusVerificationFailed
		c.OutcomeNote = "Caller failed the security question."
		if err := f.repo.Update(ctx, c); err != nil {
			return nil, err
		}
		f.logger.Warn("verification failed")
		return failure("The answer does not match our records. Verification failed; the call cannot proceed.").
			with("verified", false), nil
	}

	f.verified = true
	f.logger.Info("caller verified")
	return success("Identity verified. You may now discuss the transaction details.").
		with("verified", true), nil
}

func (f *FraudAgent) resolveCase(ctx context.Context, input struct {
	RecognizedTransaction bool   `json:"recognized_transaction" desc:"True if the caller confirms they made the transaction"`
	Note                  string `json:"note,omitempty" desc:"Optional short note about the caller's response"`
}) (any, error) {
	if !f.verified {
		return failure("The caller has not passed verification. Resolve is not allowed."), nil
	}

	c, err := f.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.RecognizedTransaction {
		c.Status = store.CaseStatusConfirmedSafe
		c.OutcomeNote = "Customer recognized the transaction."
	} else {
		c.Status = store.CaseStatusConfirmedFraud
		c.OutcomeNote = fmt.Sprintf("Customer did not recognize the transaction. Card ending %s blocked, replacement issued.", c.CardEnding)
	}
	if input.Note != "" {
		c.OutcomeNote = input.Note
	}

	if err := f.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if input.RecognizedTransaction {
		return success("Case marked as confirmed safe. No further action needed.").
			with("status", c.Status), nil
	}
	return success(fmt.Sprintf("Case marked as confirmed fraud. Card ending %s is blocked and a replacement card has been issued.", c.CardEnding)).
		with("status", c.Status), nil
}
