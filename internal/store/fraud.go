package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var fraudMigrations embed.FS

// Fraud case statuses. pending_review is the starting state; the other three
// are terminal.
const (
	CaseStatusPendingReview      = "pending_review"
	CaseStatusConfirmedSafe      = "confirmed_safe"
	CaseStatusConfirmedFraud     = "confirmed_fraud"
	CaseStatusVerificationFailed = "verification_failed"
)

// FraudCase is the single persistent case record. Exactly one row exists for
// the lifetime of the demo database; it is mutated in place, never deleted.
type FraudCase struct {
	ID                   int64  `db:"id" json:"id"`
	UserName             string `db:"userName" json:"userName"`
	SecurityIdentifier   string `db:"securityIdentifier" json:"securityIdentifier"`
	CardEnding           string `db:"cardEnding" json:"cardEnding"`
	TransactionAmount    string `db:"transactionAmount" json:"transactionAmount"`
	TransactionName      string `db:"transactionName" json:"transactionName"`
	TransactionLocation  string `db:"transactionLocation" json:"transactionLocation"`
	TransactionTime      string `db:"transactionTime" json:"transactionTime"`
	TransactionCategory  string `db:"transactionCategory" json:"transactionCategory"`
	TransactionSource    string `db:"transactionSource" json:"transactionSource"`
	VerificationQuestion string `db:"verificationQuestion" json:"verificationQuestion"`
	VerificationAnswer   string `db:"verificationAnswer" json:"verificationAnswer"`
	Status               string `db:"status" json:"status"`
	OutcomeNote          string `db:"outcomeNote" json:"outcomeNote"`
	LastUpdated          string `db:"lastUpdated" json:"lastUpdated"`
}

// AnswerMatches compares a spoken answer against the stored one, ignoring
// case and leading/trailing whitespace. Anything else is a mismatch.
func (c FraudCase) AnswerMatches(given string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(c.VerificationAnswer))
}

// FraudCaseRepo is the SQLite-backed repository for the single fraud case.
type FraudCaseRepo struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// OpenFraudCaseRepo opens (creating if needed) the case database, runs the
// schema migration and seeds the demo row when the table is empty.
func OpenFraudCaseRepo(ctx context.Context, path string, logger *slog.Logger) (*FraudCaseRepo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "fraud_cases")

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open fraud db %q: %w", path, err)
	}

	migrations, err := fs.Sub(fraudMigrations, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, migrations)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate fraud db: %w", err)
	}

	repo := &FraudCaseRepo{db: db, logger: logger}
	if err := repo.seed(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// Close releases the database handle.
func (r *FraudCaseRepo) Close() error {
	return r.db.Close()
}

// Get loads the case (the first and only row).
func (r *FraudCaseRepo) Get(ctx context.Context) (FraudCase, error) {
	var c FraudCase
	err := r.db.GetContext(ctx, &c, `SELECT * FROM fraud_cases ORDER BY id LIMIT 1`)
	if err != nil {
		return FraudCase{}, fmt.Errorf("load fraud case: %w", err)
	}
	return c, nil
}

// Update writes the case back to its row inside one transaction, stamping
// lastUpdated. Status, outcomeNote and lastUpdated are overwritten on every
// transition; no history of prior states is kept.
func (r *FraudCaseRepo) Update(ctx context.Context, c FraudCase) error {
	if c.ID == 0 {
		return fmt.Errorf("fraud case id is required")
	}
	c.LastUpdated = Timestamp(time.Now())

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		UPDATE fraud_cases SET
			userName = :userName,
			securityIdentifier = :securityIdentifier,
			cardEnding = :cardEnding,
			transactionAmount = :transactionAmount,
			transactionName = :transactionName,
			transactionLocation = :transactionLocation,
			transactionTime = :transactionTime,
			transactionCategory = :transactionCategory,
			transactionSource = :transactionSource,
			verificationQuestion = :verificationQuestion,
			verificationAnswer = :verificationAnswer,
			status = :status,
			outcomeNote = :outcomeNote,
			lastUpdated = :lastUpdated
		WHERE id = :id`, c)
	if err != nil {
		return fmt.Errorf("update fraud case: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fraud case: %w", err)
	}

	r.logger.Info("updated fraud case", "status", c.Status)
	return nil
}

// seed inserts the demo case when the table is empty.
func (r *FraudCaseRepo) seed(ctx context.Context) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM fraud_cases`); err != nil {
		return fmt.Errorf("count fraud cases: %w", err)
	}
	if count > 0 {
		return nil
	}

	r.logger.Info("fraud_cases empty, inserting demo row")
	demo := FraudCase{
		UserName:             "Aman Gupta",
		SecurityIdentifier:   "SEC-12345",
		CardEnding:           "4242",
		TransactionAmount:    "₹4,999.00",
		TransactionName:      "ABC Industries",
		TransactionLocation:  "Mumbai, IN",
		TransactionTime:      "2025-11-26T10:15:00",
		TransactionCategory:  "e-commerce",
		TransactionSource:    "alibaba.com",
		VerificationQuestion: "What is your favorite color?",
		VerificationAnswer:   "blue",
		Status:               CaseStatusPendingReview,
		OutcomeNote:          "",
		LastUpdated:          Timestamp(time.Now()),
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO fraud_cases (
			userName, securityIdentifier, cardEnding,
			transactionAmount, transactionName, transactionLocation,
			transactionTime, transactionCategory, transactionSource,
			verificationQuestion, verificationAnswer,
			status, outcomeNote, lastUpdated
		) VALUES (
			:userName, :securityIdentifier, :cardEnding,
			:transactionAmount, :transactionName, :transactionLocation,
			:transactionTime, :transactionCategory, :transactionSource,
			:verificationQuestion, :verificationAnswer,
			:status, :outcomeNote, :lastUpdated
		)`, demo)
	if err != nil {
		return fmt.Errorf("seed fraud case: %w", err)
	}
	return nil
}
