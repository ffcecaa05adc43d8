// Day 2: outbound fraud-alert verification agent backed by a SQLite case.
package main

import (
	"context"
	"log/slog"

	"github.com/voicelab-go/agent-days/internal/agents"
	"github.com/voicelab-go/agent-days/internal/boot"
	"github.com/voicelab-go/agent-days/internal/config"
	"github.com/voicelab-go/agent-days/internal/store"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

func main() {
	logger := slog.Default()
	var repo *store.FraudCaseRepo

	agent.RunApp(agent.WorkerOptions{
		Name:  "fraud",
		Usage: "voice agent that verifies a flagged card transaction with the customer",
		NewSession: func(ctx context.Context, voice bool) (*agent.Session, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			repo, err = store.OpenFraudCaseRepo(ctx, cfg.FraudDBPath(), logger)
			if err != nil {
				return nil, err
			}
			persona := agents.NewFraud(repo, logger)
			return boot.NewSession(ctx, cfg, persona, voice, logger)
		},
		OnShutdown: func() error {
			if repo != nil {
				return repo.Close()
			}
			return nil
		},
	})
}
