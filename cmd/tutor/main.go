// Day 6: multi-mode programming tutor that switches voice with its mode.
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

	agent.RunApp(agent.WorkerOptions{
		Name:  "tutor",
		Usage: "programming tutor with learn, quiz and teach-back modes",
		NewSession: func(ctx context.Context, voice bool) (*agent.Session, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			table := store.LoadConcepts(cfg.TutorContentPath(), logger)
			tutor := agents.NewTutor(table, cfg.TutorMode, logger)
			return boot.NewSession(ctx, cfg, tutor.Agent(), voice, logger)
		},
	})
}
