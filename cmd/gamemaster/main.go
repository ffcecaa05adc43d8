// Day 3: immersive fantasy game master with dice rolls.
package main

import (
	"context"
	"log/slog"

	"github.com/voicelab-go/agent-days/internal/agents"
	"github.com/voicelab-go/agent-days/internal/boot"
	"github.com/voicelab-go/agent-days/internal/config"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

func main() {
	logger := slog.Default()

	agent.RunApp(agent.WorkerOptions{
		Name:  "gamemaster",
		Usage: "voice game master running a short fantasy adventure",
		NewSession: func(ctx context.Context, voice bool) (*agent.Session, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return boot.NewSession(ctx, cfg, agents.NewGameMaster(), voice, logger)
		},
	})
}
