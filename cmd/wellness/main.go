// Day 4: daily wellness check-in companion with a persistent log.
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
	var wellness *agents.Wellness

	agent.RunApp(agent.WorkerOptions{
		Name:  "wellness",
		Usage: "voice companion for a short daily mood and goals check-in",
		NewSession: func(ctx context.Context, voice bool) (*agent.Session, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			log := store.NewWellnessLog(cfg.WellnessLogPath(), logger)
			wellness = agents.NewWellness(log, logger)
			return boot.NewSession(ctx, cfg, wellness.Agent(), voice, logger)
		},
		OnEvent: func(ev agent.Event) {
			if wellness == nil {
				return
			}
			if e, ok := ev.(*agent.TranscriptionEvent); ok && e.Final {
				wellness.ObserveTranscript(e.Text)
			}
		},
		OnShutdown: func() error {
			if wellness != nil {
				return wellness.Flush()
			}
			return nil
		},
	})
}
