// Day 5: inbound SDR agent answering product FAQs and capturing leads.
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
		Name:  "sdr",
		Usage: "voice SDR that answers product questions and captures lead details",
		NewSession: func(ctx context.Context, voice bool) (*agent.Session, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			faq := store.LoadFAQ(cfg.FAQPath(), logger)
			leads := store.NewLeadStore(cfg.LeadsDir(), logger)
			persona := agents.NewSDR(faq, leads, logger)
			return boot.NewSession(ctx, cfg, persona, voice, logger)
		},
	})
}
