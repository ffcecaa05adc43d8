// Day 1: food & grocery ordering agent with a cart and order placement.
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
		Name:  "grocery",
		Usage: "voice agent that takes grocery orders against a small catalog",
		NewSession: func(ctx context.Context, voice bool) (*agent.Session, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			catalog := store.LoadCatalog(cfg.CatalogPath(), logger)
			orders := store.NewOrderStore(cfg.OrdersPath(), logger)
			persona := agents.NewGrocery(catalog, orders, logger)
			return boot.NewSession(ctx, cfg, persona, voice, logger)
		},
	})
}
