// Package boot wires personas to the hosted providers. Every demo binary
// goes through NewSession so provider selection and stream options stay in
// one place.
package boot

import (
	"context"
	"log/slog"

	"github.com/voicelab-go/agent-days/internal/config"
	"github.com/voicelab-go/agent-days/pkg/agent"
	"github.com/voicelab-go/agent-days/pkg/agent/llm"
	"github.com/voicelab-go/agent-days/pkg/voice/stt"
	"github.com/voicelab-go/agent-days/pkg/voice/tts"
)

// NewSession builds a session for the given persona. voice=false skips the
// STT/TTS providers entirely (console mode).
func NewSession(ctx context.Context, cfg *config.Config, persona *agent.Agent, voice bool, logger *slog.Logger) (*agent.Session, error) {
	gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	sc := agent.SessionConfig{
		Agent:  persona,
		LLM:    gemini,
		Model:  cfg.Model,
		Logger: logger,
	}
	if voice {
		sc.STT = stt.NewDeepgram(cfg.DeepgramAPIKey)
		sc.STTOptions = stt.StreamOptions{
			Model:      cfg.STTModel,
			Language:   "en",
			Encoding:   "linear16",
			SampleRate: 16000,
			Interim:    true,
		}
		sc.TTS = tts.NewMurf(cfg.MurfAPIKey)
		sc.TTSOptions = tts.StreamOptions{
			Voice:      cfg.Voice,
			Style:      cfg.VoiceStyle,
			Format:     "PCM",
			SampleRate: 24000,
		}
	}
	return agent.NewSession(sc)
}
