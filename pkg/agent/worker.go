package agent

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/voicelab-go/agent-days/pkg/audio"
)

// WorkerOptions configures a demo agent binary.
type WorkerOptions struct {
	// Name is the binary name shown in help output.
	Name string
	// Usage is a one-line description of the persona.
	Usage string
	// NewSession builds the session. voice is false in console mode, where
	// STT/TTS wiring should be skipped.
	NewSession func(ctx context.Context, voice bool) (*Session, error)
	// OnEvent, when set, observes every session event after the default
	// handling.
	OnEvent func(Event)
	// OnShutdown, when set, runs after the session closes.
	OnShutdown func() error
}

// RunApp is the entry point each day's main calls. It exposes a `console`
// command (text-only conversation on stdin/stdout) and a `start` command
// (full microphone/speaker voice loop), loading .env.local first.
func RunApp(opts WorkerOptions) {
	app := &cli.App{
		Name:  opts.Name,
		Usage: opts.Usage,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "dotenv file to load",
				Value: ".env.local",
			},
		},
		Before: func(c *cli.Context) error {
			_ = godotenv.Load(c.String("env"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "console",
				Usage: "chat with the agent over stdin/stdout (no audio)",
				Action: func(c *cli.Context) error {
					return runConsole(c.Context, opts)
				},
			},
			{
				Name:  "start",
				Usage: "run the full voice loop against the default mic and speaker",
				Action: func(c *cli.Context) error {
					return runVoice(c.Context, opts)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("worker failed", "error", err)
		os.Exit(1)
	}
}

func runConsole(ctx context.Context, opts WorkerOptions) error {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	session, err := opts.NewSession(ctx, false)
	if err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		return err
	}

	usage := NewUsageCollector()
	go consumeEvents(session, usage, true, opts.OnEvent)
	defer shutdown(session, opts, usage)

	if session.agent.Greeting != "" {
		fmt.Printf("%s: %s\n", session.agent.Name, session.agent.Greeting)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "q" || line == "quit" {
			return nil
		}
		if line != "" {
			session.SendText(line)
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func runVoice(ctx context.Context, opts WorkerOptions) error {
	ctx, cancel := signalContext(ctx)
	defer cancel()

	session, err := opts.NewSession(ctx, true)
	if err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		return err
	}
	usage := NewUsageCollector()
	go consumeEvents(session, usage, false, opts.OnEvent)
	defer shutdown(session, opts, usage)

	inRate := session.config.STTOptions.SampleRate
	if inRate == 0 {
		inRate = 16000
	}
	outRate := session.config.TTSOptions.SampleRate
	if outRate == 0 {
		outRate = 24000
	}

	mic, err := audio.NewMic(inRate)
	if err != nil {
		return fmt.Errorf("open mic: %w", err)
	}
	defer mic.Close()

	speaker, err := audio.NewSpeaker(outRate)
	if err != nil {
		return fmt.Errorf("open speaker: %w", err)
	}
	defer speaker.Close()

	go func() {
		for chunk := range mic.Chunks() {
			if err := session.SendAudio(chunk); err != nil {
				return
			}
		}
	}()
	go func() {
		for chunk := range session.AudioOut() {
			if err := speaker.Write(chunk); err != nil {
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
	case <-session.Done():
	}
	return nil
}

// consumeEvents mirrors the event surface the demos care about: transcription
// echo, agent replies, and per-turn usage metrics.
func consumeEvents(session *Session, usage *UsageCollector, echoReply bool, hook func(Event)) {
	for ev := range session.Events() {
		switch e := ev.(type) {
		case *TranscriptionEvent:
			if e.Final {
				slog.Debug("transcription", "text", e.Text)
			}
		case *AgentReplyEvent:
			if echoReply {
				fmt.Printf("%s: %s\n", session.agent.Name, e.Text)
			}
		case *MetricsCollectedEvent:
			usage.Collect(e.Metrics)
			slog.Info("metrics collected",
				"input_tokens", e.Metrics.InputTokens,
				"output_tokens", e.Metrics.OutputTokens,
				"tool_calls", e.Metrics.ToolCalls,
				"duration_ms", e.Metrics.DurationMs)
		case *ErrorEvent:
			slog.Error("session error", "error", e.Err)
		}
		if hook != nil {
			hook(ev)
		}
	}
}

// shutdown closes the session before running the hook, so OnShutdown sees
// final state rather than racing an in-flight turn.
func shutdown(session *Session, opts WorkerOptions, usage *UsageCollector) {
	session.Close()
	if opts.OnShutdown != nil {
		if err := opts.OnShutdown(); err != nil {
			slog.Error("shutdown hook failed", "error", err)
		}
	}
	logUsage(usage)
}

func logUsage(usage *UsageCollector) {
	s := usage.Summary()
	slog.Info("usage",
		"turns", s.Turns,
		"input_tokens", s.InputTokens,
		"output_tokens", s.OutputTokens,
		"tool_calls", s.ToolCalls,
		"tts_characters", s.TTSCharacters)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
