package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/voicelab-go/agent-days/pkg/voice/stt"
	"github.com/voicelab-go/agent-days/pkg/voice/tts"
)

// SessionState tracks where the conversation loop is.
type SessionState int

const (
	StateConfiguring SessionState = iota
	StateListening
	StateThinking
	StateSpeaking
	StateClosed
)

// String returns a human-readable state name.
func (s SessionState) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateListening:
		return "listening"
	case StateThinking:
		return "thinking"
	case StateSpeaking:
		return "speaking"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SessionConfig wires a persona to the hosted pipeline.
type SessionConfig struct {
	Agent *Agent
	LLM   LLMClient
	Model string // Hosted model name, e.g. "gemini-2.5-flash"

	// STT and TTS are optional: a text-only (console) session leaves both nil.
	STT        stt.Provider
	STTOptions stt.StreamOptions
	TTS        tts.Provider
	TTSOptions tts.StreamOptions

	Turn TurnConfig

	// MaxToolIterations caps tool round-trips per user turn. Default 8.
	MaxToolIterations int

	Logger *slog.Logger
}

// Session orchestrates one live conversation: audio in -> STT -> turn commit
// -> LLM tool loop -> TTS -> audio out. One logical conversation per process;
// tool handlers are never invoked concurrently.
type Session struct {
	config SessionConfig
	agent  *Agent
	logger *slog.Logger

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	messages  []ChatMessage

	sttStream *stt.Stream
	sttMu     sync.Mutex

	turn *TurnDetector

	eventsMu     sync.Mutex
	events       chan Event
	eventsClosed bool

	audioOut chan []byte
	done     chan struct{}
	closed   atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session for the given config.
func NewSession(config SessionConfig) (*Session, error) {
	if config.Agent == nil {
		return nil, fmt.Errorf("agent is required")
	}
	if config.LLM == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if config.MaxToolIterations <= 0 {
		config.MaxToolIterations = 8
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Session{
		config:    config,
		agent:     config.Agent,
		logger:    config.Logger.With("agent", config.Agent.Name),
		state:     StateConfiguring,
		sessionID: uuid.NewString(),
		events:    make(chan Event, 100),
		audioOut:  make(chan []byte, 100),
		done:      make(chan struct{}),
	}
	s.turn = NewTurnDetector(config.Turn, s.onTurnCommit)
	return s, nil
}

// SessionID returns the session identifier.
func (s *Session) SessionID() string {
	return s.sessionID
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Events returns the channel of session events.
func (s *Session) Events() <-chan Event {
	return s.events
}

// AudioOut returns the channel of synthesized audio chunks.
func (s *Session) AudioOut() <-chan []byte {
	return s.audioOut
}

// Done returns a channel that's closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start begins the session. When an STT provider is configured the
// transcription stream and turn detector start immediately.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConfiguring {
		s.mu.Unlock()
		return fmt.Errorf("session already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if s.config.STT != nil {
		stream, err := s.config.STT.NewStream(s.ctx, s.config.STTOptions)
		if err != nil {
			return fmt.Errorf("start STT: %w", err)
		}
		s.sttMu.Lock()
		s.sttStream = stream
		s.sttMu.Unlock()

		s.turn.Start(s.ctx)
		go s.sttLoop(stream)
	}

	s.setState(StateListening)
	s.emit(&SessionCreatedEvent{SessionID: s.sessionID, Agent: s.agent.Name})
	s.logger.Info("session started", "session_id", s.sessionID)

	if s.agent.Greeting != "" {
		go func() {
			s.speak(s.agent.Greeting)
			s.setState(StateListening)
		}()
	}
	return nil
}

// SendAudio forwards raw microphone audio to the transcription stream.
func (s *Session) SendAudio(data []byte) error {
	s.sttMu.Lock()
	stream := s.sttStream
	s.sttMu.Unlock()
	if stream == nil {
		return fmt.Errorf("session has no STT stream")
	}
	return stream.SendAudio(data)
}

// SendText submits a complete user turn as text, bypassing STT and turn
// detection. Used by console mode.
func (s *Session) SendText(text string) {
	s.runTurn(text)
}

// Close ends the session.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.setState(StateClosed)
	s.turn.Stop()
	if s.cancel != nil {
		s.cancel()
	}

	s.sttMu.Lock()
	if s.sttStream != nil {
		s.sttStream.Close()
	}
	s.sttMu.Unlock()

	s.emit(&SessionClosedEvent{})

	// Closing the channel lets event consumers exit their range loops.
	s.eventsMu.Lock()
	s.eventsClosed = true
	close(s.events)
	s.eventsMu.Unlock()

	close(s.done)
	return nil
}

func (s *Session) sttLoop(stream *stt.Stream) {
	for delta := range stream.Transcripts() {
		s.emit(&TranscriptionEvent{Text: delta.Text, Final: delta.Final})
		if delta.Final {
			s.turn.AddTranscript(delta.Text)
		}
	}
}

func (s *Session) onTurnCommit(transcript string, forced bool) {
	s.emit(&TurnCommittedEvent{Transcript: transcript, Forced: forced})
	s.runTurn(transcript)
}

// runTurn drives one full user turn: LLM call, tool dispatch, reply synthesis.
func (s *Session) runTurn(userText string) {
	if s.closed.Load() {
		return
	}
	s.setState(StateThinking)
	started := time.Now()
	var metrics TurnMetrics

	s.mu.Lock()
	s.messages = append(s.messages, ChatMessage{Role: RoleUser, Text: userText})
	s.mu.Unlock()

	var replyText string
	for i := 0; i < s.config.MaxToolIterations; i++ {
		resp, err := s.config.LLM.Chat(s.ctx, &ChatRequest{
			Model:    s.config.Model,
			System:   s.agent.Instructions,
			Messages: s.history(),
			Tools:    s.agent.Tools.Tools(),
		})
		if err != nil {
			s.failTurn(fmt.Errorf("llm chat: %w", err))
			return
		}
		metrics.InputTokens += resp.Usage.InputTokens
		metrics.OutputTokens += resp.Usage.OutputTokens

		if len(resp.Calls) == 0 {
			replyText = resp.Text
			s.mu.Lock()
			s.messages = append(s.messages, ChatMessage{Role: RoleModel, Text: resp.Text})
			s.mu.Unlock()
			break
		}

		s.mu.Lock()
		s.messages = append(s.messages, ChatMessage{Role: RoleModel, Text: resp.Text, Calls: resp.Calls})
		s.mu.Unlock()

		results := make([]ToolResult, 0, len(resp.Calls))
		for j, call := range resp.Calls {
			result, err := s.executeToolCall(call)
			if err != nil {
				// Tool faults abort the whole turn, matching the
				// raise-on-invalid-state tool policy. The model message
				// carrying the calls is already in the history, and the
				// hosted API rejects any later request whose function
				// calls lack paired responses, so pair the failed call
				// and any skipped ones with error payloads first.
				results = append(results, errorToolResult(call, err))
				for _, skipped := range resp.Calls[j+1:] {
					results = append(results, errorToolResult(skipped, errToolSkipped))
				}
				s.mu.Lock()
				s.messages = append(s.messages, ChatMessage{Role: RoleUser, Results: results})
				s.mu.Unlock()
				s.failTurn(fmt.Errorf("tool %s: %w", call.Name, err))
				return
			}
			metrics.ToolCalls++
			results = append(results, result)
		}

		s.mu.Lock()
		s.messages = append(s.messages, ChatMessage{Role: RoleUser, Results: results})
		s.mu.Unlock()
	}

	if replyText != "" {
		s.emit(&AgentReplyEvent{Text: replyText})
		s.speak(replyText)
		metrics.TTSCharacters += len(replyText)
	}

	metrics.DurationMs = time.Since(started).Milliseconds()
	s.emit(&MetricsCollectedEvent{Metrics: metrics})

	s.turn.Reset()
	s.setState(StateListening)
}

var errToolSkipped = errors.New("not executed, an earlier tool call in this turn failed")

// errorToolResult pairs a function call with an error-shaped response so the
// conversation history stays well formed after an aborted turn.
func errorToolResult(call ToolCall, err error) ToolResult {
	return ToolResult{ID: call.ID, Name: call.Name, Output: map[string]any{"error": err.Error()}}
}

func (s *Session) executeToolCall(call ToolCall) (ToolResult, error) {
	handler, ok := s.agent.Tools.Handler(call.Name)
	if !ok {
		return ToolResult{}, fmt.Errorf("no handler registered")
	}

	started := time.Now()
	output, err := handler(s.ctx, call.Input)
	s.emit(&ToolCalledEvent{
		Name:       call.Name,
		DurationMs: time.Since(started).Milliseconds(),
		Failed:     err != nil,
	})
	if err != nil {
		return ToolResult{}, err
	}

	s.logger.Debug("tool executed", "tool", call.Name, "input", string(call.Input))
	return ToolResult{ID: call.ID, Name: call.Name, Output: output}, nil
}

// speak synthesizes text and pushes audio chunks to AudioOut. No-op when the
// session has no TTS provider.
func (s *Session) speak(text string) {
	if s.config.TTS == nil || text == "" {
		return
	}
	s.setState(StateSpeaking)

	opts := s.config.TTSOptions
	if s.agent.Voice != nil {
		opts.Voice = s.agent.Voice.Voice
		opts.Style = s.agent.Voice.Style
	}

	sc, err := s.config.TTS.NewStreamingContext(s.ctx, opts)
	if err != nil {
		s.emit(&ErrorEvent{Err: fmt.Errorf("tts: %w", err)})
		return
	}
	defer sc.Close()

	if err := sc.SendText(text, true); err != nil {
		s.emit(&ErrorEvent{Err: fmt.Errorf("tts send: %w", err)})
		return
	}

	for chunk := range sc.Audio() {
		select {
		case s.audioOut <- chunk:
		case <-s.ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil && s.ctx.Err() == nil {
		s.emit(&ErrorEvent{Err: fmt.Errorf("tts stream: %w", err)})
	}
}

func (s *Session) failTurn(err error) {
	s.logger.Error("turn aborted", "error", err)
	s.emit(&ErrorEvent{Err: err})
	s.turn.Reset()
	s.setState(StateListening)
}

func (s *Session) history() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// emit delivers an event without ever blocking the conversation loop; slow
// consumers lose events rather than stall audio. Events after close are
// dropped.
func (s *Session) emit(ev Event) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	if s.eventsClosed {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.logger.Debug("event dropped", "type", ev.EventType())
	}
}
