package agent

// Event is the interface for all session events.
type Event interface {
	// EventType returns the event type string for serialization.
	EventType() string
}

// SessionCreatedEvent is emitted when the session is configured and running.
type SessionCreatedEvent struct {
	SessionID string `json:"session_id"`
	Agent     string `json:"agent"`
}

func (e *SessionCreatedEvent) EventType() string { return "session.created" }

// SessionClosedEvent is emitted when the session ends.
type SessionClosedEvent struct {
	Reason string `json:"reason,omitempty"`
}

func (e *SessionClosedEvent) EventType() string { return "session.closed" }

// TranscriptionEvent is emitted as transcription updates arrive from STT.
type TranscriptionEvent struct {
	Text  string `json:"text"`
	Final bool   `json:"final,omitempty"`
}

func (e *TranscriptionEvent) EventType() string { return "transcription" }

// TurnCommittedEvent is emitted when the user's turn is complete and handed
// to the model.
type TurnCommittedEvent struct {
	Transcript string `json:"transcript"`
	Forced     bool   `json:"forced,omitempty"` // True when the no-activity timeout forced the commit
}

func (e *TurnCommittedEvent) EventType() string { return "turn.committed" }

// ToolCalledEvent is emitted after a tool handler ran.
type ToolCalledEvent struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	Failed     bool   `json:"failed,omitempty"`
}

func (e *ToolCalledEvent) EventType() string { return "tool.called" }

// AgentReplyEvent carries the model's final text for a turn.
type AgentReplyEvent struct {
	Text string `json:"text"`
}

func (e *AgentReplyEvent) EventType() string { return "agent.reply" }

// MetricsCollectedEvent is emitted once per completed turn.
type MetricsCollectedEvent struct {
	Metrics TurnMetrics `json:"metrics"`
}

func (e *MetricsCollectedEvent) EventType() string { return "metrics_collected" }

// ErrorEvent reports a non-fatal session error.
type ErrorEvent struct {
	Err error `json:"-"`
}

func (e *ErrorEvent) EventType() string { return "error" }
