package agent

import "sync"

// TurnMetrics captures resource usage for one conversation turn.
type TurnMetrics struct {
	InputTokens   int   `json:"input_tokens"`
	OutputTokens  int   `json:"output_tokens"`
	ToolCalls     int   `json:"tool_calls"`
	TTSCharacters int   `json:"tts_characters"`
	DurationMs    int64 `json:"duration_ms"`
}

// UsageSummary is the aggregate over all collected turns.
type UsageSummary struct {
	Turns         int   `json:"turns"`
	InputTokens   int   `json:"input_tokens"`
	OutputTokens  int   `json:"output_tokens"`
	ToolCalls     int   `json:"tool_calls"`
	TTSCharacters int   `json:"tts_characters"`
	DurationMs    int64 `json:"duration_ms"`
}

// UsageCollector aggregates per-turn metrics. Safe for concurrent use; the
// session emits metrics from its own goroutines.
type UsageCollector struct {
	mu      sync.Mutex
	summary UsageSummary
}

// NewUsageCollector creates an empty collector.
func NewUsageCollector() *UsageCollector {
	return &UsageCollector{}
}

// Collect folds one turn's metrics into the summary.
func (c *UsageCollector) Collect(m TurnMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary.Turns++
	c.summary.InputTokens += m.InputTokens
	c.summary.OutputTokens += m.OutputTokens
	c.summary.ToolCalls += m.ToolCalls
	c.summary.TTSCharacters += m.TTSCharacters
	c.summary.DurationMs += m.DurationMs
}

// Summary returns a copy of the aggregate usage.
func (c *UsageCollector) Summary() UsageSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}
