package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedLLM replays canned responses and records the history each request
// carried.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []*ChatResponse
	histories [][]ChatMessage
}

func (l *scriptedLLM) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := make([]ChatMessage, len(req.Messages))
	copy(history, req.Messages)
	l.histories = append(l.histories, history)

	if len(l.responses) == 0 {
		return &ChatResponse{Text: "done"}, nil
	}
	resp := l.responses[0]
	l.responses = l.responses[1:]
	return resp, nil
}

func newTestSession(t *testing.T, llm LLMClient, tools *ToolSet) *Session {
	t.Helper()
	s, err := NewSession(SessionConfig{
		Agent: &Agent{Name: "T", Instructions: "test", Tools: tools},
		LLM:   llm,
		Model: "test-model",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestToolFaultKeepsCallsPaired(t *testing.T) {
	llm := &scriptedLLM{responses: []*ChatResponse{
		{Calls: []ToolCall{{ID: "c1", Name: "explode", Input: json.RawMessage(`{}`)}}},
		{Text: "hello again"},
	}}
	tools := NewToolSet(
		MakeTool("explode", "", func(ctx context.Context, in struct{}) (any, error) {
			return nil, errors.New("boom")
		}),
	)
	s := newTestSession(t, llm, tools)

	s.SendText("first turn")
	s.SendText("second turn")

	if len(llm.histories) != 2 {
		t.Fatalf("got %d chat requests, want 2", len(llm.histories))
	}

	// The aborted turn must leave its function call paired with a response,
	// or every later request replays a dangling call.
	history := llm.histories[1]
	if len(history) != 4 {
		t.Fatalf("second request history has %d messages, want 4: %+v", len(history), history)
	}
	if len(history[1].Calls) != 1 {
		t.Fatalf("model message calls = %+v", history[1].Calls)
	}
	results := history[2].Results
	if len(results) != 1 {
		t.Fatalf("results = %+v, want one paired response", results)
	}
	if results[0].ID != "c1" || results[0].Name != "explode" {
		t.Errorf("result = %+v, not paired with the call", results[0])
	}
	out, ok := results[0].Output.(map[string]any)
	if !ok || out["error"] == "" {
		t.Errorf("result output = %#v, want an error payload", results[0].Output)
	}
	if history[3].Text != "second turn" {
		t.Errorf("final message = %+v", history[3])
	}
}

func TestToolFaultPairsSkippedCalls(t *testing.T) {
	llm := &scriptedLLM{responses: []*ChatResponse{
		{Calls: []ToolCall{
			{ID: "c1", Name: "explode", Input: json.RawMessage(`{}`)},
			{ID: "c2", Name: "after", Input: json.RawMessage(`{}`)},
		}},
	}}
	afterRan := false
	tools := NewToolSet(
		MakeTool("explode", "", func(ctx context.Context, in struct{}) (any, error) {
			return nil, errors.New("boom")
		}),
		MakeTool("after", "", func(ctx context.Context, in struct{}) (any, error) {
			afterRan = true
			return "ok", nil
		}),
	)
	s := newTestSession(t, llm, tools)

	s.SendText("first turn")
	s.SendText("second turn")

	if afterRan {
		t.Error("tool after the fault should not run")
	}
	history := llm.histories[1]
	if len(history) < 3 {
		t.Fatalf("history = %+v", history)
	}
	results := history[2].Results
	if len(results) != 2 {
		t.Fatalf("results = %+v, want both calls paired", results)
	}
	if results[1].ID != "c2" {
		t.Errorf("skipped call result = %+v", results[1])
	}
}

func TestCloseEndsEventStream(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{}, NewToolSet())
	s.Close()

	sawClosed := false
	deadline := time.After(time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				if !sawClosed {
					t.Fatal("events channel closed without a session.closed event")
				}
				return
			}
			if _, isClosed := ev.(*SessionClosedEvent); isClosed {
				sawClosed = true
			}
		case <-deadline:
			t.Fatal("events channel never closed")
		}
	}
}

func TestEmitAfterCloseIsDropped(t *testing.T) {
	s := newTestSession(t, &scriptedLLM{}, NewToolSet())
	s.Close()

	// Must not panic on the closed channel.
	s.emit(&AgentReplyEvent{Text: "late"})
}
