package agent

import (
	"context"
	"encoding/json"
)

// Message roles as sent to the hosted model.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of conversation history.
type ChatMessage struct {
	Role    string       // RoleUser or RoleModel
	Text    string       // Plain text content, may be empty on tool turns
	Calls   []ToolCall   // Function calls issued by the model
	Results []ToolResult // Function results supplied back to the model
}

// ToolCall is a structured function invocation issued by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult carries a tool's output back into the model's context.
type ToolResult struct {
	ID     string
	Name   string
	Output any
}

// Usage reports token consumption for one model invocation.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ChatRequest is a single request against the hosted model.
type ChatRequest struct {
	Model    string
	System   string
	Messages []ChatMessage
	Tools    []Tool
}

// ChatResponse is the model's reply: text, tool calls, or both.
type ChatResponse struct {
	Text  string
	Calls []ToolCall
	Usage Usage
}

// LLMClient is the interface to the hosted language model.
type LLMClient interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
