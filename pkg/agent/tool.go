package agent

import (
	"context"
	"encoding/json"
	"reflect"
)

// Tool is a function the hosted model may call mid-conversation.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	InputSchema *JSONSchema `json:"input_schema,omitempty"`
}

// ToolHandler executes a tool call. The returned value is marshalled to JSON
// and fed back into the model's context.
type ToolHandler func(ctx context.Context, input json.RawMessage) (any, error)

// ToolWithHandler pairs a tool definition with its handler.
type ToolWithHandler struct {
	Tool
	Handler ToolHandler
}

// MakeTool creates a ToolWithHandler from a typed function. The input schema
// is generated from T's struct tags.
//
// Example:
//
//	tool := agent.MakeTool("add_item_to_cart", "Add a catalog item to the cart",
//	    func(ctx context.Context, input struct {
//	        ItemName string `json:"item_name" desc:"Name or rough description of the item"`
//	        Quantity int    `json:"quantity,omitempty" desc:"How many units to add"`
//	    }) (any, error) {
//	        ...
//	    },
//	)
func MakeTool[T any, R any](name, description string, fn func(context.Context, T) (R, error)) ToolWithHandler {
	var zero T
	schema := GenerateJSONSchema(reflect.TypeOf(zero))

	handler := func(ctx context.Context, rawInput json.RawMessage) (any, error) {
		var input T
		if len(rawInput) > 0 {
			if err := json.Unmarshal(rawInput, &input); err != nil {
				return nil, err
			}
		}
		return fn(ctx, input)
	}

	return ToolWithHandler{
		Tool: Tool{
			Name:        name,
			Description: description,
			InputSchema: schema,
		},
		Handler: handler,
	}
}

// ToolSet is a collection of tools with their handlers.
type ToolSet struct {
	tools    []Tool
	handlers map[string]ToolHandler
}

// NewToolSet creates a tool set from the given tools.
func NewToolSet(tools ...ToolWithHandler) *ToolSet {
	ts := &ToolSet{
		handlers: make(map[string]ToolHandler),
	}
	for _, t := range tools {
		ts.Add(t)
	}
	return ts
}

// Add adds a tool with its handler to the set.
func (ts *ToolSet) Add(tool ToolWithHandler) *ToolSet {
	ts.tools = append(ts.tools, tool.Tool)
	if tool.Handler != nil && tool.Name != "" {
		ts.handlers[tool.Name] = tool.Handler
	}
	return ts
}

// Tools returns all tool definitions.
func (ts *ToolSet) Tools() []Tool {
	if ts == nil {
		return nil
	}
	return ts.tools
}

// Handler returns the handler for a specific tool.
func (ts *ToolSet) Handler(name string) (ToolHandler, bool) {
	if ts == nil {
		return nil, false
	}
	h, ok := ts.handlers[name]
	return h, ok
}
