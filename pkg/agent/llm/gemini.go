// Package llm adapts hosted language models to the agent runtime.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/voicelab-go/agent-days/pkg/agent"
)

// Gemini implements agent.LLMClient over the Gemini API.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini client with the given API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Chat sends one request against the hosted model and maps the reply back
// into runtime types.
func (g *Gemini) Chat(ctx context.Context, req *agent.ChatRequest) (*agent.ChatResponse, error) {
	contents, err := toContents(req.Messages)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{
			FunctionDeclarations: toFunctionDeclarations(req.Tools),
		}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	out := &agent.ChatResponse{}
	if resp.UsageMetadata != nil {
		out.Usage = agent.Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.Text += part.Text
		}
		if part.FunctionCall != nil {
			input, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("marshal function call args: %w", err)
			}
			out.Calls = append(out.Calls, agent.ToolCall{
				ID:    part.FunctionCall.ID,
				Name:  part.FunctionCall.Name,
				Input: input,
			})
		}
	}
	return out, nil
}

func toContents(messages []agent.ChatMessage) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		content := &genai.Content{Role: msg.Role}

		if msg.Text != "" {
			content.Parts = append(content.Parts, &genai.Part{Text: msg.Text})
		}
		for _, call := range msg.Calls {
			var args map[string]any
			if len(call.Input) > 0 {
				if err := json.Unmarshal(call.Input, &args); err != nil {
					return nil, fmt.Errorf("unmarshal tool input for %s: %w", call.Name, err)
				}
			}
			content.Parts = append(content.Parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{ID: call.ID, Name: call.Name, Args: args},
			})
		}
		for _, result := range msg.Results {
			response, err := toResponseMap(result.Output)
			if err != nil {
				return nil, fmt.Errorf("marshal tool output for %s: %w", result.Name, err)
			}
			content.Parts = append(content.Parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{ID: result.ID, Name: result.Name, Response: response},
			})
		}

		if len(content.Parts) > 0 {
			contents = append(contents, content)
		}
	}
	return contents, nil
}

// toResponseMap renders a tool result as the JSON object shape the API
// requires; non-object results are wrapped.
func toResponseMap(output any) (map[string]any, error) {
	data, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return map[string]any{"output": v}, nil
	}
	return m, nil
}

func toFunctionDeclarations(tools []agent.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGenaiSchema(tool.InputSchema),
		})
	}
	return decls
}

func toGenaiSchema(s *agent.JSONSchema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        toGenaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			p := prop
			out.Properties[name] = toGenaiSchema(&p)
		}
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	return out
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
