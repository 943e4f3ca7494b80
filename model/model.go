package model

import (
	"context"

	"github.com/hupe1980/agentswarm/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by the runner.
type Request struct {
	// Instructions is the resolved system prompt, sent as a system message
	// prefix ahead of the history.
	Instructions string `json:"instructions"`
	// Messages is the conversation history. Adapters must strip transcript
	// metadata (Sender, ToolName) before forwarding.
	Messages []core.Message `json:"messages"`
	// Tools lists the active agent's function declarations.
	Tools []ToolDefinition `json:"tools,omitempty"`
	// ToolChoice optionally forces a tool ("auto", "none", "required" or a
	// tool name). Empty means provider default.
	ToolChoice string `json:"tool_choice,omitempty"`
	// ParallelToolCalls advertises whether the model may request several
	// tool calls in one turn.
	ParallelToolCalls bool `json:"parallel_tool_calls,omitempty"`
	// Model overrides the adapter's default model identifier.
	Model string `json:"model,omitempty"`
	// Stream requests incremental partial responses.
	Stream bool `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a model.
//
// Partial responses carry incremental deltas in Message (text in Content,
// in-progress tool calls in ToolCalls). The final response (Partial=false)
// carries the fully assembled assistant message.
type Response struct {
	Partial      bool         `json:"partial"`
	Message      core.Message `json:"message"`
	FinishReason string       `json:"finish_reason,omitempty"` // "stop", "length", "tool_calls", ...
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", ...
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation.
//
// Generate returns a response channel and an error channel; both are closed
// when the call finishes. The contract is: zero or more Partial responses,
// then exactly one final response, or an error on the error channel. Errors
// are not retried here; retry policy belongs to the caller.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// DefinitionsFromAgent converts an agent's tool set into wire-ready function
// declarations, preserving declaration order. Context variables are injected
// through the tool context at invocation time and never appear in a schema.
func DefinitionsFromAgent(a *core.Agent) []ToolDefinition {
	tools := a.Tools()
	if len(tools) == 0 {
		return nil
	}
	defs := make([]ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = ToolDefinition{
			Type: "function",
			Function: FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		}
	}
	return defs
}
