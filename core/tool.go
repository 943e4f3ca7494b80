package core

import (
	"context"

	"github.com/hupe1980/agentswarm/logging"
)

// Tool defines the interface for extending agents with callable capabilities.
//
// A tool exposes a name, a human readable description and a JSON schema
// describing its arguments; all three are forwarded to the model service as a
// function declaration. Call receives the decoded arguments plus a
// ToolContext granting access to the run's context variables.
//
// Implementations should fail construction (not invocation) on malformed
// schemas and return plain errors for business-logic failures; the executor
// converts such errors into tool result messages so the model can
// self-correct.
type Tool interface {
	// Name returns the unique identifier for this tool
	// (snake_case recommended).
	Name() string

	// Description returns a human-readable description provided to the model
	// so it understands when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema object describing the expected
	// arguments. The schema must have "type": "object" and a "properties"
	// map; it is validated once at agent construction.
	Parameters() map[string]any

	// Call executes the tool. Arguments have been decoded from the model
	// supplied JSON. The return value is classified by the executor: a
	// plain value, an *Agent (handoff) or a Result.
	Call(toolCtx *ToolContext, args map[string]any) (any, error)
}

// ToolContext is the constrained surface handed to tool implementations for
// one invocation. It injects the run's live context variables (never exposed
// in the model-facing schema), the ambient context and correlation metadata.
//
// Tools may read Vars directly; updates should be returned via Result so the
// runner merges them deterministically in call order.
type ToolContext struct {
	ctx        context.Context
	vars       ContextVars
	toolCallID string
	agentName  string
	logger     logging.Logger
}

// NewToolContext constructs a tool context bound to one tool call.
func NewToolContext(
	ctx context.Context,
	vars ContextVars,
	toolCallID, agentName string,
	logger logging.Logger,
) *ToolContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if vars == nil {
		vars = NewContextVars()
	}
	return &ToolContext{
		ctx:        ctx,
		vars:       vars,
		toolCallID: toolCallID,
		agentName:  agentName,
		logger:     logger,
	}
}

// Context returns the ambient context of the run; tools doing blocking work
// must respect its cancellation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// Vars returns the live context variables of the run.
func (tc *ToolContext) Vars() ContextVars { return tc.vars }

// GetVar returns a single context variable.
func (tc *ToolContext) GetVar(key string) (any, bool) { return tc.vars.Get(key) }

// ToolCallID returns the id of the originating tool call request.
func (tc *ToolContext) ToolCallID() string { return tc.toolCallID }

// AgentName returns the name of the agent the tool is registered on.
func (tc *ToolContext) AgentName() string { return tc.agentName }

// Logger returns the logger bound to this invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }
