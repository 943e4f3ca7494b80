package tool

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hupe1980/agentswarm/core"
)

// HandoffOptions configure the generated handoff tool.
type HandoffOptions struct {
	// Name overrides the generated tool name (default "transfer_to_<agent>").
	Name string
	// Description overrides the generated tool description.
	Description string
}

// NewHandoffTool returns a tool that transfers control of the conversation to
// the target agent. Calling it produces a handoff: the runner rebinds its
// active agent to target and records an acknowledgment tool message.
//
// The generated name is "transfer_to_" plus the snake_cased agent name, e.g.
// "transfer_to_billing" for an agent named "Billing".
func NewHandoffTool(target *core.Agent, optFns ...func(o *HandoffOptions)) *FunctionTool {
	opts := HandoffOptions{
		Name: "transfer_to_" + snakeCase(target.Name()),
		Description: fmt.Sprintf(
			"Transfer the conversation to the %s agent. Use when that agent is better suited to handle the request.",
			target.Name(),
		),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return NewFunctionTool(
		opts.Name,
		opts.Description,
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *core.ToolContext, _ map[string]any) (any, error) {
			toolCtx.Logger().Info(
				"tool.handoff",
				"from", toolCtx.AgentName(),
				"to", target.Name(),
			)
			return target, nil
		},
	)
}

// snakeCase converts an agent display name ("BillingAgent", "Sales Rep") to
// a snake_case tool name fragment.
func snakeCase(s string) string {
	var b strings.Builder
	var prevLower bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		case r == ' ' || r == '-':
			b.WriteByte('_')
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}
