package runner

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/agentswarm/core"
)

// executionOutcome collects the side effects of one tool-call batch: the
// tool result messages in call order, the handoff target (chosen by the
// runner's HandoffPolicy) and the accumulated context variable updates.
type executionOutcome struct {
	messages  []core.Message
	nextAgent *core.Agent
	varsDelta core.ContextVars
}

// executeToolCalls runs the tool calls requested by one assistant turn,
// sequentially and in request order. Every call receives exactly one tool
// result message, so the history stays well-formed for the next completion.
// Tool failures never abort the run; they are written into the result
// message so the model can self-correct.
//
// When the active agent disables parallel tool calls, only the first call is
// executed; the remainder receive a skip notice instead of a result.
func (r *Runner) executeToolCalls(
	ctx context.Context,
	active *core.Agent,
	calls []core.ToolCall,
	vars core.ContextVars,
) executionOutcome {
	outcome := executionOutcome{varsDelta: core.NewContextVars()}

	sequentialOnly := !active.ParallelToolCalls()

	for i, call := range calls {
		name := call.Function.Name

		if sequentialOnly && i > 0 {
			r.logger.Warn("tool.call.skipped",
				"tool", name,
				"tool_call_id", call.ID,
				"agent", active.Name(),
			)
			outcome.messages = append(outcome.messages, core.NewToolMessage(
				call.ID,
				name,
				fmt.Sprintf("Error: Tool call %s was skipped: agent %s executes tool calls sequentially, one per turn.", name, active.Name()),
			))
			continue
		}

		outcome.messages = append(outcome.messages, r.executeToolCall(ctx, active, call, vars, &outcome))
	}

	return outcome
}

// executeToolCall runs a single tool call and returns its result message,
// recording handoffs and context updates on the outcome.
func (r *Runner) executeToolCall(
	ctx context.Context,
	active *core.Agent,
	call core.ToolCall,
	vars core.ContextVars,
	outcome *executionOutcome,
) core.Message {
	name := call.Function.Name

	ctx, span := r.tracer.Start(ctx, "Runner.Tool.Call", trace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.call_id", call.ID),
	))
	defer span.End()

	tool, ok := active.Tool(name)
	if !ok {
		r.logger.Warn("tool.call.missing", "tool", name, "agent", active.Name())
		span.SetAttributes(attribute.Bool("tool.found", false))
		return core.NewToolMessage(call.ID, name, fmt.Sprintf("Error: Tool %s not found.", name))
	}

	args, err := parseArguments(call.Function.Arguments)
	if err != nil {
		r.logger.Warn("tool.call.bad_arguments", "tool", name, "error", err)
		span.RecordError(err)
		return core.NewToolMessage(
			call.ID,
			name,
			fmt.Sprintf("Error: invalid arguments for tool %s: %v", name, err),
		)
	}

	toolCtx := core.NewToolContext(ctx, vars, call.ID, active.Name(), r.logger)

	value, err := safeCall(tool, toolCtx, args)
	if err != nil {
		r.logger.Warn("tool.call.error", "tool", name, "error", err)
		span.RecordError(err)
		return core.NewToolMessage(call.ID, name, "Error: "+err.Error())
	}

	content, next, delta := classifyResult(value)

	if next != nil {
		if r.handoffPolicy == FirstHandoffWins && outcome.nextAgent != nil {
			r.logger.Debug("tool.handoff.superseded", "ignored", next.Name(), "kept", outcome.nextAgent.Name())
		} else {
			outcome.nextAgent = next
		}
		span.SetAttributes(attribute.String("tool.handoff_to", next.Name()))
	}
	if len(delta) > 0 {
		outcome.varsDelta.Merge(delta)
	}

	return core.NewToolMessage(call.ID, name, content)
}

// parseArguments decodes the model-supplied JSON argument object. An empty
// argument string means no arguments.
func parseArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// safeCall invokes the tool, converting panics into errors so a misbehaving
// tool cannot take down the run.
func safeCall(tool core.Tool, toolCtx *core.ToolContext, args map[string]any) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = fmt.Errorf("tool %s panicked: %v", tool.Name(), rec)
		}
	}()

	return tool.Call(toolCtx, args)
}

// classifyResult maps a tool return value onto the three things a tool can
// produce: result content, a handoff target and context variable updates.
//
//   - core.Result (or *core.Result) passes through unchanged.
//   - *core.Agent signals a handoff; the result content is a small JSON
//     acknowledgment naming the new active agent.
//   - anything else is stringified into the result content.
func classifyResult(value any) (content string, next *core.Agent, delta core.ContextVars) {
	switch v := value.(type) {
	case core.Result:
		return v.Value, v.Agent, v.ContextVars
	case *core.Result:
		if v == nil {
			return "", nil, nil
		}
		return v.Value, v.Agent, v.ContextVars
	case *core.Agent:
		if v == nil {
			return "", nil, nil
		}
		ack, _ := json.Marshal(map[string]string{"assistant": v.Name()})
		return string(ack), v, nil
	default:
		return stringify(value), nil, nil
	}
}

// stringify renders an arbitrary tool return value as message content.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", value)
	}
}
