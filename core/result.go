package core

// Result encapsulates the possible return values of a tool invocation in one
// structured shape: a content string for the tool result message, an optional
// handoff agent and an optional context variable update. Tools may return a
// Result directly; plain values and *Agent returns are converted to one at
// the tool boundary by the executor.
type Result struct {
	// Value becomes the content of the tool result message.
	Value string
	// Agent, when set, signals a handoff to this agent.
	Agent *Agent
	// ContextVars is merged into the run's context store (shallow override).
	ContextVars ContextVars
}

// FinishReason describes why a run terminated.
type FinishReason string

const (
	// FinishReasonDone: the model produced a response without tool calls.
	FinishReasonDone FinishReason = "done"
	// FinishReasonMaxTurns: the configured turn budget was exhausted while
	// the conversation still wanted another turn. Not an error; the
	// RunResult reflects an incomplete conversation.
	FinishReasonMaxTurns FinishReason = "max_turns"
	// FinishReasonToolCallsPending: tool execution was disabled and the
	// model requested tool calls; they are returned unexecuted on the last
	// assistant message for caller inspection.
	FinishReasonToolCallsPending FinishReason = "tool_calls_pending"
	// FinishReasonError: the run aborted on a fatal error. The RunResult
	// accompanying the error carries the history, agent and context as they
	// stood, so callers can diagnose or resume.
	FinishReasonError FinishReason = "error"
)

// RunResult is the immutable outcome of one run: the full message history
// (input history plus everything appended), the final context variables and
// the agent that was active when the run terminated.
type RunResult struct {
	// RunID uniquely identifies the run for correlation with logs/traces.
	RunID string
	// Messages is the complete history, a superset of the input history.
	Messages []Message
	// Agent is the final active agent (after any handoffs).
	Agent *Agent
	// ContextVars is the final context state.
	ContextVars ContextVars
	// FinishReason records the terminal state of the loop.
	FinishReason FinishReason
	// Turns counts completed model request/response cycles.
	Turns int
}

// LastMessage returns the most recent history entry, or a zero Message when
// the history is empty.
func (r *RunResult) LastMessage() Message {
	if len(r.Messages) == 0 {
		return Message{}
	}
	return r.Messages[len(r.Messages)-1]
}

// NewMessages returns the portion of the history appended by the run, given
// the length of the caller supplied input history.
func (r *RunResult) NewMessages(inputLen int) []Message {
	if inputLen >= len(r.Messages) {
		return nil
	}
	return r.Messages[inputLen:]
}
