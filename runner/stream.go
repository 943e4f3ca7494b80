package runner

import (
	"github.com/hupe1980/agentswarm/core"
)

// StreamEventType discriminates the events emitted by RunAndStream.
type StreamEventType string

const (
	// StreamEventDelta carries an incremental fragment of the assistant
	// message currently being generated (text or in-progress tool calls).
	StreamEventDelta StreamEventType = "delta"
	// StreamEventMessage carries a message that was appended to the history
	// (the assembled assistant message or a tool result message).
	StreamEventMessage StreamEventType = "message"
	// StreamEventResult is the final event of a successful run.
	StreamEventResult StreamEventType = "result"
)

// StreamEvent is one item of the RunAndStream event stream. Exactly one of
// Delta, Message or Result is populated, according to Type.
type StreamEvent struct {
	Type StreamEventType

	// Delta is the partial assistant fragment for StreamEventDelta events.
	Delta core.Message

	// Message is the completed history entry for StreamEventMessage events.
	Message core.Message

	// Result is the run outcome for the terminal StreamEventResult event.
	Result *core.RunResult
}
