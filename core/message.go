package core

// Conversation roles used in Message.Role.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a model-issued request to invoke a named tool with JSON
// encoded arguments. The ID correlates the request with its later tool
// result message.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"` // "function"
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the target tool and carries the raw argument payload
// exactly as produced by the model (possibly malformed JSON).
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is a single entry of the append-only conversation history.
//
// Sender and ToolName are transcript metadata: they identify the agent that
// produced an assistant message and the tool that produced a tool result.
// Provider adapters must strip both before sending history to a model service.
//
// Invariant: every ToolCall ID appearing in an assistant message has exactly
// one corresponding tool result message (matching ToolCallID) later in the
// history, before the next assistant message is requested.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	Sender     string     `json:"sender,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message attributed to the named
// agent, optionally carrying tool call requests.
func NewAssistantMessage(sender, content string, toolCalls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Sender: sender, Content: content, ToolCalls: toolCalls}
}

// NewToolMessage creates a tool result message answering the tool call with
// the given ID.
func NewToolMessage(toolCallID, toolName, content string) Message {
	return Message{Role: RoleTool, ToolCallID: toolCallID, ToolName: toolName, Content: content}
}

// HasToolCalls reports whether the message requests any tool invocations.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// Clone returns a copy of the message with an independent ToolCalls slice.
func (m Message) Clone() Message {
	c := m
	if len(m.ToolCalls) > 0 {
		c.ToolCalls = make([]ToolCall, len(m.ToolCalls))
		copy(c.ToolCalls, m.ToolCalls)
	}
	return c
}

// CloneHistory deep-copies a message history so a run never aliases
// caller-owned state.
func CloneHistory(history []Message) []Message {
	out := make([]Message, len(history))
	for i, m := range history {
		out[i] = m.Clone()
	}
	return out
}
