package core

// Default values applied by NewAgent when not overridden.
const (
	DefaultModel       = "gpt-4o"
	DefaultInstruction = "You are a helpful agent."
)

// ToolChoice values understood by provider adapters. Any other non-empty
// value is interpreted as the name of a tool the model is forced to call.
const (
	ToolChoiceAuto     = "auto"
	ToolChoiceNone     = "none"
	ToolChoiceRequired = "required"
)

// AgentOptions configures construction of an Agent.
type AgentOptions struct {
	// Model is the identifier requested from the completion service.
	Model string
	// Instruction is the system prompt source (static text or provider).
	Instruction Instruction
	// Tools the agent may call, in declaration order.
	Tools []Tool
	// ToolChoice optionally forces a specific tool or "auto"/"none"/"required".
	ToolChoice string
	// ParallelToolCalls permits the model to request several tool calls in
	// one turn. When false the executor runs only the first call of a turn.
	ParallelToolCalls bool
}

// Agent describes one conversational persona: a named bundle of instructions
// and callable tools. Agents are immutable value objects; a run never mutates
// an Agent, switching agents rebinds the runner's active reference.
type Agent struct {
	name              string
	model             string
	instruction       Instruction
	tools             []Tool
	toolChoice        string
	parallelToolCalls bool
}

// NewAgent constructs an Agent and validates its tool set. Schema problems
// (empty or duplicate tool names, malformed parameter schemas) surface here
// as *SchemaError, before any run starts.
func NewAgent(name string, optFns ...func(o *AgentOptions)) (*Agent, error) {
	opts := AgentOptions{
		Model:             DefaultModel,
		Instruction:       NewInstructionFromText(DefaultInstruction),
		ParallelToolCalls: true,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if name == "" {
		return nil, &SchemaError{Message: "agent name must not be empty"}
	}

	seen := make(map[string]struct{}, len(opts.Tools))
	for _, t := range opts.Tools {
		if t == nil {
			return nil, &SchemaError{Message: "nil tool registered on agent " + name}
		}
		if t.Name() == "" {
			return nil, &SchemaError{Message: "tool with empty name registered on agent " + name}
		}
		if _, dup := seen[t.Name()]; dup {
			return nil, &SchemaError{Tool: t.Name(), Message: "duplicate tool name"}
		}
		seen[t.Name()] = struct{}{}

		if err := validateSchema(t.Name(), t.Parameters()); err != nil {
			return nil, err
		}
	}

	tools := make([]Tool, len(opts.Tools))
	copy(tools, opts.Tools)

	return &Agent{
		name:              name,
		model:             opts.Model,
		instruction:       opts.Instruction,
		tools:             tools,
		toolChoice:        opts.ToolChoice,
		parallelToolCalls: opts.ParallelToolCalls,
	}, nil
}

// MustNewAgent is like NewAgent but panics on validation failure. Intended
// for package-level declarations in examples and tests.
func MustNewAgent(name string, optFns ...func(o *AgentOptions)) *Agent {
	a, err := NewAgent(name, optFns...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the agent's display identity used as transcript sender.
func (a *Agent) Name() string { return a.name }

// Model returns the model identifier requested for this agent.
func (a *Agent) Model() string { return a.model }

// Instruction returns the agent's instruction source.
func (a *Agent) Instruction() Instruction { return a.instruction }

// Tools returns the agent's tools in declaration order (copied slice).
func (a *Agent) Tools() []Tool {
	out := make([]Tool, len(a.tools))
	copy(out, a.tools)
	return out
}

// Tool resolves a tool by name.
func (a *Agent) Tool(name string) (Tool, bool) {
	for _, t := range a.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// ToolChoice returns the forced tool choice hint ("" means provider default).
func (a *Agent) ToolChoice() string { return a.toolChoice }

// ParallelToolCalls reports whether multiple tool calls per turn are allowed.
func (a *Agent) ParallelToolCalls() bool { return a.parallelToolCalls }

// ResolveInstructions produces the system prompt for the current context.
func (a *Agent) ResolveInstructions(vars ContextVars) (string, error) {
	return a.instruction.Resolve(vars)
}

// jsonSchemaTypes enumerates the type values accepted in parameter schemas.
var jsonSchemaTypes = map[string]struct{}{
	"string": {}, "integer": {}, "number": {}, "boolean": {},
	"array": {}, "object": {}, "null": {},
}

// validateSchema checks the minimal JSON schema shape required for a tool's
// parameter declaration.
func validateSchema(tool string, schema map[string]any) error {
	if schema == nil {
		return &SchemaError{Tool: tool, Message: "parameter schema must not be nil"}
	}
	if typ, _ := schema["type"].(string); typ != "object" {
		return &SchemaError{Tool: tool, Message: `parameter schema must declare "type": "object"`}
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return &SchemaError{Tool: tool, Message: `parameter schema must declare a "properties" object`}
	}
	for field, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			return &SchemaError{Tool: tool, Field: field, Message: "property schema must be an object"}
		}
		if rawType, present := prop["type"]; present {
			typ, ok := rawType.(string)
			if !ok {
				return &SchemaError{Tool: tool, Field: field, Message: "property type must be a string"}
			}
			if _, known := jsonSchemaTypes[typ]; !known {
				return &SchemaError{Tool: tool, Field: field, Message: "unsupported property type " + typ}
			}
		}
	}
	switch req := schema["required"].(type) {
	case nil:
	case []string:
		for _, field := range req {
			if _, declared := props[field]; !declared {
				return &SchemaError{Tool: tool, Field: field, Message: "required field is not declared in properties"}
			}
		}
	case []any:
		for _, rawField := range req {
			field, ok := rawField.(string)
			if !ok {
				return &SchemaError{Tool: tool, Message: "required entries must be strings"}
			}
			if _, declared := props[field]; !declared {
				return &SchemaError{Tool: tool, Field: field, Message: "required field is not declared in properties"}
			}
		}
	default:
		return &SchemaError{Tool: tool, Message: `"required" must be an array of field names`}
	}
	return nil
}
