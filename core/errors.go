package core

import "fmt"

// SchemaError reports an invalid tool declaration. It is raised at agent
// construction time, before any run starts, and is fatal.
type SchemaError struct {
	Tool    string // offending tool name, if known
	Field   string // offending schema field, if known
	Message string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Tool != "" && e.Field != "":
		return fmt.Sprintf("schema error in tool %s, field %s: %s", e.Tool, e.Field, e.Message)
	case e.Tool != "":
		return fmt.Sprintf("schema error in tool %s: %s", e.Tool, e.Message)
	default:
		return fmt.Sprintf("schema error: %s", e.Message)
	}
}

// InstructionError reports a failure while resolving an agent's dynamic
// instructions. Instructions are assumed deterministic and side-effect free,
// so the error is fatal to the run and never retried.
type InstructionError struct {
	Agent string
	Err   error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("failed to resolve instructions for agent %s: %v", e.Agent, e.Err)
}

func (e *InstructionError) Unwrap() error { return e.Err }

// NewInstructionError wraps err as an InstructionError for the named agent.
func NewInstructionError(agent string, err error) *InstructionError {
	return &InstructionError{Agent: agent, Err: err}
}

// CompletionError reports a failed model service request. It is fatal to the
// current run and deliberately not retried here: transient-vs-fatal
// distinction requires caller context (rate limits, budgets) that plays no
// role in the core loop.
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("completion request failed for model %s: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// NewCompletionError wraps err as a CompletionError for the given model id.
func NewCompletionError(model string, err error) *CompletionError {
	return &CompletionError{Model: model, Err: err}
}
