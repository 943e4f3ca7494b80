// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (APIs, computations, side effects) with
// schema validated arguments and consistent error handling. It provides the
// FunctionTool adapter for plain Go functions and the handoff tool used to
// transfer control between agents.
package tool

import (
	"fmt"

	"github.com/hupe1980/agentswarm/internal/util"
)

// ValidationError represents parameter validation errors with detailed
// information.
type ValidationError = util.ValidationError

// Error codes used by FunctionTool when wrapping failures.
const (
	// CodeValidationError marks a schema / argument mismatch.
	CodeValidationError = "VALIDATION_ERROR"
	// CodeExecutionError marks a failure of the wrapped function.
	CodeExecutionError = "EXECUTION_ERROR"
)

// ToolError represents errors that occur during tool execution. The runner
// converts these into tool result messages rather than aborting the run, so
// the model can self-correct.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
