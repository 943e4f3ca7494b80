package core

import "github.com/hupe1980/agentswarm/internal/util"

// InstructionProvider supplies dynamic instruction text at runtime derived
// from the current context variables. Providers must be deterministic and
// side-effect free; a returned error aborts the run.
type InstructionProvider interface {
	Instruction(vars ContextVars) (string, error)
}

// InstructionFunc is a functional adapter to allow ordinary functions to be
// used as InstructionProviders.
type InstructionFunc func(vars ContextVars) (string, error)

// Instruction implements InstructionProvider.
func (f InstructionFunc) Instruction(vars ContextVars) (string, error) { return f(vars) }

// Instruction represents either a static instruction string or a dynamic
// provider. This mirrors a union of string | provider in a Go-idiomatic way.
// Static text may contain Go template markers which are rendered against the
// context variables at resolution time.
type Instruction struct {
	text     string
	provider InstructionProvider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p InstructionProvider) Instruction {
	return Instruction{provider: p}
}

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(vars ContextVars) (string, error)) Instruction {
	return Instruction{provider: InstructionFunc(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
// Static text is passed through the template renderer; text without template
// markers is returned verbatim.
func (i Instruction) Resolve(vars ContextVars) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(vars)
	}
	return util.RenderTemplate(i.text, vars)
}
