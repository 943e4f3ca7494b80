package core

import "maps"

// ContextVars is the shared mutable key/value state threaded through one run.
// It is passed to instruction providers and to every tool invocation; tools
// return partial updates that the runner merges back (shallow override,
// last write wins). A ContextVars value is owned by exactly one run and
// requires no locking.
type ContextVars map[string]any

// NewContextVars returns an empty, non-nil ContextVars.
func NewContextVars() ContextVars { return ContextVars{} }

// Get returns the value stored under key.
func (cv ContextVars) Get(key string) (any, bool) {
	v, ok := cv[key]
	return v, ok
}

// GetString returns the value under key if it is a string, else "".
func (cv ContextVars) GetString(key string) string {
	if v, ok := cv[key].(string); ok {
		return v
	}
	return ""
}

// Set stores a value under key.
func (cv ContextVars) Set(key string, value any) { cv[key] = value }

// Merge applies all pairs from delta, overriding existing keys.
func (cv ContextVars) Merge(delta ContextVars) {
	maps.Copy(cv, delta)
}

// Clone returns a shallow copy. Values are shared; the map itself is
// independent so merges on the copy never touch the original.
func (cv ContextVars) Clone() ContextVars {
	out := make(ContextVars, len(cv))
	maps.Copy(out, cv)
	return out
}
