// Package model defines the thin adapter boundary between the orchestration
// loop and remote completion services. A Model receives a normalized Request
// (instructions, history, tool schemas, model id) and answers with a channel
// of Response values: zero or more partial chunks followed by exactly one
// final response. The loop inspects only the final response, so streaming
// never changes decision logic, only how the assistant message is assembled.
//
// Provider adapters live in subpackages (model/openai, model/anthropic);
// MockModel offers a scripted in-memory implementation for tests and offline
// examples.
package model
