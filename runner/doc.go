// Package runner implements the orchestration loop at the heart of
// AgentSwarm.
//
// A Runner drives one conversation turn by turn: it resolves the active
// agent's instructions, requests a completion from the configured model,
// executes any tool calls the model asked for, applies handoffs and context
// variable updates, and repeats until the model answers without tool calls
// or the turn budget runs out. The Runner itself is stateless between runs;
// everything a run produces is returned in the RunResult.
//
// Two entry points share the same loop: Run blocks until the run terminates,
// RunAndStream additionally forwards partial model output and completed
// messages as StreamEvents while the loop progresses. Streaming never
// changes orchestration decisions, only delivery.
package runner
