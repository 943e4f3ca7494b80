// Package core contains the shared data model of AgentSwarm: agents,
// conversation messages, tool call descriptors, the tool interface and the
// context variables threaded through a run. Higher level packages (model,
// tool, runner) depend on core; core depends only on logging and small
// internal helpers so the type graph stays acyclic.
package core
