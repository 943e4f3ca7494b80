package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agentswarm/core"
)

// ScriptStep is one scripted completion returned by MockModel. Either a
// plain assistant reply (Content), a batch of tool call requests, or an
// error simulating a failed service call.
type ScriptStep struct {
	Content   string
	ToolCalls []core.ToolCall
	Err       error
}

// MockModel is a lightweight in-memory Model useful for tests and offline
// examples. It replays scripted steps in order and records every request it
// receives for later assertions. Safe for concurrent use.
type MockModel struct {
	mu       sync.Mutex
	info     Info
	script   []ScriptStep
	requests []Request
	// RepeatLast keeps replaying the final script step once the script is
	// exhausted (e.g. a model that always requests a tool call).
	RepeatLast bool
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(steps ...ScriptStep) *MockModel {
	return &MockModel{
		info:   Info{Name: "mock", Provider: "mock", SupportsTools: true},
		script: steps,
	}
}

// Enqueue appends further scripted steps.
func (m *MockModel) Enqueue(steps ...ScriptStep) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, steps...)
}

// Requests returns a copy of all requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of Generate invocations.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// next records the request and pops the next script step.
func (m *MockModel) next(req Request) (ScriptStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.script) == 0 {
		return ScriptStep{}, fmt.Errorf("mock model script exhausted after %d calls", len(m.requests)-1)
	}

	step := m.script[0]
	if len(m.script) > 1 || !m.RepeatLast {
		m.script = m.script[1:]
	}
	return step, nil
}

// Generate implements Model; in stream mode it emits per-rune partial chunks
// before the final response.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		step, err := m.next(req)
		if err != nil {
			errCh <- err
			return
		}
		if step.Err != nil {
			errCh <- step.Err
			return
		}

		if req.Stream {
			for _, r := range step.Content {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{
					Partial: true,
					Message: core.Message{Role: core.RoleAssistant, Content: string(r)},
				}:
				}
			}
		}

		finishReason := "stop"
		if len(step.ToolCalls) > 0 {
			finishReason = "tool_calls"
		}

		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- Response{
			Message: core.Message{
				Role:      core.RoleAssistant,
				Content:   step.Content,
				ToolCalls: step.ToolCalls,
			},
			FinishReason: finishReason,
		}:
		}
	}()

	return respCh, errCh
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
