package agentswarm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentswarm/config"
	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/model"
	"github.com/hupe1980/agentswarm/runner"
)

func TestSwarm_RunWithMockModel(t *testing.T) {
	m := model.NewMockModel(model.ScriptStep{Content: "Hello!"})

	swarm := New(func(o *Options) {
		o.Model = m
	})

	agent := core.MustNewAgent("Assistant")
	result, err := swarm.Run(context.Background(), agent, []core.Message{
		core.NewUserMessage("hi"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, core.FinishReasonDone, result.FinishReason)
	assert.Equal(t, "Hello!", result.LastMessage().Content)
}

func TestSwarm_RunAndStream(t *testing.T) {
	m := model.NewMockModel(model.ScriptStep{Content: "streamed"})

	swarm := New(func(o *Options) {
		o.Model = m
	})

	agent := core.MustNewAgent("Assistant")
	events, errCh := swarm.RunAndStream(context.Background(), agent, []core.Message{
		core.NewUserMessage("hi"),
	}, nil)

	var sawResult bool
	for ev := range events {
		if ev.Type == runner.StreamEventResult {
			sawResult = true
			assert.Equal(t, "streamed", ev.Result.LastMessage().Content)
		}
	}
	require.NoError(t, <-errCh)
	assert.True(t, sawResult)
}

func TestSwarm_MaxTurnsDefaultFromOptions(t *testing.T) {
	m := model.NewMockModel(model.ScriptStep{ToolCalls: []core.ToolCall{{
		ID:       "call_1",
		Type:     "function",
		Function: core.ToolCallFunction{Name: "missing", Arguments: "{}"},
	}}})
	m.RepeatLast = true

	swarm := New(func(o *Options) {
		o.Model = m
		o.MaxTurns = 2
	})

	agent := core.MustNewAgent("Looper")
	result, err := swarm.Run(context.Background(), agent, []core.Message{
		core.NewUserMessage("go"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, core.FinishReasonMaxTurns, result.FinishReason)
	assert.Equal(t, 2, result.Turns)
}

func TestFromConfig_MockProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Provider = "mock"
	cfg.Run.MaxTurns = 7
	cfg.Run.Stream = true

	swarm, err := FromConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, swarm)
	assert.True(t, swarm.Streaming())
}

func TestFromConfig_RejectsInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Provider = "carrier-pigeon"

	_, err := FromConfig(cfg)
	assert.Error(t, err)
}
