// Package agentswarm provides a high-level façade over the orchestration
// runner and model adapters for building stateless multi-agent systems.
// Most applications interact with this package by:
//  1. Creating a Swarm via New() (optionally overriding the model backend
//     and logger)
//  2. Declaring agents with core.NewAgent, equipping them with function and
//     handoff tools
//  3. Driving conversations synchronously (Run) or with incremental events
//     (RunAndStream)
//
// The façade delegates orchestration to runner.Runner while keeping setup
// ergonomics concise. The Swarm holds no conversation state; the caller owns
// the history and feeds the RunResult of one call into the next.
package agentswarm

import (
	"context"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/agentswarm/config"
	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/model"
	"github.com/hupe1980/agentswarm/model/anthropic"
	"github.com/hupe1980/agentswarm/model/openai"
	"github.com/hupe1980/agentswarm/runner"
)

// Options configures the Swarm instance.
type Options struct {
	// Model is the completion backend shared by all runs. Defaults to the
	// OpenAI adapter with its environment-based client.
	Model model.Model

	// Logger receives structured orchestration events (defaults to NoOp).
	Logger logging.Logger

	// MaxTurns is the default per-run turn budget. Zero means unbounded.
	MaxTurns int

	// ExecuteTools controls whether requested tool calls are executed.
	ExecuteTools bool

	// Stream marks incremental event delivery as the preferred run mode.
	// The Swarm does not switch modes itself; callers consult Streaming()
	// to choose between Run and RunAndStream.
	Stream bool
}

// Swarm is the high-level façade aggregating the runner and model backend.
type Swarm struct {
	opts   Options
	runner *runner.Runner
}

// New creates a Swarm with optional overrides.
func New(optFns ...func(o *Options)) *Swarm {
	opts := Options{
		Logger:       logging.NoOpLogger{},
		ExecuteTools: true,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Model == nil {
		opts.Model = openai.NewModel()
	}

	r := runner.New(opts.Model, func(o *runner.Options) {
		o.Logger = opts.Logger
		o.MaxTurns = opts.MaxTurns
		o.ExecuteTools = opts.ExecuteTools
	})

	return &Swarm{opts: opts, runner: r}
}

// FromConfig creates a Swarm wired according to a loaded configuration:
// logger format and level, model provider and parameters, and run defaults.
func FromConfig(cfg *config.Config, optFns ...func(o *Options)) (*Swarm, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	m, err := modelFromConfig(cfg.Model)
	if err != nil {
		return nil, err
	}

	return New(append([]func(o *Options){func(o *Options) {
		o.Model = m
		o.Logger = logger
		o.MaxTurns = cfg.Run.MaxTurns
		o.ExecuteTools = cfg.Run.ExecuteTools
		o.Stream = cfg.Run.Stream
	}}, optFns...)...), nil
}

func modelFromConfig(mc config.ModelConfig) (model.Model, error) {
	switch mc.Provider {
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if mc.Name != "" {
				o.Model = anthropicsdk.Model(mc.Name)
			}
			if mc.APIKey != "" {
				o.APIKey = mc.APIKey
			}
			if mc.Temperature > 0 {
				o.Temperature = mc.Temperature
			}
			if mc.MaxTokens > 0 {
				o.MaxTokens = mc.MaxTokens
			}
		}), nil
	case "mock":
		return model.NewMockModel(), nil
	default: // openai
		var clientOpts []option.RequestOption
		if mc.APIKey != "" {
			clientOpts = append(clientOpts, option.WithAPIKey(mc.APIKey))
		}
		if mc.BaseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(mc.BaseURL))
		}
		client := openaisdk.NewClient(clientOpts...)
		return openai.NewModelFromClient(&client, func(o *openai.Options) {
			if mc.Name != "" {
				o.Model = mc.Name
			}
			if mc.Temperature > 0 {
				o.Temperature = mc.Temperature
			}
			if mc.MaxTokens > 0 {
				o.MaxCompletionTokens = mc.MaxTokens
			}
		}), nil
	}
}

// Run drives one conversation to completion and returns the RunResult. The
// caller owns messages and vars; they are copied before use.
func (s *Swarm) Run(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVars,
	optFns ...func(o *runner.RunOptions),
) (*core.RunResult, error) {
	return s.runner.Run(ctx, agent, messages, vars, optFns...)
}

// RunAndStream drives one conversation while forwarding partial output and
// completed messages as StreamEvents. See runner.RunAndStream for the event
// contract.
func (s *Swarm) RunAndStream(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVars,
	optFns ...func(o *runner.RunOptions),
) (<-chan runner.StreamEvent, <-chan error) {
	return s.runner.RunAndStream(ctx, agent, messages, vars, optFns...)
}

// Logger exposes the configured logger, so applications can share it.
func (s *Swarm) Logger() logging.Logger { return s.opts.Logger }

// Streaming reports whether the configuration asked for incremental event
// delivery, so callers can pick Run or RunAndStream accordingly.
func (s *Swarm) Streaming() bool { return s.opts.Stream }
