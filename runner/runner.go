package runner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/model"
)

const tracerName = "agentswarm/runner"

// HandoffPolicy decides which handoff takes effect when several tool calls
// in one turn each return an agent.
type HandoffPolicy int

const (
	// LastHandoffWins rebinds to the last handoff agent in call order. An
	// agent producing multiple handoffs in one turn supersedes its own
	// earlier intent. This is the default.
	LastHandoffWins HandoffPolicy = iota
	// FirstHandoffWins rebinds to the first handoff agent in call order and
	// ignores later ones.
	FirstHandoffWins
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Logger receives structured orchestration events.
	Logger logging.Logger
	// MaxTurns caps the number of model request/response cycles per run.
	// Zero or negative means unbounded.
	MaxTurns int
	// ExecuteTools controls whether requested tool calls are executed. When
	// false, a run stops at the first tool-call turn and returns the calls
	// unexecuted for caller inspection.
	ExecuteTools bool
	// HandoffPolicy resolves competing handoffs within one turn.
	HandoffPolicy HandoffPolicy
	// Tracer overrides the OpenTelemetry tracer used for run spans.
	Tracer trace.Tracer
	// EventBufferSize sets channel buffering for streamed events.
	EventBufferSize int
}

// RunOptions override per-run behavior. Unset fields inherit the Runner's
// configured defaults.
type RunOptions struct {
	// MaxTurns caps this run's turn budget. Zero or negative means unbounded.
	MaxTurns int
	// ModelOverride forces a model identifier for every completion in this
	// run, regardless of what the active agent declares.
	ModelOverride string
	// ExecuteTools controls tool execution for this run.
	ExecuteTools bool
}

// Runner drives the orchestration loop against a single model backend. It
// holds no per-conversation state; the same Runner may serve concurrent runs.
type Runner struct {
	model           model.Model
	logger          logging.Logger
	tracer          trace.Tracer
	maxTurns        int
	executeTools    bool
	handoffPolicy   HandoffPolicy
	eventBufferSize int
}

// New constructs a Runner with optional overrides.
func New(m model.Model, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger:          logging.NoOpLogger{},
		MaxTurns:        0,
		ExecuteTools:    true,
		EventBufferSize: 100,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Runner{
		model:           m,
		logger:          opts.Logger,
		tracer:          opts.Tracer,
		maxTurns:        opts.MaxTurns,
		executeTools:    opts.ExecuteTools,
		handoffPolicy:   opts.HandoffPolicy,
		eventBufferSize: opts.EventBufferSize,
	}
}

// Run executes the orchestration loop to completion and returns the final
// RunResult.
//
// The input history and context variables are deep-copied before the loop
// starts; callers keep ownership of their arguments. On a fatal error
// (instruction resolution or a failed completion) the returned RunResult is
// still populated with the history, agent and context as they stood, with
// FinishReasonError, so the caller can diagnose or resume.
func (r *Runner) Run(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVars,
	optFns ...func(o *RunOptions),
) (*core.RunResult, error) {
	return r.runLoop(ctx, agent, messages, vars, r.runOptions(optFns), false, nil)
}

// RunAndStream executes the orchestration loop while forwarding events as
// they happen: partial assistant fragments (StreamEventDelta), every message
// appended to the history (StreamEventMessage) and finally the run outcome
// (StreamEventResult). On a fatal error the error channel delivers exactly
// one error; the result event still carries the partial RunResult with
// FinishReasonError, matching what the blocking Run returns alongside its
// error. Both channels are closed when the run finishes.
func (r *Runner) RunAndStream(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVars,
	optFns ...func(o *RunOptions),
) (<-chan StreamEvent, <-chan error) {
	events := make(chan StreamEvent, r.eventBufferSize)
	errCh := make(chan error, 1)

	emit := func(ev StreamEvent) {
		select {
		case <-ctx.Done():
		case events <- ev:
		}
	}

	go func() {
		defer close(events)
		defer close(errCh)

		result, err := r.runLoop(ctx, agent, messages, vars, r.runOptions(optFns), true, emit)
		if result != nil {
			emit(StreamEvent{Type: StreamEventResult, Result: result})
		}
		if err != nil {
			errCh <- err
		}
	}()

	return events, errCh
}

func (r *Runner) runOptions(optFns []func(o *RunOptions)) RunOptions {
	opts := RunOptions{
		MaxTurns:     r.maxTurns,
		ExecuteTools: r.executeTools,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return opts
}

// runLoop is the shared core of Run and RunAndStream. The emit callback is
// nil for blocking runs.
func (r *Runner) runLoop(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVars,
	opts RunOptions,
	stream bool,
	emit func(StreamEvent),
) (*core.RunResult, error) {
	if agent == nil {
		return nil, fmt.Errorf("starting agent must not be nil")
	}

	runID := core.NewID()
	history := core.CloneHistory(messages)
	ctxVars := vars.Clone()
	active := agent
	turns := 0

	ctx, span := r.tracer.Start(ctx, "Runner.Run", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("agent.name", active.Name()),
	))
	defer span.End()

	r.logger.Info("run.start",
		"run_id", runID,
		"agent", active.Name(),
		"input_messages", len(history),
		"max_turns", opts.MaxTurns,
	)

	fail := func(reason error) (*core.RunResult, error) {
		r.logger.Error("run.error", "run_id", runID, "agent", active.Name(), "error", reason)
		span.RecordError(reason)
		return &core.RunResult{
			RunID:        runID,
			Messages:     history,
			Agent:        active,
			ContextVars:  ctxVars,
			FinishReason: core.FinishReasonError,
			Turns:        turns,
		}, reason
	}

	finish := func(reason core.FinishReason) (*core.RunResult, error) {
		r.logger.Info("run.finish",
			"run_id", runID,
			"agent", active.Name(),
			"finish_reason", string(reason),
			"turns", turns,
		)
		span.SetAttributes(
			attribute.String("run.finish_reason", string(reason)),
			attribute.Int("run.turns", turns),
		)
		return &core.RunResult{
			RunID:        runID,
			Messages:     history,
			Agent:        active,
			ContextVars:  ctxVars,
			FinishReason: reason,
			Turns:        turns,
		}, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		instructions, err := active.ResolveInstructions(ctxVars)
		if err != nil {
			return fail(core.NewInstructionError(active.Name(), err))
		}

		modelID := active.Model()
		if opts.ModelOverride != "" {
			modelID = opts.ModelOverride
		}

		req := model.Request{
			Instructions:      instructions,
			Messages:          history,
			Tools:             model.DefinitionsFromAgent(active),
			ToolChoice:        active.ToolChoice(),
			ParallelToolCalls: active.ParallelToolCalls(),
			Model:             modelID,
			Stream:            stream,
		}

		final, err := r.complete(ctx, req, emit)
		if err != nil {
			return fail(core.NewCompletionError(modelID, err))
		}

		assistant := final.Message
		assistant.Role = core.RoleAssistant
		assistant.Sender = active.Name()

		history = append(history, assistant)
		turns++

		r.logger.Debug("run.turn",
			"run_id", runID,
			"agent", active.Name(),
			"turn", turns,
			"tool_calls", len(assistant.ToolCalls),
			"finish_reason", final.FinishReason,
		)

		if emit != nil {
			emit(StreamEvent{Type: StreamEventMessage, Message: assistant})
		}

		if !assistant.HasToolCalls() {
			return finish(core.FinishReasonDone)
		}

		if !opts.ExecuteTools {
			return finish(core.FinishReasonToolCallsPending)
		}

		outcome := r.executeToolCalls(ctx, active, assistant.ToolCalls, ctxVars)

		for _, msg := range outcome.messages {
			history = append(history, msg)
			if emit != nil {
				emit(StreamEvent{Type: StreamEventMessage, Message: msg})
			}
		}

		ctxVars.Merge(outcome.varsDelta)

		if outcome.nextAgent != nil && outcome.nextAgent != active {
			r.logger.Info("run.handoff",
				"run_id", runID,
				"from", active.Name(),
				"to", outcome.nextAgent.Name(),
			)
			active = outcome.nextAgent
		}

		if opts.MaxTurns > 0 && turns >= opts.MaxTurns {
			return finish(core.FinishReasonMaxTurns)
		}
	}
}

// complete performs one model call and returns the final response. Partial
// responses are forwarded as delta events when streaming.
func (r *Runner) complete(
	ctx context.Context,
	req model.Request,
	emit func(StreamEvent),
) (model.Response, error) {
	ctx, span := r.tracer.Start(ctx, "Runner.Completion", trace.WithAttributes(
		attribute.String("model.id", req.Model),
		attribute.Int("request.messages", len(req.Messages)),
		attribute.Int("request.tools", len(req.Tools)),
	))
	defer span.End()

	respCh, errCh := r.model.Generate(ctx, req)

	var final *model.Response
	for resp := range respCh {
		if resp.Partial {
			if emit != nil {
				emit(StreamEvent{Type: StreamEventDelta, Delta: resp.Message})
			}
			continue
		}
		resp := resp
		final = &resp
	}

	if err := <-errCh; err != nil {
		span.RecordError(err)
		return model.Response{}, err
	}
	if final == nil {
		err := fmt.Errorf("model produced no final response")
		span.RecordError(err)
		return model.Response{}, err
	}

	if final.Usage != nil {
		span.SetAttributes(
			attribute.Int("usage.prompt_tokens", final.Usage.PromptTokens),
			attribute.Int("usage.completion_tokens", final.Usage.CompletionTokens),
		)
	}

	return *final, nil
}
