// Package engine sequences playbook steps: it resolves each step's
// targets, issues the API calls, projects the results, and threads step
// outputs into later steps' resolution inputs.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	runerrors "github.com/merakitools/meraudit/internal/errors"
	"github.com/merakitools/meraudit/internal/meraki"
	"github.com/merakitools/meraudit/internal/playbook"
	"github.com/merakitools/meraudit/internal/projector"
)

// Engine executes playbooks against an API client. Steps run strictly
// in declared order; invocations within a step are issued sequentially
// to respect the client's rate limiting.
type Engine struct {
	caller Caller
	logger *zap.Logger

	// OnStepDone, when set, is called after each step completes.
	OnStepDone func(StepResult)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. Without it the engine stays silent.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine over the given API client boundary.
func New(caller Caller, opts ...Option) *Engine {
	e := &Engine{caller: caller, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every step of a playbook. A step failure is recorded and
// the run continues: downstream steps fail only if they depend on the
// failed step's output. The returned Result is always non-nil.
func (e *Engine) Run(ctx context.Context, p *playbook.Playbook, rc *RunContext) *Result {
	result := &Result{
		RunID:     rc.RunID,
		Playbook:  p.Config.Name,
		Success:   true,
		Rows:      map[string][]projector.Row{},
		StartedAt: time.Now(),
	}

	for _, step := range p.Steps {
		sr := e.runStep(ctx, step, rc)
		if sr.Status != StatusSuccess {
			result.Success = false
		}
		result.Steps = append(result.Steps, sr)
		rows, _ := rc.Output(step.Output)
		result.Rows[step.Output] = rows
		if e.OnStepDone != nil {
			e.OnStepDone(sr)
		}
	}

	result.Duration = time.Since(result.StartedAt)
	return result
}

func (e *Engine) runStep(ctx context.Context, step playbook.Step, rc *RunContext) StepResult {
	start := time.Now()
	sr := StepResult{Name: step.Name, Output: step.Output}
	log := e.logger.With(zap.String("step", step.Name))

	fail := func(err *runerrors.RunError) StepResult {
		log.Warn("step failed", zap.String("kind", err.Kind), zap.String("error", err.Message))
		sr.Status = StatusFailed
		sr.Err = err
		sr.Duration = time.Since(start)
		rc.RegisterOutput(step.Output, nil)
		return sr
	}

	spec, ok := meraki.Lookup(step.API.Endpoint, step.API.Method)
	if !ok {
		// Validation catches this before a run starts; kept as a guard.
		return fail(runerrors.NewMalformedPlaybook(
			"unknown endpoint/method "+step.API.Endpoint+"."+step.API.Method, ""))
	}

	targets, err := resolveTargets(step, rc)
	if err != nil {
		return fail(err.(*runerrors.RunError))
	}
	sr.Targets = len(targets)
	log.Debug("resolved targets", zap.Int("count", len(targets)))

	var rows []projector.Row
	var refs []DeviceRef
	for _, target := range targets {
		raw, err := executeTarget(ctx, e.caller, spec, step, target)
		if err != nil {
			// One failing invocation aborts the remaining targets of
			// this step, not the playbook.
			return fail(err.(*runerrors.RunError))
		}
		rows = append(rows, projector.Rows(raw, step.API.OutputFilter)...)
		if spec.Scope == meraki.ScopeNetwork {
			refs = append(refs, deviceRefs(raw, target)...)
		}
	}

	sr.Status = StatusSuccess
	sr.RowCount = len(rows)
	sr.Duration = time.Since(start)
	rc.RegisterOutput(step.Output, rows)
	if spec.Scope == meraki.ScopeNetwork {
		rc.RegisterDevices(step.Output, refs)
	}
	log.Info("step complete", zap.Int("rows", len(rows)), zap.Duration("took", sr.Duration))
	return sr
}
