package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("chain-executor")

// ErrNothingToChain is the single invocation-level fatal condition: no
// techniques requested and no prompt to return. Every other problem is
// surfaced as data in the summary, never as an error from Run.
var ErrNothingToChain = errors.New("nothing to enhance: empty technique list and empty prompt")

// Invocation is the top-level unit of work for one enhancement request. It
// lives only for the duration of the Run call and is never persisted by this
// package. TechniqueIDs may contain duplicates and unknown ids; the caller's
// order is authoritative and is never reordered.
type Invocation struct {
	ID           string
	TechniqueIDs []string
	Prompt       string
	Intent       string
	Complexity   string
	// Options holds optional per-technique configuration keyed by technique id.
	Options map[string]map[string]interface{}
}

// Step statuses reported to observers.
const (
	StepCompleted = "completed"
	StepFailed    = "failed"
	StepSkipped   = "skipped"
)

// StepEvent describes the outcome of one technique step.
type StepEvent struct {
	Index     int           `json:"index"`
	Technique string        `json:"technique"`
	Status    string        `json:"status"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// StepObserver is notified after each step. Observers see outcomes only; they
// cannot influence the chain.
type StepObserver func(event StepEvent)

// Executor applies techniques sequentially over a fresh Context, enforcing
// ordering, executor-side timing capture, and per-step failure isolation. An
// Executor holds no per-invocation state and may serve concurrent invocations.
type Executor struct {
	registry *Registry
	tracer   trace.Tracer
}

// NewExecutor creates an executor over a populated registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{
		registry: registry,
		tracer:   tracer,
	}
}

// Run applies the invocation's techniques in order and assembles a best-effort
// summary. A single technique failing degrades quality, it never aborts the
// invocation: unknown ids and internal faults are recorded in the summary's
// error list and the prompt is left unchanged by that step. Cancellation is
// checked between steps, never mid-technique; on cancellation Run returns the
// partial summary alongside the context error.
func (e *Executor) Run(ctx context.Context, inv Invocation, observers ...StepObserver) (*Summary, error) {
	ctx, span := e.tracer.Start(ctx, "chain.run")
	defer span.End()

	span.SetAttributes(
		attribute.String("invocation.id", inv.ID),
		attribute.Int("chain.length", len(inv.TechniqueIDs)),
		attribute.String("chain.intent", inv.Intent),
		attribute.String("chain.complexity", inv.Complexity),
	)

	if len(inv.TechniqueIDs) == 0 && inv.Prompt == "" {
		span.RecordError(ErrNothingToChain)
		return nil, ErrNothingToChain
	}

	chainCtx := NewContext()
	prompt := inv.Prompt
	var applied []string
	var warnings []string

	for i, id := range inv.TechniqueIDs {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return assemble(prompt, applied, chainCtx, warnings), err
		}

		technique, ok := e.registry.Lookup(id)
		if !ok {
			chainCtx.recordError(id, "unknown technique")
			warnings = append(warnings, fmt.Sprintf("unknown technique %q skipped", id))
			notify(observers, StepEvent{Index: i, Technique: id, Status: StepSkipped, Error: "unknown technique"})
			continue
		}

		req := Request{
			Prompt:     prompt,
			Intent:     inv.Intent,
			Complexity: inv.Complexity,
			Context:    chainCtx.Snapshot(),
			Options:    inv.Options[id],
		}

		start := time.Now()
		result, err := applyTechnique(technique, req)
		elapsed := time.Since(start)

		if err != nil {
			// Failure isolation: the prompt stays as the previous technique
			// left it and the chain moves on.
			chainCtx.recordError(id, err.Error())
			notify(observers, StepEvent{Index: i, Technique: id, Status: StepFailed, Duration: elapsed, Error: err.Error()})
			continue
		}

		prompt = result.Prompt
		chainCtx.Merge(result.Updates)
		chainCtx.setMetadata(id, result.Metadata)
		chainCtx.recordTiming(id, elapsed)
		applied = append(applied, id)
		warnings = append(warnings, result.Warnings...)
		notify(observers, StepEvent{Index: i, Technique: id, Status: StepCompleted, Duration: elapsed})
	}

	span.SetAttributes(
		attribute.Int("chain.techniques_applied", len(applied)),
		attribute.Int("chain.errors", len(chainCtx.errors)),
	)

	return assemble(prompt, applied, chainCtx, warnings), nil
}

// applyTechnique invokes a technique and converts panics into errors so one
// broken technique cannot take down the invocation.
func applyTechnique(t Technique, req Request) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("technique panicked: %v", r)
		}
	}()
	return t.Apply(req)
}

func notify(observers []StepObserver, event StepEvent) {
	for _, observer := range observers {
		observer(event)
	}
}
