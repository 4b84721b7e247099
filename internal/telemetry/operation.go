// Package telemetry traces one diagnostic run as an operation with named
// steps, so slow snapshot acquisition or a failing step shows up in debug logs.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	PlanEventName = "ceph_safe_disk.plan"
	PlanStepsKey  = "ceph_safe_disk.plan.steps"
	ModeKey       = "ceph_safe_disk.mode"
	defaultName   = "diagnose"
)

// Step names shared by the quick and exhaustive runs.
const (
	StepFetch    = "fetch"
	StepDiagnose = "diagnose"
	StepRender   = "render"
)

type Operation struct {
	ctx    context.Context
	tracer trace.Tracer
	span   trace.Span
	steps  map[string]struct{}
}

// Start opens the root span for a run and records the planned steps on it.
// Step ids must be unique and non-empty.
func Start(ctx context.Context, tracer trace.Tracer, name string, steps ...string) (*Operation, error) {
	if tracer == nil {
		return nil, fmt.Errorf("start operation: tracer is required")
	}
	planned := make(map[string]struct{}, len(steps))
	for i, step := range steps {
		id := strings.TrimSpace(step)
		if id == "" {
			return nil, fmt.Errorf("start operation: step %d has empty id", i)
		}
		if _, dup := planned[id]; dup {
			return nil, fmt.Errorf("start operation: duplicate step id %q", id)
		}
		planned[id] = struct{}{}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	spanCtx, span := tracer.Start(ctx, name, trace.WithAttributes(attribute.String(ModeKey, name)))
	span.AddEvent(PlanEventName, trace.WithAttributes(attribute.StringSlice(PlanStepsKey, steps)))

	return &Operation{ctx: spanCtx, tracer: tracer, span: span, steps: planned}, nil
}

func (o *Operation) Context() context.Context {
	if o == nil {
		return context.Background()
	}
	return o.ctx
}

// SetAttributes annotates the root span, e.g. with the verdict.
func (o *Operation) SetAttributes(kv ...attribute.KeyValue) {
	if o == nil || o.span == nil {
		return
	}
	o.span.SetAttributes(kv...)
}

// RunStep runs fn inside a child span named id.
func (o *Operation) RunStep(id string, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	if o == nil || o.tracer == nil {
		return fn(context.Background())
	}
	if _, ok := o.steps[id]; !ok {
		return fmt.Errorf("run step: %q is not in the plan", id)
	}

	stepCtx, span := o.tracer.Start(o.ctx, id)
	defer span.End()

	if err := fn(stepCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

func (o *Operation) End(err error) {
	if o == nil || o.span == nil {
		return
	}
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
	}
	o.span.End()
}
