package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestOperationStepsAreChildren(t *testing.T) {
	t.Parallel()

	tracer, recorder := newTestTracer()
	op, err := Start(context.Background(), tracer, "exhaustive", StepFetch, StepDiagnose)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := op.RunStep(StepFetch, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunStep() error = %v", err)
	}
	op.End(nil)

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended span count = %d, want 2", len(spans))
	}
	root := findSpanByName(spans, "exhaustive")
	if root == nil {
		t.Fatal("missing root span")
	}
	if len(root.Events()) == 0 || root.Events()[0].Name != PlanEventName {
		t.Fatalf("root events = %v, want plan event", root.Events())
	}
	child := findSpanByName(spans, StepFetch)
	if child == nil {
		t.Fatal("missing fetch span")
	}
	if child.Parent().SpanID() != root.SpanContext().SpanID() {
		t.Fatalf("fetch parent = %s, want %s", child.Parent().SpanID(), root.SpanContext().SpanID())
	}
}

func TestOperationStepFailure(t *testing.T) {
	t.Parallel()

	tracer, recorder := newTestTracer()
	op, err := Start(context.Background(), tracer, "quick", StepFetch)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	boom := errors.New("ceph not reachable")
	err = op.RunStep(StepFetch, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("RunStep() error = %v, want boom", err)
	}
	op.End(err)

	for _, name := range []string{"quick", StepFetch} {
		span := findSpanByName(recorder.Ended(), name)
		if span == nil {
			t.Fatalf("missing span %q", name)
		}
		if span.Status().Code != codes.Error {
			t.Fatalf("span %q status = %v, want error", name, span.Status().Code)
		}
	}
}

func TestOperationRejectsUnplannedStep(t *testing.T) {
	tracer, _ := newTestTracer()
	op, err := Start(context.Background(), tracer, "quick", StepFetch)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	called := false
	err = op.RunStep(StepRender, func(context.Context) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("RunStep(unplanned) = %v, called = %v", err, called)
	}
}

func TestStartValidatesSteps(t *testing.T) {
	tracer, _ := newTestTracer()
	if _, err := Start(context.Background(), tracer, "x", "a", "a"); err == nil {
		t.Fatal("expected duplicate step error")
	}
	if _, err := Start(context.Background(), tracer, "x", " "); err == nil {
		t.Fatal("expected empty step error")
	}
	if _, err := Start(context.Background(), nil, "x"); err == nil {
		t.Fatal("expected missing tracer error")
	}
}

func TestNilOperationRunsStep(t *testing.T) {
	var op *Operation
	ran := false
	if err := op.RunStep(StepFetch, func(context.Context) error { ran = true; return nil }); err != nil || !ran {
		t.Fatalf("nil RunStep() = %v, ran = %v", err, ran)
	}
	op.End(nil)
}

func TestProviderLogsFinishedSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	provider := NewProvider(logger)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	op, err := Start(context.Background(), provider.Tracer("test"), "quick", StepFetch)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_ = op.RunStep(StepFetch, func(context.Context) error { return errors.New("timeout") })
	op.End(nil)

	out := buf.String()
	if !strings.Contains(out, "span=fetch") || !strings.Contains(out, "error=timeout") {
		t.Fatalf("log output = %q, want fetch span with error", out)
	}
	if !strings.Contains(out, "span=quick") {
		t.Fatalf("log output = %q, want root span", out)
	}
}

func newTestTracer() (trace.Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return provider.Tracer("test"), recorder
}

func findSpanByName(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, span := range spans {
		if span.Name() == name {
			return span
		}
	}
	return nil
}
