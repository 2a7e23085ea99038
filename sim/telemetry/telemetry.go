// Package telemetry is a thin wrapper around OpenTelemetry tracing for simulation runs:
// one span per run, one span event per tick. Nothing is re-implemented that the upstream
// SDK already provides.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/inference-sim/proc-sim/sim"
)

const instrumentationName = "github.com/inference-sim/proc-sim"

// Recorder owns a tracer provider dedicated to simulation runs.
type Recorder struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewStdoutRecorder writes spans as JSON to w using the stdout exporter.
func NewStdoutRecorder(serviceName, serviceVersion string, w io.Writer) (*Recorder, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("creating stdout exporter: %w", err)
	}
	return NewRecorder(serviceName, serviceVersion, exporter)
}

// NewRecorder uses the supplied exporter. Spans are exported synchronously so a run's
// span is available as soon as it ends.
func NewRecorder(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*Recorder, error) {
	if exporter == nil {
		return nil, fmt.Errorf("exporter must not be nil")
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return &Recorder{provider: tp, tracer: tp.Tracer(instrumentationName)}, nil
}

// Shutdown flushes and stops the provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.provider.Shutdown(ctx)
}

// RunSpan wraps the span covering one simulation run.
type RunSpan struct {
	span  trace.Span
	ticks int64
}

// StartRun opens the run span. attrs are attached as string attributes.
func (r *Recorder) StartRun(ctx context.Context, name string, attrs map[string]string) (context.Context, *RunSpan) {
	if r == nil {
		return ctx, nil
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	ctx, span := r.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(kv...),
	)
	return ctx, &RunSpan{span: span}
}

// Observe is a sim.TickObserver that records the tick as a span event.
func (s *RunSpan) Observe(r sim.TickReport) error {
	if s == nil {
		return nil
	}
	events := make([]string, len(r.Events))
	for i, ev := range r.Events {
		events[i] = fmt.Sprintf("%s:P%d", ev.Action, ev.ProcessID)
	}
	s.span.AddEvent("tick", trace.WithAttributes(
		attribute.Int64("sim.tick", r.Tick),
		attribute.String("sim.action", string(r.Action)),
		attribute.StringSlice("sim.events", events),
		attribute.Int("sim.active", len(r.Processes)),
		attribute.Bool("sim.processor_busy", r.ProcessorBusy),
	))
	s.ticks++
	return nil
}

// End closes the span, recording err (if any) as its status.
func (s *RunSpan) End(err error) {
	if s == nil {
		return
	}
	s.span.SetAttributes(attribute.Int64("sim.ticks", s.ticks))
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
