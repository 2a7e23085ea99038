package telemetry

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/inference-sim/proc-sim/sim"
)

func newTestRecorder(t *testing.T) (*Recorder, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	rec, err := NewRecorder("proc-sim-test", "0.0.0", exporter)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Shutdown(context.Background()) })
	return rec, exporter
}

func TestRecorder_RunSpan_OneEventPerTick(t *testing.T) {
	// GIVEN a recorder backed by an in-memory exporter
	rec, exporter := newTestRecorder(t)

	// WHEN a four-tick simulation is observed through the run span
	ctx, span := rec.StartRun(context.Background(), "simulate", map[string]string{"sim.source": "mem://procs.txt"})
	s := sim.NewSimulator(sim.SimConfig{}, []*sim.Process{sim.NewProcess(1, 0, 3, nil)})
	err := s.Run(ctx, span.Observe)
	span.End(err)

	// THEN one span is exported with a tick event per tick and an Ok status
	require.NoError(t, err)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "simulate", got.Name)
	assert.Len(t, got.Events, 4)
	assert.Equal(t, "tick", got.Events[0].Name)
	assert.Contains(t, got.Events[0].Attributes, attribute.String("sim.action", "begin"))
	assert.Contains(t, got.Attributes, attribute.Int64("sim.ticks", 4))
	assert.Contains(t, got.Attributes, attribute.String("sim.source", "mem://procs.txt"))
	assert.Equal(t, codes.Ok, got.Status.Code)
}

func TestRunSpan_End_WithError_SetsErrorStatus(t *testing.T) {
	rec, exporter := newTestRecorder(t)

	_, span := rec.StartRun(context.Background(), "simulate", nil)
	span.End(errors.New("horizon"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "horizon", spans[0].Status.Description)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder

	ctx, span := rec.StartRun(context.Background(), "simulate", nil)

	assert.NotNil(t, ctx)
	assert.Nil(t, span)
	assert.NoError(t, span.Observe(sim.TickReport{Tick: 1}))
	span.End(nil)
	assert.NoError(t, rec.Shutdown(context.Background()))
}

func TestNewRecorder_NilExporter(t *testing.T) {
	_, err := NewRecorder("proc-sim", "0.0.0", nil)
	assert.Error(t, err)
}

func TestNewStdoutRecorder_WritesJSON(t *testing.T) {
	var out bytes.Buffer
	rec, err := NewStdoutRecorder("proc-sim", "0.0.0", &out)
	require.NoError(t, err)

	_, span := rec.StartRun(context.Background(), "simulate", nil)
	span.End(nil)
	require.NoError(t, rec.Shutdown(context.Background()))

	assert.Contains(t, out.String(), `"simulate"`)
}
