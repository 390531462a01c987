// Package telemetry exposes render metrics through OpenTelemetry.
// Instruments come from the global meter provider, so without an SDK
// installed every call is a no-op.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every instrument.
const MeterName = "github.com/datainsight-lab/datainsight"

// Recorder counts backend attempts and orchestrated outcomes.
type Recorder struct {
	attempts metric.Int64Counter
	outcomes metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRecorder creates the render instruments on the global meter provider.
func NewRecorder(version string) (*Recorder, error) {
	meter := otel.GetMeterProvider().Meter(MeterName, metric.WithInstrumentationVersion(version))

	attempts, err := meter.Int64Counter(
		"render.attempts",
		metric.WithDescription("Backend render attempts by backend and result"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	outcomes, err := meter.Int64Counter(
		"render.outcomes",
		metric.WithDescription("Orchestrated renders by chart kind and terminal state"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"render.attempt.duration",
		metric.WithDescription("Time spent in one backend attempt"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{attempts: attempts, outcomes: outcomes, duration: duration}, nil
}

// RecordAttempt records one backend attempt. result is "success",
// "unavailable" or "render_error".
func (r *Recorder) RecordAttempt(ctx context.Context, backend, result string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("result", result),
	)
	r.attempts.Add(ctx, 1, attrs)
	r.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// RecordOutcome records the terminal state of one orchestrated render.
// backend is empty when every backend failed.
func (r *Recorder) RecordOutcome(ctx context.Context, kind, state, backend string) {
	r.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("state", state),
		attribute.String("backend", backend),
	))
}
