package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
)

// State is the terminal state of one orchestrated render.
type State string

const (
	StateSucceeded State = "succeeded"
	StateAllFailed State = "all_failed"
)

// FailureKind classifies why one backend attempt failed.
type FailureKind string

const (
	FailureUnavailable FailureKind = "unavailable"
	FailureRenderError FailureKind = "render_error"
)

// Failure records one failed backend attempt.
type Failure struct {
	Backend string      `json:"backend"`
	Kind    FailureKind `json:"kind"`
	Reason  string      `json:"reason"`
}

// Outcome is the result of walking the fallback chain.
// On success, Failures lists the backends that were tried and failed first.
type Outcome struct {
	State    State     `json:"state"`
	Backend  string    `json:"backend,omitempty"`
	Artifact *Artifact `json:"artifact,omitempty"`
	Failures []Failure `json:"failures,omitempty"`
}

// Succeeded reports whether a backend produced an artifact.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// Recorder observes backend attempts. Result is "success" or a FailureKind.
type Recorder interface {
	RecordAttempt(ctx context.Context, backend, result string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordAttempt(context.Context, string, string, time.Duration) {}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder attaches an attempt recorder.
func WithRecorder(rec Recorder) Option {
	return func(o *Orchestrator) {
		if rec != nil {
			o.recorder = rec
		}
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator tries backends in registry order until one succeeds.
// It keeps no state between calls and is safe for concurrent use.
type Orchestrator struct {
	registry *Registry
	recorder Recorder
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator over a fixed registry.
func NewOrchestrator(registry *Registry, opts ...Option) *Orchestrator {
	if registry == nil {
		panic("render: registry must not be nil")
	}
	o := &Orchestrator{
		registry: registry,
		recorder: nopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRegistry returns an orchestrator sharing this one's recorder and
// logger but walking registry instead.
func (o *Orchestrator) WithRegistry(registry *Registry) *Orchestrator {
	if registry == nil {
		panic("render: registry must not be nil")
	}
	cp := *o
	cp.registry = registry
	return &cp
}

// Registry returns the registry the orchestrator walks.
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Render walks the fallback chain and always returns a definite outcome.
// Validation must already have passed; this method never returns an error
// and never lets a backend panic escape.
func (o *Orchestrator) Render(ctx context.Context, view *aggregation.View, spec chart.Spec) Outcome {
	backends := o.registry.backends
	failures := make([]Failure, 0, len(backends))

	for i, b := range backends {
		if err := ctx.Err(); err != nil {
			for _, skipped := range backends[i:] {
				failures = append(failures, Failure{Backend: skipped.Name(), Kind: FailureUnavailable, Reason: err.Error()})
			}
			o.logger.Warn("[Orchestrator] Render cancelled", "error", err, "skipped", len(backends)-i)
			break
		}

		start := time.Now()
		artifact, err := o.attempt(ctx, b, view, spec)
		elapsed := time.Since(start)

		if err == nil {
			if artifact.Backend == "" {
				artifact.Backend = b.Name()
			}
			o.recorder.RecordAttempt(ctx, b.Name(), "success", elapsed)
			o.logger.Debug("[Orchestrator] Backend succeeded",
				"backend", b.Name(),
				"kind", spec.Kind,
				"attempt", i+1,
				"elapsed", elapsed,
			)
			return Outcome{State: StateSucceeded, Backend: b.Name(), Artifact: artifact, Failures: failures}
		}

		kind := classify(err)
		failures = append(failures, Failure{Backend: b.Name(), Kind: kind, Reason: err.Error()})
		o.recorder.RecordAttempt(ctx, b.Name(), string(kind), elapsed)
		o.logger.Info("[Orchestrator] Backend failed, falling back",
			"backend", b.Name(),
			"kind", spec.Kind,
			"failure", kind,
			"reason", err.Error(),
		)
	}

	o.logger.Warn("[Orchestrator] All backends failed", "kind", spec.Kind, "attempts", len(failures))
	return Outcome{State: StateAllFailed, Failures: failures}
}

// attempt runs one backend, turning a panic or an empty result into a render error.
func (o *Orchestrator) attempt(ctx context.Context, b Backend, view *aggregation.View, spec chart.Spec) (artifact *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact = nil
			err = fmt.Errorf("%w: backend panicked: %v", ErrRenderError, r)
		}
	}()

	artifact, err = b.Render(ctx, view, spec)
	if err == nil && artifact == nil {
		err = Renderf("backend returned no artifact")
	}
	return artifact, err
}

func classify(err error) FailureKind {
	if errors.Is(err, ErrBackendUnavailable) {
		return FailureUnavailable
	}
	return FailureRenderError
}
