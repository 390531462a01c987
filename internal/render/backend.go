package render

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/chart"
)

// Failure taxonomy shared by every backend. Backends wrap one of these with %w.
var (
	// ErrBackendUnavailable means the capability behind a backend is absent or disabled.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrRenderError means the backend is present but rejected this input.
	ErrRenderError = errors.New("render error")
)

// EncodingBase64 marks an artifact whose Body is base64 text of binary output.
const EncodingBase64 = "base64"

// Artifact is the rendered output of one backend.
type Artifact struct {
	Backend   string `json:"backend"`
	MediaType string `json:"media_type"`
	Encoding  string `json:"encoding,omitempty"`
	Body      []byte `json:"-"`
}

// String returns the artifact body as text.
func (a *Artifact) String() string {
	return string(a.Body)
}

// Raw returns the body with any transfer encoding removed.
func (a *Artifact) Raw() ([]byte, error) {
	if a.Encoding != EncodingBase64 {
		return a.Body, nil
	}
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(a.Body)))
	n, err := base64.StdEncoding.Decode(raw, a.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s artifact: %w", a.Backend, err)
	}
	return raw[:n], nil
}

// Backend turns an aggregated view into an artifact.
// Implementations must not mutate the view and must be safe for concurrent use.
type Backend interface {
	// Name is the stable identifier used in configuration and outcomes.
	Name() string

	// Render returns an artifact, or an error wrapping ErrBackendUnavailable
	// or ErrRenderError.
	Render(ctx context.Context, view *aggregation.View, spec chart.Spec) (*Artifact, error)
}

// Renderf builds an error wrapping ErrRenderError.
func Renderf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRenderError, fmt.Sprintf(format, args...))
}

// Unavailablef builds an error wrapping ErrBackendUnavailable.
func Unavailablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBackendUnavailable, fmt.Sprintf(format, args...))
}

// RequireRows rejects a view with nothing to draw.
func RequireRows(view *aggregation.View) error {
	if view == nil || len(view.Rows) == 0 {
		return Renderf("view has zero rows")
	}
	return nil
}

// RequireFinite rejects a view holding NaN or infinite values.
func RequireFinite(view *aggregation.View) error {
	for _, r := range view.Rows {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return Renderf("non-finite value for group %q", r.Group)
		}
		if view.NumericX && (math.IsNaN(r.X) || math.IsInf(r.X, 0)) {
			return Renderf("non-finite x position for group %q", r.Group)
		}
	}
	return nil
}

type unavailableBackend struct {
	name   string
	reason string
}

// Unavailable returns a backend that always fails with ErrBackendUnavailable.
// It stands in for a backend whose capability check failed at construction.
func Unavailable(name, reason string) Backend {
	return &unavailableBackend{name: name, reason: reason}
}

func (b *unavailableBackend) Name() string { return b.name }

func (b *unavailableBackend) Render(context.Context, *aggregation.View, chart.Spec) (*Artifact, error) {
	return nil, Unavailablef("%s", b.reason)
}

// Available reports whether b is a real backend rather than an Unavailable stub.
func Available(b Backend) bool {
	_, stub := b.(*unavailableBackend)
	return !stub
}
