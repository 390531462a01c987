// Package insights asks a language model for commentary on a dataset and
// keeps the latest answer in the catalog.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/datainsight-lab/datainsight/internal/catalog"
)

const DefaultTimeout = 30 * time.Second

var (
	// ErrNotConfigured is returned when no generator is wired.
	ErrNotConfigured = errors.New("insights are not configured")

	// ErrUpstream wraps failures reported by the model provider.
	ErrUpstream = errors.New("insights provider failed")

	// ErrTimeout is returned when generation exceeds the configured timeout.
	ErrTimeout = errors.New("insights generation timed out")
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Insight is one generated commentary.
type Insight struct {
	DatasetID   string
	Model       string
	Text        string
	GeneratedAt time.Time
}

// Service builds prompts from catalog datasets and stores the answers.
type Service struct {
	catalog   *catalog.Catalog
	generator Generator
	timeout   time.Duration
	nowFn     func() time.Time
}

// NewService creates an insights service. A nil generator leaves the
// service answering ErrNotConfigured.
func NewService(cat *catalog.Catalog, generator Generator, timeout time.Duration) *Service {
	if cat == nil {
		panic("insights: catalog must not be nil")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		catalog:   cat,
		generator: generator,
		timeout:   timeout,
		nowFn:     time.Now,
	}
}

// Enabled reports whether a generator is wired.
func (s *Service) Enabled() bool {
	return s.generator != nil
}

// Generate asks the model about the dataset and stores the answer as the
// dataset's latest insights.
func (s *Service) Generate(ctx context.Context, id, question string) (*Insight, error) {
	if s.generator == nil {
		return nil, ErrNotConfigured
	}

	entry, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(entry.Data, question)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.nowFn()
	text, err := s.generator.Generate(genCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded) {
			slog.Warn("[Insights] Generation timed out", "dataset_id", id, "timeout", s.timeout)
			return nil, fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		slog.Error("[Insights] Generation failed", "dataset_id", id, "model", s.generator.Model(), "error", err)
		if errors.Is(err, ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.catalog.SetInsights(ctx, id, text); err != nil {
		return nil, fmt.Errorf("storing insights: %w", err)
	}

	now := s.nowFn()
	slog.Info("[Insights] Generated",
		"dataset_id", id,
		"model", s.generator.Model(),
		"chars", len(text),
		"elapsed", now.Sub(start),
	)
	return &Insight{
		DatasetID:   id,
		Model:       s.generator.Model(),
		Text:        text,
		GeneratedAt: now.UTC(),
	}, nil
}

// Latest returns the stored insights text of a dataset, empty when none.
func (s *Service) Latest(ctx context.Context, id string) (string, error) {
	entry, err := s.catalog.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return entry.Insights, nil
}
