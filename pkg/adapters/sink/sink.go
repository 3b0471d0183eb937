// Package sink provides SubmissionSink implementations.
package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// LogSink writes each submission to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Submit(ctx context.Context, sub domain.Submission) error {
	s.Logger.InfoContext(ctx, "form submitted",
		"session_id", sub.SessionID,
		"form", sub.FormTitle,
		"values", sub.Values,
	)
	return nil
}

// WriterSink writes each submission as one JSON line.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSink creates a sink writing JSON lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

func (s *WriterSink) Submit(ctx context.Context, sub domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(sub); err != nil {
		return fmt.Errorf("failed to write submission: %w", err)
	}
	return nil
}

// MultiSink fans a submission out to several sinks. Every sink is called;
// failures are joined.
type MultiSink []ports.SubmissionSink

func (m MultiSink) Submit(ctx context.Context, sub domain.Submission) error {
	var errs []error
	for _, s := range m {
		if err := s.Submit(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
