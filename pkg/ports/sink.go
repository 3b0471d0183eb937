package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// SubmissionSink receives one snapshot per submit action.
type SubmissionSink interface {
	Submit(ctx context.Context, submission domain.Submission) error
}

// SinkFunc adapts a function into a SubmissionSink.
type SinkFunc func(ctx context.Context, submission domain.Submission) error

// Submit delegates to the underlying function.
func (fn SinkFunc) Submit(ctx context.Context, submission domain.Submission) error {
	return fn(ctx, submission)
}
