package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Submit hands a snapshot of all values to the sink. It is only available on
// the summary step and does not re-run validation: the gate already held on
// the way there. Submitting again emits a fresh snapshot.
func (e *Engine) Submit(ctx context.Context, state *domain.State) (*domain.State, *domain.Receipt, error) {
	step, err := e.currentStep(state)
	if err != nil {
		return nil, nil, err
	}
	if !step.Summary {
		return nil, nil, domain.ErrNotOnSummary
	}

	at := e.now()
	if e.sink != nil {
		if err := e.sink.Submit(ctx, domain.NewSubmission(e.form.Title, state, at)); err != nil {
			e.emitSubmit(ctx, state, true)
			return nil, nil, fmt.Errorf("submission sink failed: %w", err)
		}
	}

	next := state.Snapshot()
	next.Status = domain.StatusSubmitted
	next.SubmittedAt = &at
	e.logger.Info("form submitted", "session_id", next.SessionID, "fields", len(next.Values))
	e.emitSubmit(ctx, next, false)

	return next, &domain.Receipt{
		SessionID:   next.SessionID,
		SubmittedAt: at,
		Message:     domain.Acknowledgement,
	}, nil
}
