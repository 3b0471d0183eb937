package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/stepwise/internal/presentation/graph"
	"github.com/aretw0/stepwise/internal/validator"
	"github.com/aretw0/stepwise/pkg/adapters/config"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// ValidateForm loads the form at path and reports every structural issue.
func ValidateForm(ctx context.Context, path string, out io.Writer) error {
	form, err := config.NewFileLoader(path).Load(ctx)
	if err != nil {
		return err
	}
	if err := validator.Validate(form); err != nil {
		var verr *validator.Error
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
		}
		return fmt.Errorf("%s: %d issue(s) found", path, issueCount(err))
	}
	fields := 0
	for _, s := range form.Steps {
		fields += len(s.Fields)
	}
	fmt.Fprintf(out, "%s: valid (%d steps, %d fields)\n", path, len(form.Steps), fields)
	return nil
}

func issueCount(err error) int {
	var verr *validator.Error
	if errors.As(err, &verr) {
		return len(verr.Issues)
	}
	return 1
}

// Outline prints the Mermaid chart of a form, with the progress of a session
// overlaid when store and sessionID are set.
func Outline(ctx context.Context, path string, store ports.StateStore, sessionID string, out io.Writer) error {
	form, err := config.NewFileLoader(path).Load(ctx)
	if err != nil {
		return err
	}
	if err := validator.Validate(form); err != nil {
		return err
	}

	var overlay *graph.Overlay
	if store != nil && sessionID != "" {
		state, err := store.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session %q: %w", sessionID, err)
		}
		overlay = graph.OverlayFor(state)
	}
	_, err = io.WriteString(out, graph.GenerateMermaid(form, overlay))
	return err
}

// ListSessions prints the stored session IDs, one per line.
func ListSessions(ctx context.Context, store ports.StateStore, out io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No active sessions found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

// InspectSession prints a stored session as indented JSON.
func InspectSession(ctx context.Context, store ports.StateStore, sessionID string, out io.Writer) error {
	state, err := store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("session %q not found", sessionID)
		}
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}

// DeleteSession removes a stored session.
func DeleteSession(ctx context.Context, store ports.StateStore, sessionID string, out io.Writer) error {
	if err := store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %q: %w", sessionID, err)
	}
	fmt.Fprintf(out, "Session %q deleted.\n", sessionID)
	return nil
}
