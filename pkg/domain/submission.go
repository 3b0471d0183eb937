package domain

import "time"

// Submission is the snapshot emitted to a sink on submit.
type Submission struct {
	SessionID   string         `json:"session_id"`
	FormTitle   string         `json:"form_title"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Values      map[string]any `json:"values"`
}

// Receipt acknowledges a submit.
type Receipt struct {
	SessionID   string    `json:"session_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Message     string    `json:"message"`
}

// NewSubmission snapshots the values of a state.
func NewSubmission(formTitle string, state *State, at time.Time) Submission {
	values := make(map[string]any, len(state.Values))
	for k, v := range state.Values {
		values[k] = v.Interface()
	}
	return Submission{
		SessionID:   state.SessionID,
		FormTitle:   formTitle,
		SubmittedAt: at,
		Values:      values,
	}
}
