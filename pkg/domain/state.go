package domain

import "time"

// Status defines the lifecycle of a session.
type Status string

const (
	StatusActive    Status = "active"    // Collecting input
	StatusSubmitted Status = "submitted" // Snapshot emitted to the sink at least once
)

// State represents the current snapshot of a wizard session.
type State struct {
	SessionID string `json:"session_id"`

	// CurrentStep is the 1-based index of the active step.
	CurrentStep int `json:"current_step"`

	Status Status `json:"status"`

	// Values is the flat form state: field key to current value.
	Values map[string]Value `json:"values"`

	// History tracks the step indices entered, in order.
	History []int `json:"history,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// NewState creates a clean state positioned on the first step.
func NewState(sessionID string) *State {
	return &State{
		SessionID:   sessionID,
		CurrentStep: 1,
		Status:      StatusActive,
		Values:      make(map[string]Value),
		History:     []int{1},
	}
}

// Get returns the value stored for key.
func (s *State) Get(key string) (Value, bool) {
	if s == nil || s.Values == nil {
		return Value{}, false
	}
	v, ok := s.Values[key]
	return v, ok
}

// Snapshot returns a deep copy of the state, safe for mutation.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Values = make(map[string]Value, len(s.Values))
	for k, v := range s.Values {
		next.Values[k] = v.Clone()
	}
	if s.History != nil {
		next.History = make([]int, len(s.History))
		copy(next.History, s.History)
	}
	if s.SubmittedAt != nil {
		t := *s.SubmittedAt
		next.SubmittedAt = &t
	}
	return &next
}
