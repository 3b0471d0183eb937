package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter   EventType = "step_enter"
	EventStepLeave   EventType = "step_leave"
	EventFieldUpdate EventType = "field_update"
	EventSubmit      EventType = "submit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// StepEvent represents entry or exit from a step.
type StepEvent struct {
	EventBase
	Step   int    `json:"step"`
	StepID string `json:"step_id"`
}

// FieldEvent represents an accepted or rejected value change.
type FieldEvent struct {
	EventBase
	Key      string    `json:"key"`
	Kind     FieldKind `json:"kind"`
	Rejected bool      `json:"rejected,omitempty"`
}

// SubmitEvent represents a snapshot handed to the sink.
type SubmitEvent struct {
	EventBase
	Fields  int  `json:"fields"`
	IsError bool `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter   func(context.Context, *StepEvent)
	OnStepLeave   func(context.Context, *StepEvent)
	OnFieldUpdate func(context.Context, *FieldEvent)
	OnSubmit      func(context.Context, *SubmitEvent)
}
