package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownField is returned when an update targets a key no step declares.
var ErrUnknownField = errors.New("unknown field")

// ErrValueShape is returned when a value does not match the field kind.
var ErrValueShape = errors.New("value does not match field type")

// ErrInvalidOption is returned when a select value is not one of its options.
var ErrInvalidOption = errors.New("value is not a valid option")

// ErrNotOnSummary is returned when submit is requested outside the summary step.
var ErrNotOnSummary = errors.New("submit is only available on the summary step")

// ErrInvalidStep is returned when a state points outside the form.
var ErrInvalidStep = errors.New("step out of range")
