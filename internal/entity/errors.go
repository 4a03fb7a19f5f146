package entity

import "errors"

var (
	// ErrInvalidEventType is returned when event_type is not on the allow-list.
	ErrInvalidEventType = errors.New("invalid event type")
	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("validation error")
	// ErrStorageUnavailable wraps every event store or catalog failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
