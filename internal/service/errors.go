package service

import "errors"

var (
	// ErrInvalidDate indicates a date string not in YYYY-MM-DD format
	ErrInvalidDate = errors.New("invalid date format")
	// ErrFutureDate indicates an attempt to log data for a future date
	ErrFutureDate = errors.New("date is in the future")
	// ErrInvalidRating indicates a mood rating outside [1,10]
	ErrInvalidRating = errors.New("rating out of range")
	// ErrInvalidSegment indicates an unknown day segment
	ErrInvalidSegment = errors.New("invalid day segment")
	// ErrInvalidFactor indicates a context factor value outside its valid set
	ErrInvalidFactor = errors.New("invalid context factor value")
)
