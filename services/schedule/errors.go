package schedule

import (
	"errors"
	"fmt"
)

// Rejection reasons carried by RangeError. Remote conflicts surface
// with the same shape as local pre-check failures.
const (
	ReasonPast    = "past"
	ReasonOverlap = "overlap"
)

// RangeError is a structured domain rejection of a candidate range.
// It is recoverable: the caller resets the selection and, for overlap,
// refreshes its booking snapshot before another attempt.
type RangeError struct {
	Reason  string
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewPastError() error {
	return &RangeError{Reason: ReasonPast, Message: "cannot book past time"}
}

func NewOverlapError() error {
	return &RangeError{Reason: ReasonOverlap, Message: "slot no longer available"}
}

// AsRangeError unwraps err to a RangeError if it carries one.
func AsRangeError(err error) (*RangeError, bool) {
	var re *RangeError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
