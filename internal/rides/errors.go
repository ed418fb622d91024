package rides

import (
	"errors"
	"fmt"
)

// RideError represents errors related to ride and membership operations
type RideError struct {
	Type    string
	Message string
	Cause   error
}

func (e *RideError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ride error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("ride error [%s]: %s", e.Type, e.Message)
}

func (e *RideError) Unwrap() error {
	return e.Cause
}

// Ride error types
const (
	RideErrorTypeNotFound      = "not_found"
	RideErrorTypeAlreadyJoined = "already_joined"
)

// NewRideNotFoundError creates an error for when a ride is not found
func NewRideNotFoundError(rideID int64) *RideError {
	return &RideError{
		Type:    RideErrorTypeNotFound,
		Message: fmt.Sprintf("ride %d not found", rideID),
	}
}

// NewRiderNotFoundError creates an error for when a user row is not found
func NewRiderNotFoundError(userID int64) *RideError {
	return &RideError{
		Type:    RideErrorTypeNotFound,
		Message: fmt.Sprintf("user %d not found", userID),
	}
}

// NewAlreadyJoinedError creates an error for a duplicate join
func NewAlreadyJoinedError(rideID, userID int64, cause error) *RideError {
	return &RideError{
		Type:    RideErrorTypeAlreadyJoined,
		Message: fmt.Sprintf("user %d already joined ride %d", userID, rideID),
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a ride or rider not-found error.
func IsNotFound(err error) bool {
	var re *RideError
	return errors.As(err, &re) && re.Type == RideErrorTypeNotFound
}

// IsConflict reports whether err is a duplicate-join conflict.
func IsConflict(err error) bool {
	var re *RideError
	return errors.As(err, &re) && re.Type == RideErrorTypeAlreadyJoined
}
