package users

import (
	"errors"
	"fmt"
)

// UserError represents errors related to user operations
type UserError struct {
	Type    string
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s]: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s]: %s", e.Type, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// User error types
const (
	UserErrorTypeNotFound      = "not_found"
	UserErrorTypeAlreadyExists = "already_exists"
)

// NewUserNotFoundError creates an error for when a user is not found
func NewUserNotFoundError(userID int64) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		Message: fmt.Sprintf("user %d not found", userID),
	}
}

// NewUserAlreadyExistsError creates an error for a duplicate username or email
func NewUserAlreadyExistsError(username, email string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeAlreadyExists,
		Message: fmt.Sprintf("user with username %q or email %q already exists", username, email),
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a user not-found error.
func IsNotFound(err error) bool {
	var ue *UserError
	return errors.As(err, &ue) && ue.Type == UserErrorTypeNotFound
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	var ue *UserError
	return errors.As(err, &ue) && ue.Type == UserErrorTypeAlreadyExists
}
