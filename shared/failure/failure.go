// Package failure carries errors that are safe to show to API clients together with the
// HTTP status they map to. Any other error is treated as an internal error.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

// Shared values, so callers can match them with errors.Is.
var (
	ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

	InvalidTimeRangeError   = &Failure{Code: http.StatusBadRequest, Message: "the meeting date and time cannot be in the past"}
	SchedulingConflictError = &Failure{Code: http.StatusBadRequest, Message: "the room is already booked for this time slot"}
	RoomNotFoundError       = &Failure{Code: http.StatusBadRequest, Message: "room not found"}
)

func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest returns nil for a nil err.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

// Validation is used for payloads that fail field validation or cannot be decoded.
func Validation(msg string) error {
	return New(http.StatusUnprocessableEntity, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// InternalError returns nil for a nil err.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
