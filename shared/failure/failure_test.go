package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"meetspace/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestSchedulingFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
	}{
		{name: "invalid time range", failure: failure.InvalidTimeRangeError, code: http.StatusBadRequest},
		{name: "scheduling conflict", failure: failure.SchedulingConflictError, code: http.StatusBadRequest},
		{name: "room not found", failure: failure.RoomNotFoundError, code: http.StatusBadRequest},
		{name: "forbidden", failure: failure.ForbiddenError, code: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.NotEmpty(t, tt.failure.Error())

			wrapped := fmt.Errorf("create meeting: %w", tt.failure)
			assert.ErrorIs(t, wrapped, tt.failure)
			assert.Equal(t, tt.code, failure.GetCode(wrapped))
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{name: "validation", err: failure.Validation("title is required"), code: http.StatusUnprocessableEntity, msg: "title is required"},
		{name: "bad request", err: failure.BadRequest(errors.New("bad payload")), code: http.StatusBadRequest, msg: "bad payload"},
		{name: "bad request from string", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest, msg: "bad"},
		{name: "unauthorized", err: failure.Unauthorized("missing token"), code: http.StatusUnauthorized, msg: "missing token"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, msg: "boom"},
		{name: "not found", err: failure.NotFound("meeting not found"), code: http.StatusNotFound, msg: "meeting not found"},
		{name: "custom", err: failure.New(http.StatusTooManyRequests, "slow down"), code: http.StatusTooManyRequests, msg: "slow down"},
		{name: "forbidden", err: failure.Forbidden("not yours"), code: http.StatusForbidden, msg: "not yours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestNilErrorConstructors(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("database down")))
}
