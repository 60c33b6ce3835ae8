package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetspace/shared/failure"
	"meetspace/transport/http/response"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Error {
	t.Helper()

	var body response.Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "scheduling conflict",
			err:     failure.SchedulingConflictError,
			code:    http.StatusBadRequest,
			message: failure.SchedulingConflictError.Message,
		},
		{
			name:    "wrapped failure keeps its code",
			err:     fmt.Errorf("update: %w", failure.NotFound("meeting")),
			code:    http.StatusNotFound,
			message: failure.NotFound("meeting").Error(),
		},
		{
			name:    "validation",
			err:     failure.Validation("title is required"),
			code:    http.StatusUnprocessableEntity,
			message: "title is required",
		},
		{
			name:    "internal details are hidden",
			err:     errors.New("pq: relation \"meetings\" does not exist"),
			code:    http.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decodeError(t, rec)
			assert.True(t, body.Error)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "m1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"m1"}}`, rec.Body.String())
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}
