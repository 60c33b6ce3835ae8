package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"meetspace/shared/failure"
	"meetspace/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meetingPayload struct {
	Title     string `json:"title"      validate:"required,max=100"`
	RoomID    string `json:"room_id"    validate:"required"`
	Date      string `json:"date"       validate:"required,date"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

type signUpPayload struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	CPF      string `json:"cpf"      validate:"required,cpf"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
	Password string `json:"password" validate:"required,min=8"`
}

func validMeeting() meetingPayload {
	return meetingPayload{
		Title:     "Sprint planning",
		RoomID:    "room-1",
		Date:      "2030-05-10",
		StartTime: "09:00",
		EndTime:   "10:30",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *meetingPayload)
		message string
	}{
		{name: "valid", mutate: func(*meetingPayload) {}},
		{name: "missing title", mutate: func(p *meetingPayload) { p.Title = "" }, message: "title is required"},
		{name: "bad date", mutate: func(p *meetingPayload) { p.Date = "10/05/2030" }, message: "date must be a date in the format YYYY-MM-DD"},
		{name: "impossible date", mutate: func(p *meetingPayload) { p.Date = "2030-02-30" }, message: "date must be a date in the format YYYY-MM-DD"},
		{name: "bad clock", mutate: func(p *meetingPayload) { p.StartTime = "9am" }, message: "start_time must be a time in the format HH:MM"},
		{name: "clock out of range", mutate: func(p *meetingPayload) { p.EndTime = "25:00" }, message: "end_time must be a time in the format HH:MM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validMeeting()
			tt.mutate(&payload)

			err := validator.ValidateStruct(&payload)

			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_CPF(t *testing.T) {
	payload := signUpPayload{
		Name:     "Ana",
		Email:    "ana@example.com",
		CPF:      "529.982.247-25",
		Password: "s3cretpass",
	}
	assert.NoError(t, validator.ValidateStruct(&payload))

	payload.CPF = "111.111.111-11"
	err := validator.ValidateStruct(&payload)
	require.Error(t, err)
	assert.Equal(t, "cpf must be a valid CPF", err.Error())

	payload.CPF = "52998224725"
	payload.Role = "owner"
	err = validator.ValidateStruct(&payload)
	require.Error(t, err)
	assert.Equal(t, "role must be one of admin user", err.Error())
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name      string
		field     any
		tag       string
		expectErr bool
	}{
		{name: "required present", field: "x", tag: "required"},
		{name: "required empty", field: "", tag: "required", expectErr: true},
		{name: "valid email", field: "ana@example.com", tag: "email"},
		{name: "invalid email", field: "ana", tag: "email", expectErr: true},
		{name: "valid uuid", field: "0b9a4f0e-3b8f-4b8e-9d59-1d2b6d9f4c11", tag: "uuid"},
		{name: "invalid uuid", field: "room-1", tag: "uuid", expectErr: true},
		{name: "valid date", field: "2024-02-29", tag: "date"},
		{name: "invalid date", field: "2023-02-29", tag: "date", expectErr: true},
		{name: "valid clock", field: "23:59", tag: "clock"},
		{name: "invalid clock", field: "23:60", tag: "clock", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		expectErr bool
	}{
		{
			name: "valid body",
			body: `{"title":"Retro","room_id":"r1","date":"2030-01-02","start_time":"14:00","end_time":"15:00"}`,
		},
		{
			name:      "rule violation",
			body:      `{"title":"Retro","room_id":"r1","date":"2030-01-02","start_time":"2pm","end_time":"15:00"}`,
			expectErr: true,
		},
		{name: "malformed body", body: `{"title":}`, expectErr: true},
		{name: "empty object", body: `{}`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload meetingPayload
			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if !tt.expectErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
		})
	}
}

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		cpf   string
		valid bool
	}{
		{cpf: "529.982.247-25", valid: true},
		{cpf: "52998224725", valid: true},
		{cpf: "111.444.777-35", valid: true},
		{cpf: "529.982.247-26", valid: false},
		{cpf: "000.000.000-00", valid: false},
		{cpf: "1234567890", valid: false},
		{cpf: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.cpf, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.IsValidCPF(tt.cpf))
		})
	}
}

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", validator.NormalizeCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", validator.NormalizeCPF(" 529 982 247 25 "))
}
