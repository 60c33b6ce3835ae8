package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meetspace/infras/jwt"
	"meetspace/internal/domains/auth/model/dto"
	userDto "meetspace/internal/domains/user/model/dto"
	"meetspace/shared/validator"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_Validation(t *testing.T) {
	valid := dto.RegisterRequest{
		CreateUserRequest: userDto.CreateUserRequest{
			Name:                 "Ana Souza",
			Email:                "ana@meetspace.io",
			CPF:                  "529.982.247-25",
			Password:             "s3cretpass",
			PasswordConfirmation: "s3cretpass",
		},
	}

	assert.NoError(t, validator.ValidateStruct(&valid))

	mismatch := valid
	mismatch.PasswordConfirmation = "different"
	assert.Error(t, validator.ValidateStruct(&mismatch))

	badCPF := valid
	badCPF.CPF = "123.456.789-00"
	assert.Error(t, validator.ValidateStruct(&badCPF))

	badRole := valid
	badRole.Role = "owner"
	assert.Error(t, validator.ValidateStruct(&badRole))
}

func TestResetPasswordRequest_Validation(t *testing.T) {
	req := dto.ResetPasswordRequest{
		Token:                "0b8f2f5c-9a43-4c1e-8d7a-3f6e2b1c0d9e",
		Password:             "n3wpassword",
		PasswordConfirmation: "n3wpassword",
	}

	assert.NoError(t, validator.ValidateStruct(&req))

	req.Token = "not-a-uuid"
	assert.Error(t, validator.ValidateStruct(&req))
}
