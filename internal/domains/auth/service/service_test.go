package service_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meetspace/config"
	"meetspace/infras/jwt"
	jwtMocks "meetspace/infras/jwt/mocks"
	"meetspace/infras/kafka"
	kafkaMocks "meetspace/infras/kafka/mocks"
	otelMocks "meetspace/infras/otel/mocks"
	"meetspace/internal/domains/auth/model/dto"
	"meetspace/internal/domains/auth/service"
	userMocks "meetspace/internal/domains/user/mocks"
	userModel "meetspace/internal/domains/user/model"
	userDto "meetspace/internal/domains/user/model/dto"
	"meetspace/permissions"
	"meetspace/shared/cache"
	cacheMocks "meetspace/shared/cache/mocks"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
	"meetspace/shared/password"
)

type fixture struct {
	users *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.PasswordResetTTLMinutes = 30
	cfg.Kafka.Topic.PasswordReset = "meetspace.password-reset"

	f := &fixture{
		users: userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, cfg, f.cache, f.kafka, otelMocks.NewOtel(), f.jwt)

	return f
}

func claims(tokenID, userID string) *jwt.Claims {
	return &jwt.Claims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func registerRequest(role string) dto.RegisterRequest {
	return dto.RegisterRequest{
		CreateUserRequest: userDto.CreateUserRequest{
			Name:                 "Ana Souza",
			Email:                "ana@meetspace.io",
			CPF:                  "529.982.247-25",
			Password:             "s3cretpass",
			PasswordConfirmation: "s3cretpass",
		},
		Role: role,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("self registration is always a user", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
			assert.Equal(t, constant.RoleUser, user.Role)
			assert.Equal(t, constant.ContextGuest, user.CreatedBy)
			assert.Equal(t, "52998224725", user.CPF)

			return nil
		})

		res, err := f.svc.Register(context.Background(), permissions.Identity{}, registerRequest(constant.RoleAdmin))

		require.NoError(t, err)
		assert.Equal(t, constant.RoleUser, res.Role)
	})

	t.Run("admins may register admins", func(t *testing.T) {
		f := newFixture(t)

		admin := permissions.Identity{UserID: "admin-id", Email: "admin@meetspace.io", Role: constant.RoleAdmin}

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
		f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Register(context.Background(), admin, registerRequest(constant.RoleAdmin))

		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
		assert.Equal(t, admin.Email, res.CreatedBy)
	})

	t.Run("taken email", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), permissions.Identity{}, registerRequest(""))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "email already registered")
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("s3cretpass")
	require.NoError(t, err)

	user := userModel.User{ID: "user-id", Name: "Ana", Email: "ana@meetspace.io", CPF: "52998224725", Password: hashed, Role: constant.RoleUser}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
			assert.Equal(t, "52998224725", filter.Filters[0].(gDto.Filter).Value)

			return user, nil
		})
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Role).
			Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil)

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{CPF: "529.982.247-25", Password: "s3cretpass"})

		require.NoError(t, err)
		assert.Equal(t, "access", res.AccessToken)
		assert.Equal(t, constant.RoleUser, res.Role)
		assert.Equal(t, "Ana", res.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{CPF: user.CPF, Password: "nope"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown cpf", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{CPF: "111.444.777-35", Password: "s3cretpass"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("t1", "user-id"), nil)
		f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:t1", gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-id", Email: "ana@meetspace.io", Role: constant.RoleUser}, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-id", "ana@meetspace.io", constant.RoleUser).
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)
		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:t1", "user-id", gomock.Any()).Return(nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("t1", "user-id"), nil)
		f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:t1", gomock.Any()).Return(nil)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "garbage", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(claims("a1", "user-id"), nil)
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims("r1", "user-id"), nil)
	f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:a1", "user-id", gomock.Any()).Return(nil)
	f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:r1", "user-id", gomock.Any()).Return(nil)

	err := f.svc.Logout(context.Background(), dto.LogoutRequest{AccessToken: "access", RefreshToken: "refresh"})

	assert.NoError(t, err)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("unknown email succeeds silently", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		assert.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "ghost@meetspace.io"}))
	})

	t.Run("stores a token and publishes it", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-id", Email: "ana@meetspace.io"}, nil)

		var stored string
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), "user-id", 1800).DoAndReturn(func(_ context.Context, key string, _ any, _ int) error {
			stored = key

			return nil
		})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "meetspace.password-reset", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				event := messages[0].Value.(dto.PasswordResetEvent)
				assert.Equal(t, "auth:reset:"+event.Token, stored)
				assert.Equal(t, "ana@meetspace.io", event.Email)

				return nil
			})

		assert.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "ana@meetspace.io"}))
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	req := dto.ResetPasswordRequest{Token: "0b8f2f5c-9a43-4c1e-8d7a-3f6e2b1c0d9e", Password: "n3wpassword", PasswordConfirmation: "n3wpassword"}

	t.Run("valid token", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Take(gomock.Any(), "auth:reset:"+req.Token, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*string) = "user-id"

			return nil
		})
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.NoError(t, password.Verify("n3wpassword", fields[userModel.FieldPassword].(string)))

			return nil
		})

		assert.NoError(t, f.svc.ResetPassword(context.Background(), req))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		err := f.svc.ResetPassword(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, err := password.Hash("0ldpassword")
	require.NoError(t, err)

	identity := permissions.Identity{UserID: "user-id", Email: "ana@meetspace.io", Role: constant.RoleUser}

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-id", Password: hashed}, nil)

		err := f.svc.ChangePassword(context.Background(), identity, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "n3wpassword"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-id", Password: hashed}, nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.ChangePassword(context.Background(), identity, dto.ChangePasswordRequest{CurrentPassword: "0ldpassword", NewPassword: "n3wpassword"})

		assert.NoError(t, err)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ChangePassword(context.Background(), permissions.Identity{}, dto.ChangePasswordRequest{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
