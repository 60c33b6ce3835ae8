package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetspace/config"
	"meetspace/infras/jwt"
	"meetspace/infras/kafka"
	"meetspace/infras/otel"
	"meetspace/internal/domains/auth/model/dto"
	userModel "meetspace/internal/domains/user/model"
	userDto "meetspace/internal/domains/user/model/dto"
	userRepo "meetspace/internal/domains/user/repository"
	"meetspace/permissions"
	"meetspace/shared"
	"meetspace/shared/cache"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
	"meetspace/shared/password"
	"meetspace/shared/timezone"
	"meetspace/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheRevokedToken  = "auth:revoked"
	cachePasswordReset = "auth:reset"
)

var errInvalidCredentials = failure.BadRequestFromString("invalid cpf or password")

type Auth interface {
	Register(ctx context.Context, identity permissions.Identity, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	IsRevoked(ctx context.Context, tokenID string) bool
	ChangePassword(ctx context.Context, identity permissions.Identity, req dto.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	kafka      kafka.Client
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		kafka:      kafka,
		otel:       otel,
		jwtService: jwt,
	}
}

func fieldFilter(field string, value any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, identity permissions.Identity, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	role := constant.RoleUser
	if identity.IsAdmin() && req.Role != constant.Empty {
		role = req.Role
	}

	user := req.ToModel(identity.Actor(), constant.Empty, role)
	if !identity.Authenticated() {
		user.CreatedBy = constant.ContextGuest
		user.ModifiedBy = constant.ContextGuest
	}

	unique := []struct {
		field string
		value string
		msg   string
	}{
		{field: userModel.FieldEmail, value: user.Email, msg: "email already registered"},
		{field: userModel.FieldCPF, value: user.CPF, msg: "cpf already registered"},
	}

	for _, u := range unique {
		exists, err := s.userRepo.Exist(ctx, fieldFilter(u.field, u.value))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if user exists")

			return res, fmt.Errorf("failed to check if user exists: %w", err)
		}

		if exists {
			return res, failure.BadRequestFromString(u.msg) // nolint:wrapcheck
		}
	}

	if user.Password, err = password.Hash(req.Password); err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.BadRequestFromString("email or cpf already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cpf := validator.NormalizeCPF(req.CPF)

	user, err := s.userRepo.Get(ctx, fieldFilter(userModel.FieldCPF, cpf))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Msg("login attempt with unknown cpf")

		return res, errInvalidCredentials
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("userID", user.ID).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.Role = user.Role
	res.Name = user.Name

	return res, nil
}

// RefreshToken trades a refresh token for a new pair. The presented token is revoked so it works once.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	if s.IsRevoked(ctx, claims.TokenID) {
		return res, failure.Unauthorized("refresh token has been revoked") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, fieldFilter(userModel.FieldID, claims.UserID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.revoke(ctx, claims)
	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.AccessToken, jwt.AccessToken)
	if err != nil {
		return failure.Unauthorized("invalid access token") // nolint:wrapcheck
	}

	s.revoke(ctx, claims)

	if req.RefreshToken == constant.Empty {
		return nil
	}

	refresh, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("ignoring invalid refresh token on logout")

		return nil
	}

	if refresh.UserID == claims.UserID {
		s.revoke(ctx, refresh)
	}

	return nil
}

// IsRevoked reports whether tokenID was logged out. Lookups that fail for reasons other than a
// missing key are logged and treated as not revoked.
func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) bool {
	if tokenID == constant.Empty {
		return false
	}

	var marker string

	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID), &marker)
	if err == nil {
		return true
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Msg("failed to check token revocation")
	}

	return false
}

func (s *serviceImpl) revoke(ctx context.Context, claims *jwt.Claims) {
	ttl := int(claims.TTL().Seconds())
	if ttl <= 0 || claims.TokenID == constant.Empty {
		return
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedToken, claims.TokenID), claims.UserID, ttl); err != nil {
		log.Error().Err(err).Str("userID", claims.UserID).Msg("failed to revoke token")
	}
}

func (s *serviceImpl) ChangePassword(ctx context.Context, identity permissions.Identity, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !identity.Authenticated() {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	filter := fieldFilter(userModel.FieldID, identity.UserID)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	return s.setPassword(ctx, filter, req.NewPassword, identity.Actor())
}

// ForgotPassword issues a single use reset token. Unknown emails succeed silently.
func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, fieldFilter(userModel.FieldEmail, req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Info().Msg("password reset requested for unknown email")

		return nil
	}

	ttl := time.Duration(s.cfg.App.PasswordResetTTLMinutes) * time.Minute
	token := uuid.NewString()

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cachePasswordReset, token), user.ID, int(ttl.Seconds())); err != nil {
		log.Error().Err(err).Msg("failed to store reset token")

		return fmt.Errorf("failed to store reset token: %w", err)
	}

	event := dto.PasswordResetEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Token:     token,
		ExpiresAt: timezone.Now().Add(ttl),
	}

	if err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.PasswordReset, kafka.Message{Key: user.ID, Value: event}); err != nil {
		log.Error().Err(err).Msg("failed to publish password reset")

		return fmt.Errorf("failed to publish password reset: %w", err)
	}

	return nil
}

func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(cachePasswordReset, req.Token)

	var userID string
	if err := s.cache.Take(ctx, key, &userID); err != nil {
		return failure.BadRequestFromString("invalid or expired reset token") // nolint:wrapcheck
	}

	return s.setPassword(ctx, fieldFilter(userModel.FieldID, userID), req.Password, userID)
}

func (s *serviceImpl) setPassword(ctx context.Context, filter gDto.FilterGroup, plain, actor string) error {
	hashedPassword, err := password.Hash(plain)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
