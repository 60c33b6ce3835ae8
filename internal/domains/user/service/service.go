package service

import (
	"context"
	"fmt"

	"meetspace/config"
	"meetspace/infras/otel"
	meetingRepo "meetspace/internal/domains/meeting/repository"
	roomRepo "meetspace/internal/domains/room/repository"
	"meetspace/internal/domains/user/model"
	"meetspace/internal/domains/user/model/dto"
	"meetspace/internal/domains/user/repository"
	"meetspace/permissions"
	"meetspace/shared"
	"meetspace/shared/cache"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
	"meetspace/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

var errDuplicateUser = failure.BadRequestFromString("email or cpf already registered")

type User interface {
	CreateAdmin(ctx context.Context, identity permissions.Identity, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, identity permissions.Identity, params gDto.QueryParams, req dto.GetUsersRequest) (dto.GetUsersResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, identity permissions.Identity, id string) (dto.UserResponse, error)
	Update(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateUserRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, identity permissions.Identity, id string) error
	Summary(ctx context.Context, identity permissions.Identity) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	repo        repository.User
	meetingRepo meetingRepo.Meeting
	roomRepo    roomRepo.Room
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.User,
	meetingRepo meetingRepo.Meeting,
	roomRepo roomRepo.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) User {
	return &serviceImpl{
		repo:        repo,
		meetingRepo: meetingRepo,
		roomRepo:    roomRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// CreateAdmin provisions another administrator.
func (s *serviceImpl) CreateAdmin(ctx context.Context, identity permissions.Identity, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateAdmin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionUserCreateAdmin, constant.Empty); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(identity.Actor(), hashedPassword, constant.RoleAdmin)

	if err = s.repo.Insert(ctx, user); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, errDuplicateUser
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, identity permissions.Identity, params gDto.QueryParams, req dto.GetUsersRequest) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionUserList, constant.Empty); err != nil {
		return res, err
	}

	filter := req.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	users, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(users, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, identity permissions.Identity, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionUserRead, id); err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionUserUpdate, id); err != nil {
		return res, err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Role != constant.Empty && req.Role != current.Role {
		if err = permissions.Authorize(identity, permissions.ActionUserChangeRole, constant.Empty); err != nil {
			return res, err
		}
	}

	fields := req.ToFields(identity.Actor())
	if len(fields) == 0 {
		res.FromModel(current)

		return res, nil
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, errDuplicateUser
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	go func() {
		s.invalidate(context.WithoutCancel(ctx), id)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, identity permissions.Identity, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionUserDelete, id); err != nil {
		return err
	}

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.BadRequestFromString("user still has meetings and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("id", id).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	go func() {
		s.invalidate(context.WithoutCancel(ctx), id)
	}()

	return nil
}

// Summary counts every meeting, room and user for the admin dashboard.
func (s *serviceImpl) Summary(ctx context.Context, identity permissions.Identity) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionReportView, constant.Empty); err != nil {
		return res, err
	}

	if res.TotalMeetings, err = s.meetingRepo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count meetings")

		return res, fmt.Errorf("failed to count meetings: %w", err)
	}

	if res.TotalRooms, err = s.roomRepo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	if res.TotalUsers, err = s.repo.Count(ctx, gDto.FilterGroup{}); err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete user cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUser)
	shared.InvalidateCaches(ctx, s.cache, cacheCountUser)
}
