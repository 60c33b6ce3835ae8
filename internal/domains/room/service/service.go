package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"meetspace/config"
	"meetspace/infras/otel"
	"meetspace/infras/s3"
	"meetspace/internal/domains/room/model"
	"meetspace/internal/domains/room/model/dto"
	"meetspace/internal/domains/room/repository"
	"meetspace/permissions"
	"meetspace/shared"
	"meetspace/shared/cache"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, identity permissions.Identity, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetRoomsRequest) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, identity permissions.Identity, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// objectKey names the stored image of a room, keeping the uploaded extension.
func objectKey(roomID string, header *multipart.FileHeader) string {
	return fmt.Sprintf("%s/%s/%s%s", model.TableName, roomID, uuid.NewString(), strings.ToLower(path.Ext(header.Filename)))
}

func (s *serviceImpl) upload(ctx context.Context, roomID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.s3.PutObject(ctx, objectKey(roomID, header), header.Header.Get(constant.RequestHeaderContentType), file, header.Size)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to upload room image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	key := s.s3.KeyFromURL(url)
	if key == constant.Empty {
		return
	}

	if err := s.s3.DeleteObject(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete room image")
	}
}

func (s *serviceImpl) Create(ctx context.Context, identity permissions.Identity, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionRoomManage, constant.Empty); err != nil {
		return res, err
	}

	room := req.ToModel(identity.Actor(), constant.Empty)

	if req.Image != nil {
		if room.Image, err = s.upload(ctx, room.ID, req.ImageFile, req.Image); err != nil {
			return res, err
		}
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		if room.Image != constant.Empty {
			s.removeImage(context.WithoutCancel(ctx), room.Image)
		}

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetRoomsRequest) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := req.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionRoomManage, constant.Empty); err != nil {
		return res, err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields := req.ToFields(identity.Actor())

	var uploaded string
	if req.Image != nil {
		if uploaded, err = s.upload(ctx, id, req.ImageFile, req.Image); err != nil {
			return res, err
		}

		fields[model.FieldImage] = uploaded
	}

	if len(fields) == 0 {
		res.FromModel(current)

		return res, nil
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		if uploaded != constant.Empty {
			s.removeImage(context.WithoutCancel(ctx), uploaded)
		}

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	go func() {
		c := context.WithoutCancel(ctx)

		if uploaded != constant.Empty && current.Image != constant.Empty {
			s.removeImage(c, current.Image)
		}

		s.invalidate(c, id)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, identity permissions.Identity, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = permissions.Authorize(identity, permissions.ActionRoomManage, constant.Empty); err != nil {
		return err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.BadRequestFromString("room still has meetings and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if current.Image != constant.Empty {
			s.removeImage(c, current.Image)
		}

		s.invalidate(c, id)
	}()

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, cacheCountRoom)
}
