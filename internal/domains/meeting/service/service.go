package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"meetspace/config"
	"meetspace/infras/kafka"
	"meetspace/infras/metrics"
	"meetspace/infras/otel"
	"meetspace/infras/postgres"
	"meetspace/internal/domains/meeting/conflict"
	"meetspace/internal/domains/meeting/model"
	"meetspace/internal/domains/meeting/model/dto"
	"meetspace/internal/domains/meeting/repository"
	roomModel "meetspace/internal/domains/room/model"
	roomRepo "meetspace/internal/domains/room/repository"
	"meetspace/permissions"
	"meetspace/shared"
	"meetspace/shared/cache"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
	"meetspace/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetMeeting    = "meeting:get"
	cacheGetAllMeeting = "meeting:gets"
	cacheCountMeeting  = "meeting:count"

	operationCreate       = "create"
	operationUpdate       = "update"
	operationUpdateStatus = "update_status"

	argExcludeID = "exclude_id"
)

type Meeting interface {
	Create(ctx context.Context, identity permissions.Identity, req dto.CreateMeetingRequest) (dto.MeetingResponse, error)
	Get(ctx context.Context, id string) (dto.MeetingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetMeetingsRequest) (dto.GetMeetingsResponse, error)
	GetMine(ctx context.Context, identity permissions.Identity, params gDto.QueryParams) (dto.GetMeetingsResponse, error)
	GetByDate(ctx context.Context, date string, params gDto.QueryParams) (dto.GetMeetingsResponse, error)
	GetActive(ctx context.Context) ([]dto.MeetingResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Update(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateMeetingRequest) (dto.MeetingResponse, error)
	UpdateStatus(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateStatusRequest) (dto.MeetingResponse, error)
	Delete(ctx context.Context, identity permissions.Identity, id string) error
	RoomOccupancy(ctx context.Context, roomID, date string) (dto.RoomOccupancyResponse, error)
	OccupancySummary(ctx context.Context, date string) (dto.OccupancySummaryResponse, error)
}

type serviceImpl struct {
	repo       repository.Meeting
	roomRepo   roomRepo.Room
	transactor postgres.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Meeting,
	roomRepo roomRepo.Room,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Meeting {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// loader reads meetings either from the read pool or inside the write transaction.
type loader func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meeting, error)

func (s *serviceImpl) txLoader(tx *sqlx.Tx) loader {
	return func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meeting, error) {
		return s.repo.GetAllTx(ctx, tx, params, filter, columns...) //nolint:wrapcheck
	}
}

func (s *serviceImpl) Create(ctx context.Context, identity permissions.Identity, req dto.CreateMeetingRequest) (res dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !identity.Authenticated() {
		return res, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	meeting, err := req.ToModel(identity.UserID, identity.Actor())
	if err != nil {
		return res, failure.Validation(err.Error()) // nolint:wrapcheck
	}

	if err = s.validateSlot(meeting); err != nil {
		return res, err
	}

	room, err := s.bookableRoom(ctx, meeting.RoomID)
	if err != nil {
		return res, err
	}

	meeting.RoomName = room.Name

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.lockAndCheck(ctx, tx, meeting, constant.Empty); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, meeting) //nolint:wrapcheck
	})
	if err != nil {
		return res, s.writeError(err, operationCreate)
	}

	res.FromModel(meeting)

	if meeting.OnWeekend() {
		res.Warning = dto.WarningWeekend
	}

	metrics.IncMeetingCreated()
	s.afterWrite(ctx, model.EventMeetingCreated, meeting, identity)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetMeeting, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for meeting")

		return res, nil
	}

	meeting, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(meeting)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meeting to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetMeetingsRequest) (res dto.GetMeetingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := req.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMeeting, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for meetings")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get meetings")

		return res, fmt.Errorf("failed to get meetings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meetings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountMeeting, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count meetings")

		return res, fmt.Errorf("failed to count meetings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meeting count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, identity permissions.Identity, params gDto.QueryParams) (dto.GetMeetingsResponse, error) {
	if !identity.Authenticated() {
		return dto.GetMeetingsResponse{}, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	return s.GetAll(ctx, params, dto.GetMeetingsRequest{UserID: identity.UserID})
}

func (s *serviceImpl) GetByDate(ctx context.Context, date string, params gDto.QueryParams) (dto.GetMeetingsResponse, error) {
	if _, err := time.Parse(constant.DayFormat, date); err != nil {
		return dto.GetMeetingsResponse{}, failure.Validation("date must be a date in the format YYYY-MM-DD") // nolint:wrapcheck
	}

	if params.SortBy == constant.Empty {
		params.SortBy = model.FieldStartTime
		params.SortDir = gDto.SortDirAsc
	}

	return s.GetAll(ctx, params, dto.GetMeetingsRequest{Date: date})
}

// GetActive lists every confirmed meeting from today onwards in chronological order.
func (s *serviceImpl) GetActive(ctx context.Context) (res []dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []gDto.Clause{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldDate, Value: timezone.Today().Format(constant.DayFormat), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active meetings")

		return res, fmt.Errorf("failed to get active meetings: %w", err)
	}

	dto.SortByStart(models)

	res = make([]dto.MeetingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	candidate, err := req.ToModel()
	if err != nil {
		return res, failure.Validation(err.Error()) // nolint:wrapcheck
	}

	if !candidate.Slot().Valid() {
		return res, failure.Validation("end_time must be after start_time") // nolint:wrapcheck
	}

	clash, found, err := s.findConflict(ctx, s.repo.GetAll, candidate, req.ExcludeID)
	if err != nil {
		return res, err
	}

	res.Available = !found

	if found {
		res.Conflict = &dto.OccupiedSlotResponse{}
		res.Conflict.FromModel(clash)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateMeetingRequest) (res dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = permissions.Authorize(identity, permissions.ActionMeetingUpdate, current.UserID); err != nil {
		return res, err
	}

	merged, err := req.Merge(current, identity.Actor())
	if err != nil {
		return res, failure.Validation(err.Error()) // nolint:wrapcheck
	}

	if !merged.Slot().Valid() {
		return res, failure.Validation("end_time must be after start_time") // nolint:wrapcheck
	}

	if req.Reschedules() && merged.StartsAt().Before(timezone.Now()) {
		return res, failure.InvalidTimeRangeError
	}

	if merged.RoomID != current.RoomID {
		room, err := s.bookableRoom(ctx, merged.RoomID)
		if err != nil {
			return res, err
		}

		merged.RoomName = room.Name
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if merged.IsConfirmed() {
			if err := s.lockAndCheck(ctx, tx, merged, merged.ID); err != nil {
				return err
			}
		}

		return s.repo.UpdateTx(ctx, tx, dto.UpdateFields(merged), shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		return res, s.writeError(err, operationUpdate)
	}

	res.FromModel(merged)

	if merged.Status != current.Status {
		metrics.IncMeetingStatusChanged(merged.Status)
	}

	s.afterWrite(ctx, model.EventMeetingUpdated, merged, identity)

	return res, nil
}

// UpdateStatus moves a meeting between confirmed and canceled.
// Canceling frees the slot without checks; confirming again must find the slot still free.
func (s *serviceImpl) UpdateStatus(ctx context.Context, identity permissions.Identity, id string, req dto.UpdateStatusRequest) (res dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slices.Contains(model.Statuses, req.Status) {
		return res, failure.Validation("status must be one of confirmed canceled") // nolint:wrapcheck
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = permissions.Authorize(identity, permissions.ActionMeetingUpdateStatus, current.UserID); err != nil {
		return res, err
	}

	if current.Status == req.Status {
		res.FromModel(current)

		return res, nil
	}

	updated := current
	updated.Status = req.Status
	updated.ModifiedAt = timezone.Now()
	updated.ModifiedBy = identity.Actor()

	fields := map[string]any{
		model.FieldStatus:        updated.Status,
		constant.FieldModifiedAt: updated.ModifiedAt,
		constant.FieldModifiedBy: updated.ModifiedBy,
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if updated.IsConfirmed() {
			if err := s.lockAndCheck(ctx, tx, updated, updated.ID); err != nil {
				return err
			}
		}

		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		return res, s.writeError(err, operationUpdateStatus)
	}

	res.FromModel(updated)

	metrics.IncMeetingStatusChanged(updated.Status)
	s.afterWrite(ctx, model.EventMeetingStatusChanged, updated, identity)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, identity permissions.Identity, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = permissions.Authorize(identity, permissions.ActionMeetingDelete, current.UserID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete meeting")

		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	s.afterWrite(ctx, model.EventMeetingDeleted, current, identity)

	return nil
}

func (s *serviceImpl) RoomOccupancy(ctx context.Context, roomID, date string) (res dto.RoomOccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomOccupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := time.Parse(constant.DayFormat, date)
	if err != nil {
		return res, failure.Validation("date must be a date in the format YYYY-MM-DD") // nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	models, err := s.repo.GetAll(ctx, byStart(), occupancyFilter(roomID, day, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room occupancy")

		return res, fmt.Errorf("failed to get room occupancy: %w", err)
	}

	res.FromModels(roomID, date, models)

	return res, nil
}

func (s *serviceImpl) OccupancySummary(ctx context.Context, date string) (res dto.OccupancySummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OccupancySummary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if date == constant.Empty {
		date = timezone.Today().Format(constant.DayFormat)
	}

	if _, err = time.Parse(constant.DayFormat, date); err != nil {
		return res, failure.Validation("date must be a date in the format YYYY-MM-DD") // nolint:wrapcheck
	}

	models, err := s.repo.OccupancySummary(ctx, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupancy summary")

		return res, fmt.Errorf("failed to get occupancy summary: %w", err)
	}

	res.FromModels(date, models)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Meeting, error) {
	meeting, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get meeting")

		return meeting, fmt.Errorf("failed to get meeting: %w", err)
	}

	if meeting.ID == constant.Empty {
		return meeting, failure.NotFound("meeting not found") // nolint:wrapcheck
	}

	return meeting, nil
}

// validateSlot rejects empty or inverted ranges and anything that starts before now.
func (s *serviceImpl) validateSlot(meeting model.Meeting) error {
	if !meeting.Slot().Valid() {
		return failure.Validation("end_time must be after start_time") // nolint:wrapcheck
	}

	if meeting.StartsAt().Before(timezone.Now()) {
		return failure.InvalidTimeRangeError
	}

	return nil
}

func (s *serviceImpl) bookableRoom(ctx context.Context, roomID string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty || !room.Active {
		return room, failure.RoomNotFoundError
	}

	return room, nil
}

// lockAndCheck serializes writers on the room and day of meeting, then looks for a clash.
func (s *serviceImpl) lockAndCheck(ctx context.Context, tx *sqlx.Tx, meeting model.Meeting, excludeID string) error {
	if err := s.transactor.LockKey(ctx, tx, meeting.LockKey()); err != nil {
		return fmt.Errorf("failed to lock room schedule: %w", err)
	}

	clash, found, err := s.findConflict(ctx, s.txLoader(tx), meeting, excludeID)
	if err != nil {
		return err
	}

	if found {
		log.Info().
			Str("roomID", meeting.RoomID).
			Str("requested", meeting.Slot().String()).
			Str("conflictsWith", clash.ID).
			Msg("scheduling conflict")

		return failure.SchedulingConflictError
	}

	return nil
}

// findConflict loads the confirmed meetings of the candidate's room and day and returns the first overlap.
func (s *serviceImpl) findConflict(ctx context.Context, load loader, candidate model.Meeting, excludeID string) (model.Meeting, bool, error) {
	models, err := load(ctx, byStart(), occupancyFilter(candidate.RoomID, candidate.Date, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to load meetings for conflict check")

		return model.Meeting{}, false, fmt.Errorf("failed to load meetings for conflict check: %w", err)
	}

	slots := make([]conflict.Slot, len(models))
	for i, mod := range models {
		slots[i] = mod.Slot()
	}

	hit, found := conflict.Find(slots, candidate.Slot(), excludeID)
	if !found {
		return model.Meeting{}, false, nil
	}

	idx := slices.IndexFunc(models, func(m model.Meeting) bool { return m.ID == hit.ID })

	return models[idx], true, nil
}

func byStart() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}
}

func occupancyFilter(roomID string, day time.Time, excludeID string) gDto.FilterGroup {
	filters := []gDto.Clause{
		gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldDate, Value: day.Format(constant.DayFormat), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  argExcludeID,
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// writeError folds storage level rejections into the scheduling failures callers understand.
func (s *serviceImpl) writeError(err error, operation string) error {
	switch {
	case errors.Is(err, failure.SchedulingConflictError),
		shared.IsPqError(err, constant.PqErrorCodeExclusionViolation):
		metrics.IncSchedulingConflict(operation)

		return failure.SchedulingConflictError
	case shared.IsPqError(err, constant.PqErrorCodeFkViolation):
		return failure.RoomNotFoundError
	}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	log.Error().Err(err).Str("operation", operation).Msg("failed to write meeting")

	return fmt.Errorf("failed to %s meeting: %w", operation, err)
}

func (s *serviceImpl) afterWrite(ctx context.Context, eventType string, meeting model.Meeting, identity permissions.Identity) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMeeting, meeting.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete meeting cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllMeeting)
		shared.InvalidateCaches(c, s.cache, cacheCountMeeting)

		event := model.Event{
			Type:       eventType,
			MeetingID:  meeting.ID,
			RoomID:     meeting.RoomID,
			UserID:     meeting.UserID,
			Date:       meeting.Date.Format(constant.DayFormat),
			StartTime:  meeting.StartTime.Format(constant.ClockFormat),
			EndTime:    meeting.EndTime.Format(constant.ClockFormat),
			Status:     meeting.Status,
			Actor:      identity.Actor(),
			OccurredAt: timezone.Now(),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Meeting, kafka.Message{Key: meeting.RoomID, Value: event}); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish meeting event")
		}
	}()
}
