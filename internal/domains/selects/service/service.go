package service

import (
	"context"
	"fmt"

	"meetspace/infras/otel"
	meetingModel "meetspace/internal/domains/meeting/model"
	roomModel "meetspace/internal/domains/room/model"
	roomRepo "meetspace/internal/domains/room/repository"
	"meetspace/internal/domains/selects/model/dto"
	userModel "meetspace/internal/domains/user/model"
	userRepo "meetspace/internal/domains/user/repository"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"

	"github.com/rs/zerolog/log"
)

var statusLabels = map[string]string{
	meetingModel.StatusConfirmed: "Confirmed",
	meetingModel.StatusCanceled:  "Canceled",
}

// Selects feeds the option lists of the booking forms.
type Selects interface {
	Users(ctx context.Context) ([]dto.Option, error)
	Rooms(ctx context.Context) ([]dto.Option, error)
	MeetingStatuses() []dto.Option
}

type serviceImpl struct {
	userRepo userRepo.User
	roomRepo roomRepo.Room
	otel     otel.Otel
}

func New(userRepo userRepo.User, roomRepo roomRepo.Room, otel otel.Otel) Selects {
	return &serviceImpl{
		userRepo: userRepo,
		roomRepo: roomRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Users(ctx context.Context) (res []dto.Option, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Users")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	users, err := s.userRepo.GetAll(ctx, gDto.QueryParams{SortBy: userModel.FieldName, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res = make([]dto.Option, len(users))
	for i, user := range users {
		res[i] = dto.Option{Value: user.ID, Label: user.Label()}
	}

	return res, nil
}

// Rooms lists only the rooms that accept bookings.
func (s *serviceImpl) Rooms(ctx context.Context) (res []dto.Option, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Filters: []gDto.Clause{
			gDto.Filter{Field: roomModel.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
		},
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = make([]dto.Option, len(rooms))
	for i, room := range rooms {
		res[i] = dto.Option{Value: room.ID, Label: room.Label()}
	}

	return res, nil
}

func (s *serviceImpl) MeetingStatuses() []dto.Option {
	res := make([]dto.Option, len(meetingModel.Statuses))
	for i, status := range meetingModel.Statuses {
		res[i] = dto.Option{Value: status, Label: statusLabels[status]}
	}

	return res
}
