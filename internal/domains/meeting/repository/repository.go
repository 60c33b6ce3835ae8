package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"meetspace/infras/otel"
	"meetspace/infras/postgres"
	"meetspace/internal/domains/meeting/model"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/logger"
	gRepo "meetspace/shared/repository"

	"github.com/jmoiron/sqlx"
)

const queryOccupancySummary = `
SELECT rooms.id AS room_id,
       rooms.name AS room_name,
       COUNT(meetings.id) AS reservations_count,
       COALESCE(SUM(EXTRACT(EPOCH FROM (meetings.end_time - meetings.start_time)) / 3600), 0)::float8 AS hours
FROM rooms
LEFT JOIN meetings
       ON meetings.room_id = rooms.id
      AND meetings.date = :date
      AND meetings.status = :status
WHERE rooms.active = TRUE
GROUP BY rooms.id, rooms.name
ORDER BY rooms.name`

type Meeting interface {
	Insert(ctx context.Context, model model.Meeting) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Meeting) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Meeting, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meeting, error)
	GetAllTx(ctx context.Context, tx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meeting, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	OccupancySummary(ctx context.Context, date string) ([]model.RoomOccupancy, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Meeting]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Meeting {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Meeting](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OccupancySummary totals the confirmed bookings of every active room on date.
func (r *repositoryImpl) OccupancySummary(ctx context.Context, date string) ([]model.RoomOccupancy, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".meeting.OccupancySummary")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryOccupancySummary)

	var res []model.RoomOccupancy

	prepare, err := r.db.Read.PrepareNamedContext(ctx, queryOccupancySummary)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	args := map[string]any{
		model.FieldDate:   date,
		model.FieldStatus: model.StatusConfirmed,
	}

	if err = prepare.SelectContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get occupancy summary (%s): %w", model.EntityName, err)
	}

	return res, nil
}
