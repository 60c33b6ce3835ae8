package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "meetspace/infras/otel/mocks"
	roomMocks "meetspace/internal/domains/room/mocks"
	roomModel "meetspace/internal/domains/room/model"
	"meetspace/internal/domains/selects/model/dto"
	"meetspace/internal/domains/selects/service"
	userMocks "meetspace/internal/domains/user/mocks"
	userModel "meetspace/internal/domains/user/model"
	gDto "meetspace/shared/dto"
)

func TestSelects(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := userMocks.NewMockUser(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)
	svc := service.New(users, rooms, otelMocks.NewOtel())

	t.Run("rooms are labelled with their location", func(t *testing.T) {
		rooms.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
				assert.Equal(t, roomModel.FieldName, params.SortBy)
				assert.Len(t, filter.Filters, 1)

				return []roomModel.Room{
					{ID: "r1", Name: "Board", Location: "3rd floor"},
					{ID: "r2", Name: "Focus"},
				}, nil
			})

		res, err := svc.Rooms(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []dto.Option{
			{Value: "r1", Label: "Board (3rd floor)"},
			{Value: "r2", Label: "Focus"},
		}, res)
	})

	t.Run("users", func(t *testing.T) {
		users.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]userModel.User{{ID: "u1", Name: "Ana", Email: "ana@meetspace.io"}}, nil)

		res, err := svc.Users(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []dto.Option{{Value: "u1", Label: "Ana (ana@meetspace.io)"}}, res)
	})

	t.Run("users error", func(t *testing.T) {
		users.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		_, err := svc.Users(context.Background())

		assert.Error(t, err)
	})

	t.Run("meeting statuses", func(t *testing.T) {
		assert.Equal(t, []dto.Option{
			{Value: "confirmed", Label: "Confirmed"},
			{Value: "canceled", Label: "Canceled"},
		}, svc.MeetingStatuses())
	})
}
