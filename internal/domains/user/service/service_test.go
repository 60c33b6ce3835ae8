package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meetspace/config"
	otelMocks "meetspace/infras/otel/mocks"
	meetingMocks "meetspace/internal/domains/meeting/mocks"
	roomMocks "meetspace/internal/domains/room/mocks"
	userMocks "meetspace/internal/domains/user/mocks"
	"meetspace/internal/domains/user/model"
	"meetspace/internal/domains/user/model/dto"
	"meetspace/internal/domains/user/service"
	"meetspace/permissions"
	cacheMocks "meetspace/shared/cache/mocks"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
	"meetspace/shared/password"
)

var (
	admin  = permissions.Identity{UserID: "admin-id", Email: "admin@meetspace.io", Role: constant.RoleAdmin}
	member = permissions.Identity{UserID: "user-id", Email: "user@meetspace.io", Role: constant.RoleUser}
)

type fixture struct {
	repo     *userMocks.MockUser
	meetings *meetingMocks.MockMeeting
	rooms    *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
	svc      service.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := &fixture{
		repo:     userMocks.NewMockUser(ctrl),
		meetings: meetingMocks.NewMockMeeting(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.meetings, f.rooms, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestUserService_CreateAdmin(t *testing.T) {
	req := dto.CreateUserRequest{
		Name:                 "Ana Souza",
		Email:                "Ana@Meetspace.io",
		CPF:                  "529.982.247-25",
		Password:             "s3cretpass",
		PasswordConfirmation: "s3cretpass",
	}

	t.Run("admin provisions an admin", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
			assert.Equal(t, constant.RoleAdmin, user.Role)
			assert.Equal(t, "ana@meetspace.io", user.Email)
			assert.Equal(t, "52998224725", user.CPF)
			assert.NoError(t, password.Verify("s3cretpass", user.Password))

			return nil
		})

		res, err := f.svc.CreateAdmin(context.Background(), admin, req)

		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})

	t.Run("duplicate email or cpf", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.CreateAdmin(context.Background(), admin, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("members cannot provision admins", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateAdmin(context.Background(), member, req)

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func TestUserService_GetAll(t *testing.T) {
	t.Run("admin lists users", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{{ID: "u1", Name: "Ana"}}, nil)

		res, err := f.svc.GetAll(context.Background(), admin, gDto.QueryParams{Page: 1, Limit: 10}, dto.GetUsersRequest{Role: constant.RoleUser})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, "Ana", res.Users[0].Name)
	})

	t.Run("members cannot list", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetAll(context.Background(), member, gDto.QueryParams{}, dto.GetUsersRequest{})

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: member.UserID, Name: "Bia"}, nil)

		res, err := f.svc.Get(context.Background(), member, member.UserID)

		require.NoError(t, err)
		assert.Equal(t, "Bia", res.Name)
	})

	t.Run("someone else", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Get(context.Background(), member, "another-id")

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("members cannot promote themselves", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: member.UserID, Role: constant.RoleUser}, nil)

		_, err := f.svc.Update(context.Background(), member, member.UserID, dto.UpdateUserRequest{Role: constant.RoleAdmin})

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("members update their own name", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: member.UserID, Name: "Old", Role: constant.RoleUser}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "New", fields[model.FieldName])
			assert.NotContains(t, fields, model.FieldRole)

			return nil
		})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: member.UserID, Name: "New", Role: constant.RoleUser}, nil)

		res, err := f.svc.Update(context.Background(), member, member.UserID, dto.UpdateUserRequest{Name: " New "})

		require.NoError(t, err)
		assert.Equal(t, "New", res.Name)
	})

	t.Run("admin changes a role", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Role: constant.RoleUser}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Role: constant.RoleAdmin}, nil)

		res, err := f.svc.Update(context.Background(), admin, "u1", dto.UpdateUserRequest{Role: constant.RoleAdmin})

		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("user with meetings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(context.Background(), admin, "u1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		err := f.svc.Delete(context.Background(), member, member.UserID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Summary(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		f := newFixture(t)

		f.meetings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(42, nil)
		f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(5, nil)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(17, nil)

		res, err := f.svc.Summary(context.Background(), admin)

		require.NoError(t, err)
		assert.Equal(t, dto.SummaryResponse{TotalMeetings: 42, TotalRooms: 5, TotalUsers: 17}, res)
	})

	t.Run("members", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Summary(context.Background(), member)

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})
}
