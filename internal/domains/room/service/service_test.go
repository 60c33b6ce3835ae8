package service_test

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"meetspace/config"
	"meetspace/infras/otel/mocks"
	s3Mocks "meetspace/infras/s3/mocks"
	roomMocks "meetspace/internal/domains/room/mocks"
	"meetspace/internal/domains/room/model"
	"meetspace/internal/domains/room/model/dto"
	"meetspace/internal/domains/room/service"
	"meetspace/permissions"
	cacheMocks "meetspace/shared/cache/mocks"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
)

var (
	admin  = permissions.Identity{UserID: "admin-id", Email: "admin@meetspace.io", Role: constant.RoleAdmin}
	member = permissions.Identity{UserID: "user-id", Email: "user@meetspace.io", Role: constant.RoleUser}
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func imageHeader() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "board-room.PNG",
		Size:     512,
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("members cannot create rooms", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), member, dto.CreateRoomRequest{Name: "Board"})

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("creates room without image", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
			assert.Equal(t, "Board", room.Name)
			assert.Equal(t, pq.StringArray{"tv", "whiteboard"}, room.Resources)
			assert.True(t, room.Active)
			assert.Equal(t, admin.Email, room.CreatedBy)

			return nil
		})

		res, err := f.svc.Create(context.Background(), admin, dto.CreateRoomRequest{
			Name:      "Board",
			Capacity:  8,
			Resources: []string{"tv", "whiteboard"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Board", res.Name)
		assert.Empty(t, res.Image)
	})

	t.Run("uploads image under the room key", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			PutObject(gomock.Any(), gomock.Any(), "image/png", gomock.Any(), int64(512)).
			DoAndReturn(func(_ context.Context, key, _ string, _ io.Reader, _ int64) (string, error) {
				assert.True(t, strings.HasPrefix(key, "rooms/"))
				assert.True(t, strings.HasSuffix(key, ".png"))

				return "https://cdn.meetspace.io/" + key, nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(context.Background(), admin, dto.CreateRoomRequest{Name: "Board", Image: imageHeader()})

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Image, "https://cdn.meetspace.io/rooms/"+res.ID+"/"))
	})

	t.Run("removes uploaded image when insert fails", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.meetspace.io/rooms/x/y.png", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.s3.EXPECT().KeyFromURL("https://cdn.meetspace.io/rooms/x/y.png").Return("rooms/x/y.png")
		f.s3.EXPECT().DeleteObject(gomock.Any(), "rooms/x/y.png").Return(nil)

		_, err := f.svc.Create(context.Background(), admin, dto.CreateRoomRequest{Name: "Board", Image: imageHeader()})

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:r1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			value.(*dto.RoomResponse).ID = "r1"

			return nil
		})

		res, err := f.svc.Get(context.Background(), "r1")

		assert.NoError(t, err)
		assert.Equal(t, "r1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{{ID: "r1", Name: "Board"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.GetRoomsRequest{Name: "Bo"})

	assert.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, []string{}, res.Rooms[0].Resources)
}

func TestRoomService_Update(t *testing.T) {
	t.Run("replaces image and drops the old one", func(t *testing.T) {
		f := newFixture(t)

		current := model.Room{ID: "r1", Name: "Board", Image: "https://cdn.meetspace.io/rooms/r1/old.png"}
		updated := current
		updated.Image = "https://cdn.meetspace.io/rooms/r1/new.png"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.s3.EXPECT().PutObject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(updated.Image, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, updated.Image, fields[model.FieldImage])

			return nil
		})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)

		deleted := make(chan string, 1)
		f.s3.EXPECT().KeyFromURL(current.Image).Return("rooms/r1/old.png")
		f.s3.EXPECT().DeleteObject(gomock.Any(), "rooms/r1/old.png").DoAndReturn(func(_ context.Context, key string) error {
			deleted <- key

			return nil
		})

		res, err := f.svc.Update(context.Background(), admin, "r1", dto.UpdateRoomRequest{Image: imageHeader()})

		assert.NoError(t, err)
		assert.Equal(t, updated.Image, res.Image)

		select {
		case key := <-deleted:
			assert.Equal(t, "rooms/r1/old.png", key)
		case <-time.After(time.Second):
			t.Fatal("old image was not removed")
		}
	})

	t.Run("no changes skips the write", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Name: "Board"}, nil)

		res, err := f.svc.Update(context.Background(), admin, "r1", dto.UpdateRoomRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "Board", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(context.Background(), admin, "missing", dto.UpdateRoomRequest{Name: "New"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("room with meetings is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(context.Background(), admin, "r1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("members cannot delete", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(context.Background(), member, "r1")

		assert.ErrorIs(t, err, failure.ForbiddenError)
	})

	t.Run("deletes room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), admin, "r1"))
	})
}
