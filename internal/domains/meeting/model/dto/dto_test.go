package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetspace/internal/domains/meeting/model"
	"meetspace/internal/domains/meeting/model/dto"
	gDto "meetspace/shared/dto"
)

func clock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)

	return parsed
}

func TestCreateMeetingRequest_ToModel(t *testing.T) {
	req := dto.CreateMeetingRequest{
		RoomID:    "0b6f5a52-9c4a-4f0e-8f0c-8a1c1d2e3f40",
		Title:     "Sprint review",
		Date:      "2024-03-15",
		StartTime: "10:00",
		EndTime:   "11:30",
	}

	meeting, err := req.ToModel("u1", "ana@meetspace.io")

	require.NoError(t, err)
	assert.NotEmpty(t, meeting.ID)
	assert.Equal(t, "u1", meeting.UserID)
	assert.Equal(t, model.StatusConfirmed, meeting.Status)
	assert.Equal(t, "2024-03-15", meeting.Date.Format(time.DateOnly))
	assert.Equal(t, "10:00", meeting.StartTime.Format("15:04"))
	assert.Equal(t, "11:30", meeting.EndTime.Format("15:04"))
	assert.Equal(t, "ana@meetspace.io", meeting.CreatedBy)

	t.Run("bad clock", func(t *testing.T) {
		bad := req
		bad.EndTime = "25:00"

		_, err := bad.ToModel("u1", "ana@meetspace.io")
		assert.ErrorContains(t, err, "end_time")
	})
}

func TestUpdateMeetingRequest_Merge(t *testing.T) {
	current := model.Meeting{
		ID:        "m1",
		RoomID:    "r1",
		Title:     "Standup",
		Date:      clock(t, "2024-03-15 00:00"),
		StartTime: clock(t, "2024-03-15 09:00"),
		EndTime:   clock(t, "2024-03-15 09:15"),
		Status:    model.StatusConfirmed,
	}

	t.Run("title only keeps the slot", func(t *testing.T) {
		req := dto.UpdateMeetingRequest{Title: "Daily"}

		merged, err := req.Merge(current, "bob@meetspace.io")

		require.NoError(t, err)
		assert.False(t, req.Reschedules())
		assert.Equal(t, "Daily", merged.Title)
		assert.Equal(t, "09:00", merged.StartTime.Format("15:04"))
		assert.Equal(t, "09:15", merged.EndTime.Format("15:04"))
		assert.Equal(t, "bob@meetspace.io", merged.ModifiedBy)
	})

	t.Run("moving the day carries the clocks over", func(t *testing.T) {
		req := dto.UpdateMeetingRequest{Date: "2024-03-18", EndTime: "10:00"}

		merged, err := req.Merge(current, "bob@meetspace.io")

		require.NoError(t, err)
		assert.True(t, req.Reschedules())
		assert.Equal(t, "2024-03-18", merged.Date.Format(time.DateOnly))
		assert.Equal(t, "2024-03-18 09:00", merged.StartTime.Format("2006-01-02 15:04"))
		assert.Equal(t, "10:00", merged.EndTime.Format("15:04"))
	})

	t.Run("invalid date", func(t *testing.T) {
		req := dto.UpdateMeetingRequest{Date: "18/03/2024"}

		_, err := req.Merge(current, "bob@meetspace.io")
		assert.Error(t, err)
	})
}

func TestGetMeetingsRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/meetings?room_id=r1&status=canceled", nil)

	req := dto.GetMeetingsRequest{}
	req.FromRequest(r)

	filter := req.ToFilter()

	assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
	assert.Equal(t, []gDto.Clause{
		gDto.Filter{Field: model.FieldRoomID, Value: "r1", Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: "canceled", Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}, filter.Filters)
}

func TestSortByStart(t *testing.T) {
	meetings := []model.Meeting{
		{ID: "c", Date: clock(t, "2024-03-16 00:00"), StartTime: clock(t, "0000-01-01 08:00")},
		{ID: "b", Date: clock(t, "2024-03-15 00:00"), StartTime: clock(t, "0000-01-01 14:00")},
		{ID: "a", Date: clock(t, "2024-03-15 00:00"), StartTime: clock(t, "0000-01-01 09:30")},
	}

	dto.SortByStart(meetings)

	assert.Equal(t, "a", meetings[0].ID)
	assert.Equal(t, "b", meetings[1].ID)
	assert.Equal(t, "c", meetings[2].ID)
}

func TestOccupancySummaryResponse_FromModels(t *testing.T) {
	res := dto.OccupancySummaryResponse{}
	res.FromModels("2024-03-15", []model.RoomOccupancy{
		{RoomID: "r1", RoomName: "Board", ReservationsCount: 2, Hours: 1.5},
		{RoomID: "r2", RoomName: "Focus", ReservationsCount: 0, Hours: 0},
	})

	assert.Equal(t, "2024-03-15", res.Date)
	assert.Equal(t, []string{"Board", "Focus"}, res.Labels)
	assert.Equal(t, []float64{1.5, 0}, res.Data)
	assert.Equal(t, 2, res.Rooms[0].ReservationsCount)
}
