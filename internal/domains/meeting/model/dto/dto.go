package dto

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"meetspace/internal/domains/meeting/conflict"
	"meetspace/internal/domains/meeting/model"
	"meetspace/shared"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	gModel "meetspace/shared/model"
	"meetspace/shared/timezone"

	"github.com/google/uuid"
)

const WarningWeekend = "this meeting is scheduled on a weekend"

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in the format YYYY-MM-DD: %w", err)
	}

	return day, nil
}

// parseClock places the clock on day so the value round-trips through a postgres TIME column.
func parseClock(day time.Time, value, field string) (time.Time, error) {
	clock, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in the format HH:MM: %w", field, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

type CreateMeetingRequest struct {
	RoomID      string  `json:"room_id"     validate:"required,uuid"`
	Title       string  `json:"title"       validate:"required,max=150"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Date        string  `json:"date"        validate:"required,date"`
	StartTime   string  `json:"start_time"  validate:"required,clock"`
	EndTime     string  `json:"end_time"    validate:"required,clock"`
}

func (c *CreateMeetingRequest) ToModel(userID, actor string) (model.Meeting, error) {
	day, err := parseDay(c.Date)
	if err != nil {
		return model.Meeting{}, err
	}

	startTime, err := parseClock(day, c.StartTime, model.FieldStartTime)
	if err != nil {
		return model.Meeting{}, err
	}

	endTime, err := parseClock(day, c.EndTime, model.FieldEndTime)
	if err != nil {
		return model.Meeting{}, err
	}

	now := timezone.Now()

	return model.Meeting{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		UserID:      userID,
		Title:       c.Title,
		Description: c.Description,
		Date:        day,
		StartTime:   startTime,
		EndTime:     endTime,
		Status:      model.StatusConfirmed,
		Metadata:    gModel.NewMetadata(now, actor),
	}, nil
}

// UpdateMeetingRequest carries a partial change; empty fields keep their stored value.
type UpdateMeetingRequest struct {
	RoomID      string  `json:"room_id"     validate:"omitempty,uuid"`
	Title       string  `json:"title"       validate:"omitempty,max=150"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Date        string  `json:"date"        validate:"omitempty,date"`
	StartTime   string  `json:"start_time"  validate:"omitempty,clock"`
	EndTime     string  `json:"end_time"    validate:"omitempty,clock"`
	Status      string  `json:"status"      validate:"omitempty,oneof=confirmed canceled"`
}

// Merge applies the request on top of current and returns the resulting meeting.
func (u *UpdateMeetingRequest) Merge(current model.Meeting, actor string) (model.Meeting, error) {
	merged := current

	if u.RoomID != "" {
		merged.RoomID = u.RoomID
	}

	if u.Title != "" {
		merged.Title = u.Title
	}

	if u.Description != nil {
		merged.Description = u.Description
	}

	if u.Status != "" {
		merged.Status = u.Status
	}

	day := current.Date
	if u.Date != "" {
		parsed, err := parseDay(u.Date)
		if err != nil {
			return model.Meeting{}, err
		}

		day = parsed
	}

	merged.Date = day

	startClock := current.StartTime.Format(constant.ClockFormat)
	if u.StartTime != "" {
		startClock = u.StartTime
	}

	endClock := current.EndTime.Format(constant.ClockFormat)
	if u.EndTime != "" {
		endClock = u.EndTime
	}

	var err error

	if merged.StartTime, err = parseClock(day, startClock, model.FieldStartTime); err != nil {
		return model.Meeting{}, err
	}

	if merged.EndTime, err = parseClock(day, endClock, model.FieldEndTime); err != nil {
		return model.Meeting{}, err
	}

	merged.ModifiedAt = timezone.Now()
	merged.ModifiedBy = actor

	return merged, nil
}

// Reschedules reports whether the change moves the meeting in time or space.
func (u *UpdateMeetingRequest) Reschedules() bool {
	return u.RoomID != "" || u.Date != "" || u.StartTime != "" || u.EndTime != ""
}

// UpdateFields lists every mutable column of m for the repository update.
func UpdateFields(m model.Meeting) map[string]any {
	return map[string]any{
		model.FieldRoomID:        m.RoomID,
		model.FieldTitle:         m.Title,
		model.FieldDescription:   m.Description,
		model.FieldDate:          m.Date,
		model.FieldStartTime:     m.StartTime,
		model.FieldEndTime:       m.EndTime,
		model.FieldStatus:        m.Status,
		constant.FieldModifiedAt: m.ModifiedAt,
		constant.FieldModifiedBy: m.ModifiedBy,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed canceled"`
}

// GetMeetingsRequest narrows a listing. Empty fields do not filter.
type GetMeetingsRequest struct {
	RoomID string `json:"room_id" validate:"omitempty,uuid"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Date   string `json:"date"    validate:"omitempty,date"`
	Status string `json:"status"  validate:"omitempty,oneof=confirmed canceled"`
}

func (g *GetMeetingsRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	g.RoomID = query.Get(model.FieldRoomID)
	g.UserID = query.Get(model.FieldUserID)
	g.Date = query.Get(model.FieldDate)
	g.Status = query.Get(model.FieldStatus)
}

func (g *GetMeetingsRequest) ToFilter() gDto.FilterGroup {
	filters := []gDto.Clause{}

	fields := []struct {
		field string
		value string
	}{
		{field: model.FieldRoomID, value: g.RoomID},
		{field: model.FieldUserID, value: g.UserID},
		{field: model.FieldDate, value: g.Date},
		{field: model.FieldStatus, value: g.Status},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}

		filters = append(filters, gDto.Filter{
			Field:    f.field,
			Value:    f.value,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// AvailabilityRequest asks whether a slot is free without booking it.
type AvailabilityRequest struct {
	RoomID    string `json:"room_id"    validate:"required,uuid"`
	Date      string `json:"date"       validate:"required,date"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
	ExcludeID string `json:"exclude_id" validate:"omitempty,uuid"`
}

func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.RoomID = query.Get(model.FieldRoomID)
	a.Date = query.Get(model.FieldDate)
	a.StartTime = query.Get(model.FieldStartTime)
	a.EndTime = query.Get(model.FieldEndTime)
	a.ExcludeID = query.Get("exclude_id")
}

func (a *AvailabilityRequest) ToModel() (model.Meeting, error) {
	day, err := parseDay(a.Date)
	if err != nil {
		return model.Meeting{}, err
	}

	startTime, err := parseClock(day, a.StartTime, model.FieldStartTime)
	if err != nil {
		return model.Meeting{}, err
	}

	endTime, err := parseClock(day, a.EndTime, model.FieldEndTime)
	if err != nil {
		return model.Meeting{}, err
	}

	return model.Meeting{
		ID:        a.ExcludeID,
		RoomID:    a.RoomID,
		Date:      day,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.StatusConfirmed,
	}, nil
}

type AvailabilityResponse struct {
	Available bool                  `json:"available"`
	Conflict  *OccupiedSlotResponse `json:"conflict,omitempty"`
}

type MeetingResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	RoomName      string  `json:"room_name,omitempty"`
	UserID        string  `json:"user_id"`
	OrganizerName string  `json:"organizer_name,omitempty"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        string  `json:"status"`
	Warning       string  `json:"warning,omitempty"`
	gDto.Metadata
}

func (r *MeetingResponse) FromModel(model model.Meeting) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.UserID = model.UserID
	r.OrganizerName = model.OrganizerName
	r.Title = model.Title
	r.Description = model.Description
	r.Date = model.Date.Format(constant.DayFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.EndTime = model.EndTime.Format(constant.ClockFormat)
	r.Status = model.Status
	r.Metadata = gDto.NewMetadata(model.Metadata)
}

type GetMeetingsResponse struct {
	Meetings  []MeetingResponse `json:"meetings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMeetingsResponse) FromModels(models []model.Meeting, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Meetings = make([]MeetingResponse, len(models))
	for i, mod := range models {
		r.Meetings[i].FromModel(mod)
	}
}

type OccupiedSlotResponse struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (o *OccupiedSlotResponse) FromModel(model model.Meeting) {
	o.MeetingID = model.ID
	o.Title = model.Title
	o.StartTime = model.StartTime.Format(constant.ClockFormat)
	o.EndTime = model.EndTime.Format(constant.ClockFormat)
}

// RoomOccupancyResponse lists the confirmed intervals of one room on one day, ordered by start.
type RoomOccupancyResponse struct {
	RoomID   string                 `json:"room_id"`
	Date     string                 `json:"date"`
	Occupied []OccupiedSlotResponse `json:"occupied"`
}

func (r *RoomOccupancyResponse) FromModels(roomID, date string, models []model.Meeting) {
	r.RoomID = roomID
	r.Date = date
	r.Occupied = make([]OccupiedSlotResponse, len(models))

	for i, mod := range models {
		r.Occupied[i].FromModel(mod)
	}
}

type RoomOccupancySummary struct {
	RoomID            string  `json:"room_id"`
	RoomName          string  `json:"room_name"`
	ReservationsCount int     `json:"reservations_count"`
	Hours             float64 `json:"hours"`
}

// OccupancySummaryResponse carries the per room figures plus chart ready labels and data.
type OccupancySummaryResponse struct {
	Date   string                 `json:"date"`
	Rooms  []RoomOccupancySummary `json:"rooms"`
	Labels []string               `json:"labels"`
	Data   []float64              `json:"data"`
}

func (o *OccupancySummaryResponse) FromModels(date string, models []model.RoomOccupancy) {
	o.Date = date
	o.Rooms = make([]RoomOccupancySummary, len(models))
	o.Labels = make([]string, len(models))
	o.Data = make([]float64, len(models))

	for i, mod := range models {
		o.Rooms[i] = RoomOccupancySummary{
			RoomID:            mod.RoomID,
			RoomName:          mod.RoomName,
			ReservationsCount: mod.ReservationsCount,
			Hours:             mod.Hours,
		}
		o.Labels[i] = mod.RoomName
		o.Data[i] = mod.Hours
	}
}

// SortByStart orders meetings by date then start time.
func SortByStart(models []model.Meeting) {
	slices.SortStableFunc(models, func(a, b model.Meeting) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}

		return conflict.FromClock(a.StartTime) - conflict.FromClock(b.StartTime)
	})
}
