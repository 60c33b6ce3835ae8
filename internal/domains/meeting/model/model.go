package model

import (
	"time"

	"meetspace/internal/domains/meeting/conflict"
	"meetspace/shared/model"
	"meetspace/shared/timezone"
)

const (
	TableName  = "meetings"
	EntityName = "meeting"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldUserID      = "user_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldStatus      = "status"
)

const (
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

var Statuses = []string{StatusConfirmed, StatusCanceled}

// Meeting is a reservation of one room for [StartTime, EndTime) on Date.
// Only the clock part of StartTime and EndTime is meaningful.
type Meeting struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	UserID        string    `db:"user_id"`
	Title         string    `db:"title"`
	Description   *string   `db:"description"`
	Date          time.Time `db:"date"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	Status        string    `db:"status"`
	RoomName      string    `column:"name" db:"room_name"      table:"rooms"`
	OrganizerName string    `column:"name" db:"organizer_name" table:"users"`
	model.Metadata
}

func (Meeting) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = meetings.room_id LEFT JOIN users ON users.id = meetings.user_id"
}

func (m Meeting) IsConfirmed() bool {
	return m.Status == StatusConfirmed
}

func (m Meeting) Slot() conflict.Slot {
	return conflict.NewSlot(m.ID, m.StartTime, m.EndTime)
}

// StartsAt is the wall-clock start of the meeting in the application timezone.
func (m Meeting) StartsAt() time.Time {
	return timezone.At(m.Date, m.StartTime)
}

func (m Meeting) OnWeekend() bool {
	day := m.Date.Weekday()

	return day == time.Saturday || day == time.Sunday
}

// LockKey serializes writers that book the same room on the same day.
func (m Meeting) LockKey() string {
	return m.RoomID + ":" + m.Date.Format(time.DateOnly)
}

// RoomOccupancy aggregates the confirmed bookings of one room on one day.
type RoomOccupancy struct {
	RoomID            string  `db:"room_id"`
	RoomName          string  `db:"room_name"`
	ReservationsCount int     `db:"reservations_count"`
	Hours             float64 `db:"hours"`
}
