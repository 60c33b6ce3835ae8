package model

import "time"

const (
	EventMeetingCreated       = "meeting_created"
	EventMeetingUpdated       = "meeting_updated"
	EventMeetingStatusChanged = "meeting_status_changed"
	EventMeetingDeleted       = "meeting_deleted"
)

// Event is published to the meeting topic, keyed by room id so a room's history stays ordered.
type Event struct {
	Type       string    `json:"type"`
	MeetingID  string    `json:"meeting_id"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}
