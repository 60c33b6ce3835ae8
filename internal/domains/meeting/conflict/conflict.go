// Package conflict decides whether two bookings of the same room on the same day collide.
//
// Slots are half-open [Start, End) intervals measured in minutes since midnight, so a meeting
// ending at 11:00 and another starting at 11:00 do not overlap.
package conflict

import (
	"fmt"
	"time"
)

const minutesPerHour = 60

type Slot struct {
	ID    string
	Start int
	End   int
}

// FromClock returns the minute of day of t, ignoring its date and seconds.
func FromClock(t time.Time) int {
	return t.Hour()*minutesPerHour + t.Minute()
}

func NewSlot(id string, start, end time.Time) Slot {
	return Slot{
		ID:    id,
		Start: FromClock(start),
		End:   FromClock(end),
	}
}

// Valid reports whether the slot spans a positive amount of time.
func (s Slot) Valid() bool {
	return s.Start < s.End
}

func (s Slot) Minutes() int {
	return s.End - s.Start
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		s.Start/minutesPerHour, s.Start%minutesPerHour,
		s.End/minutesPerHour, s.End%minutesPerHour)
}

func Overlaps(a, b Slot) bool {
	return a.Start < b.End && a.End > b.Start
}

// Find returns the first slot in existing that overlaps candidate.
// Slots whose ID equals excludeID are skipped so a meeting never collides with itself.
func Find(existing []Slot, candidate Slot, excludeID string) (Slot, bool) {
	for _, slot := range existing {
		if excludeID != "" && slot.ID == excludeID {
			continue
		}

		if Overlaps(slot, candidate) {
			return slot, true
		}
	}

	return Slot{}, false
}
