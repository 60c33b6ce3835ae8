package model

import (
	"meetspace/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldLocation    = "location"
	FieldCapacity    = "capacity"
	FieldResources   = "resources"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldActive      = "active"
)

// Room is a bookable space. Inactive rooms stay listed but accept no new meetings.
type Room struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Location    string         `db:"location"`
	Capacity    int            `db:"capacity"`
	Resources   pq.StringArray `db:"resources"`
	Description *string        `db:"description"`
	Image       string         `db:"image"`
	Active      bool           `db:"active"`
	model.Metadata
}

// Label is how a room is presented in pickers.
func (r Room) Label() string {
	if r.Location == "" {
		return r.Name
	}

	return r.Name + " (" + r.Location + ")"
}
