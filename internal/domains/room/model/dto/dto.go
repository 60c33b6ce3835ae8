package dto

import (
	"mime/multipart"
	"net/http"
	"strings"

	"meetspace/internal/domains/room/model"
	"meetspace/shared"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	gModel "meetspace/shared/model"
	"meetspace/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ParseResources accepts repeated form values as well as a single comma separated value.
func ParseResources(values []string) []string {
	res := []string{}

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				res = append(res, part)
			}
		}
	}

	return res
}

type CreateRoomRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Location    string                `json:"location"    validate:"omitempty,max=100"`
	Capacity    int                   `json:"capacity"    validate:"omitempty,min=0"`
	Resources   []string              `json:"resources"   validate:"omitempty,dive,max=50"`
	Description *string               `json:"description" validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) FromForm(r *http.Request) {
	c.Name = r.FormValue(model.FieldName)
	c.Location = r.FormValue(model.FieldLocation)

	if capacity, err := shared.ConvertStringToInt(r.FormValue(model.FieldCapacity)); err == nil {
		c.Capacity = capacity
	}

	if r.MultipartForm != nil {
		c.Resources = ParseResources(r.MultipartForm.Value[model.FieldResources])
	}

	if description := r.FormValue(model.FieldDescription); description != "" {
		c.Description = &description
	}

	c.Active = shared.ConvertStringToBool(r.FormValue(model.FieldActive))
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	resources := c.Resources
	if resources == nil {
		resources = []string{}
	}

	now := timezone.Now()

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Location:    c.Location,
		Capacity:    c.Capacity,
		Resources:   pq.StringArray(resources),
		Description: c.Description,
		Image:       imageURL,
		Active:      active,
		Metadata:    gModel.NewMetadata(now, user),
	}
}

type UpdateRoomRequest struct {
	Name        string                `json:"name"        validate:"omitempty,max=100"`
	Location    string                `json:"location"    validate:"omitempty,max=100"`
	Capacity    *int                  `json:"capacity"    validate:"omitempty,min=0"`
	Resources   []string              `json:"resources"   validate:"omitempty,dive,max=50"`
	Description *string               `json:"description" validate:"omitempty,max=1000"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (u *UpdateRoomRequest) FromForm(r *http.Request) {
	u.Name = r.FormValue(model.FieldName)
	u.Location = r.FormValue(model.FieldLocation)

	if capacity, err := shared.ConvertStringToInt(r.FormValue(model.FieldCapacity)); err == nil {
		u.Capacity = &capacity
	}

	if r.MultipartForm != nil {
		if values, ok := r.MultipartForm.Value[model.FieldResources]; ok {
			u.Resources = ParseResources(values)
		}
	}

	if _, ok := r.Form[model.FieldDescription]; ok {
		description := r.FormValue(model.FieldDescription)
		u.Description = &description
	}

	u.Active = shared.ConvertStringToBool(r.FormValue(model.FieldActive))
}

// ToFields lists the columns the request changes. Zero values are left out.
func (u *UpdateRoomRequest) ToFields(user string) map[string]any {
	fields := map[string]any{}

	if u.Name != "" {
		fields[model.FieldName] = u.Name
	}

	if u.Location != "" {
		fields[model.FieldLocation] = u.Location
	}

	if u.Capacity != nil {
		fields[model.FieldCapacity] = *u.Capacity
	}

	if u.Resources != nil {
		fields[model.FieldResources] = pq.StringArray(u.Resources)
	}

	if u.Description != nil {
		fields[model.FieldDescription] = u.Description
	}

	if u.Active != nil {
		fields[model.FieldActive] = *u.Active
	}

	if len(fields) > 0 {
		fields[constant.FieldModifiedAt] = timezone.Now()
		fields[constant.FieldModifiedBy] = user
	}

	return fields
}

type GetRoomsRequest struct {
	Name     string
	Location string
	Active   *bool
}

func (g *GetRoomsRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	g.Name = query.Get(model.FieldName)
	g.Location = query.Get(model.FieldLocation)
	g.Active = shared.ConvertStringToBool(query.Get(model.FieldActive))
}

func (g *GetRoomsRequest) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []gDto.Clause{},
	}

	if g.Name != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: g.Name, Table: model.TableName,
		})
	}

	if g.Location != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldLocation, Operator: gDto.FilterOperatorLike, Value: g.Location, Table: model.TableName,
		})
	}

	if g.Active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: *g.Active, Table: model.TableName,
		})
	}

	return filter
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	Resources   []string `json:"resources"`
	Description *string  `json:"description"`
	Image       string   `json:"image"`
	Active      bool     `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Resources = []string(model.Resources)
	r.Description = model.Description
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata = gDto.NewMetadata(model.Metadata)

	if r.Resources == nil {
		r.Resources = []string{}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
