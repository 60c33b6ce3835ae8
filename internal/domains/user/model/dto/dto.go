package dto

import (
	"net/http"
	"strings"

	"meetspace/internal/domains/user/model"
	"meetspace/shared"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	gModel "meetspace/shared/model"
	"meetspace/shared/timezone"
	"meetspace/shared/validator"

	"github.com/google/uuid"
)

// CreateUserRequest is shared by self registration and admin provisioning.
type CreateUserRequest struct {
	Name                 string `json:"name"                  validate:"required,max=150"`
	Email                string `json:"email"                 validate:"required,email,max=150"`
	CPF                  string `json:"cpf"                   validate:"required,cpf"`
	Password             string `json:"password"              validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

func (r *CreateUserRequest) ToModel(actor, hashedPassword, role string) model.User {
	now := timezone.Now()

	return model.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		CPF:      validator.NormalizeCPF(r.CPF),
		Password: hashedPassword,
		Role:     role,
		Metadata: gModel.NewMetadata(now, actor),
	}
}

type UpdateUserRequest struct {
	Name  string `json:"name"  validate:"omitempty,max=150"`
	Email string `json:"email" validate:"omitempty,email,max=150"`
	CPF   string `json:"cpf"   validate:"omitempty,cpf"`
	Role  string `json:"role"  validate:"omitempty,oneof=user admin"`
}

// ToFields lists the columns the request changes. Zero values are left out.
func (u *UpdateUserRequest) ToFields(actor string) map[string]any {
	fields := map[string]any{}

	if u.Name != "" {
		fields[model.FieldName] = strings.TrimSpace(u.Name)
	}

	if u.Email != "" {
		fields[model.FieldEmail] = strings.ToLower(strings.TrimSpace(u.Email))
	}

	if u.CPF != "" {
		fields[model.FieldCPF] = validator.NormalizeCPF(u.CPF)
	}

	if u.Role != "" {
		fields[model.FieldRole] = u.Role
	}

	if len(fields) > 0 {
		fields[constant.FieldModifiedAt] = timezone.Now()
		fields[constant.FieldModifiedBy] = actor
	}

	return fields
}

type GetUsersRequest struct {
	Name  string
	Email string
	Role  string
}

func (g *GetUsersRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	g.Name = query.Get(model.FieldName)
	g.Email = query.Get(model.FieldEmail)
	g.Role = query.Get(model.FieldRole)
}

func (g *GetUsersRequest) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []gDto.Clause{},
	}

	if g.Name != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: g.Name, Table: model.TableName,
		})
	}

	if g.Email != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: g.Email, Table: model.TableName,
		})
	}

	if g.Role != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Value: g.Role, Table: model.TableName,
		})
	}

	return filter
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Role  string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.CPF = model.CPF
	r.Role = model.Role
	r.Metadata = gDto.NewMetadata(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// SummaryResponse feeds the admin dashboard counters.
type SummaryResponse struct {
	TotalMeetings int `json:"total_meetings"`
	TotalRooms    int `json:"total_rooms"`
	TotalUsers    int `json:"total_users"`
}
