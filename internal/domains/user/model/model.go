package model

import "meetspace/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldCPF      = "cpf"
	FieldPassword = "password"
	FieldRole     = "role"
)

type User struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	CPF      string `db:"cpf"`
	Password string `db:"password"`
	Role     string `db:"role"`
	model.Metadata
}

// Label is how a user is presented in pickers.
func (u User) Label() string {
	return u.Name + " (" + u.Email + ")"
}
