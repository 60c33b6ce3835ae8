package permissions

import (
	"context"
	"slices"

	"meetspace/shared/constant"
	"meetspace/shared/failure"
)

// Identity is the authenticated caller, built once by the auth middleware and passed down explicitly.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == constant.RoleAdmin
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Actor is the value stamped into created_by / modified_by.
func (i Identity) Actor() string {
	if i.Email != "" {
		return i.Email
	}

	if i.UserID != "" {
		return i.UserID
	}

	return constant.ContextSystem
}

// IdentityFromContext reads the claims the auth middleware stored on ctx.
func IdentityFromContext(ctx context.Context) Identity {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Identity{
		UserID: userID,
		Email:  email,
		Role:   role,
	}
}

type Action string

const (
	ActionMeetingUpdate       Action = "meeting:update"
	ActionMeetingUpdateStatus Action = "meeting:update_status"
	ActionMeetingDelete       Action = "meeting:delete"
	ActionMeetingListAll      Action = "meeting:list_all"
	ActionUserRead            Action = "user:read"
	ActionUserUpdate          Action = "user:update"
	ActionUserDelete          Action = "user:delete"
	ActionUserList            Action = "user:list"
	ActionUserChangeRole      Action = "user:change_role"
	ActionUserCreateAdmin     Action = "user:create_admin"
	ActionRoomManage          Action = "room:manage"
	ActionReportView          Action = "report:view"
)

// ownerActions may be performed by the owner of the resource as well as by admins.
var ownerActions = []Action{
	ActionMeetingUpdate,
	ActionMeetingUpdateStatus,
	ActionMeetingDelete,
	ActionUserRead,
	ActionUserUpdate,
	ActionUserDelete,
}

// Authorize is the single policy every mutating operation consults.
// Admins may do anything, owners may act on their own resources, everything else is forbidden.
func Authorize(identity Identity, action Action, ownerID string) error {
	if !identity.Authenticated() {
		return failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	if identity.IsAdmin() {
		return nil
	}

	if slices.Contains(ownerActions, action) && ownerID != "" && identity.UserID == ownerID {
		return nil
	}

	return failure.ForbiddenError
}
