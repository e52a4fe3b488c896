package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrUserIdentifierExists   = errors.New("employee identifier already in use")
	ErrUserInactive           = errors.New("user is deactivated")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrManagerAccessRequired  = errors.New("manager access required")
	ErrRoleNotAllowed         = errors.New("managers can only create employee accounts")
	ErrProfileAccessDenied    = errors.New("cannot modify another user's profile")
	ErrRoleChangeDenied       = errors.New("only admins can change roles")
)
