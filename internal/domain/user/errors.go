package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
