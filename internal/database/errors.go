package database

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrEmptyUserID        = errors.New("user id is empty")
	ErrInvalidCategory    = errors.New("category cannot be password protected")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrPasswordAlreadySet = errors.New("password already set")
	ErrPasswordNotSet     = errors.New("no password set for category")
	ErrPasswordMismatch   = errors.New("password does not match")
)
