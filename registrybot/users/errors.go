package users

import "errors"

var (
	// ErrNameTaken reports that an account with the requested name already exists.
	ErrNameTaken = errors.New("users: name already taken")
	// ErrInvalidName reports that the name failed format validation.
	ErrInvalidName = errors.New("users: invalid name")
	// ErrWeakPassword reports that the password failed the strength policy.
	ErrWeakPassword = errors.New("users: weak password")
)
