package session

import "errors"

// Sentinel errors returned by the store. ErrNotFound and ErrDecode are
// recoverable: the caller starts a fresh session instead of aborting.
// The validation errors abort the operation without touching any file.
var (
	ErrNotFound      = errors.New("session file not found")
	ErrDecode        = errors.New("session file cannot be decoded")
	ErrEmptyName     = errors.New("session name is empty after sanitization")
	ErrNameCollision = errors.New("a session file with that name already exists")
)
