package usecase

import "errors"

// ErrSessionNotFound indicates the session code does not resolve to an
// active session (unknown code, or the host tore it down mid-join).
var ErrSessionNotFound = errors.New("session not found")
