package collab

import "errors"

var (
	// ErrPermissionDenied indicates the sender's role is insufficient for
	// the requested mutation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUserNotFound indicates the referenced participant is not in the
	// session roster.
	ErrUserNotFound = errors.New("user not found")

	// ErrCommentNotFound indicates the referenced comment id is unknown.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrSessionClosed indicates the session was torn down (host left)
	// between lookup and use.
	ErrSessionClosed = errors.New("session closed")
)
