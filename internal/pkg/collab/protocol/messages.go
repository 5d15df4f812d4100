// Package protocol defines the JSON envelopes exchanged over the websocket.
// Every message is one object with a mandatory "type" discriminator; all
// other fields are type-specific. Envelopes are values and are never mutated
// after construction.
package protocol

import (
	"encoding/json"

	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
)

// Inbound message types.
const (
	TypeCreateSession = "create_session"
	TypeJoinSession   = "join_session"
	TypeFileChange    = "file_change"
	TypeFileDiff      = "file_diff"
	TypeCursorUpdate  = "cursor_update"
	TypeFileFocus     = "file_focus"
	TypeAddComment    = "add_comment"
	TypeDeleteComment = "delete_comment"
	TypeChangeRole    = "change_role"
	TypeKickUser      = "kick_user"
	TypeFullSync      = "full_sync"
)

// Outbound message types.
const (
	TypeSessionCreated = "session_created"
	TypeSessionJoined  = "session_joined"
	TypeUserJoined     = "user_joined"
	TypeUserLeft       = "user_left"
	TypeFileUpdate     = "file_update"
	TypeCommentAdded   = "comment_added"
	TypeCommentDeleted = "comment_deleted"
	TypeRoleChanged    = "role_changed"
	TypeKicked         = "kicked"
	TypeSessionClosed  = "session_closed"
	TypeError          = "error"
	TypeSyncRequest    = "sync_request"
	TypeLiveReload     = "live_reload"
)

// Range addresses a span of text within a file.
type Range struct {
	StartLine int `json:"startLine"`
	StartChar int `json:"startChar"`
	EndLine   int `json:"endLine"`
	EndChar   int `json:"endChar"`
}

// Change is one ranged edit inside a file diff.
type Change struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// File carries full file content during a host-driven sync.
type File struct {
	FilePath string `json:"filePath"`
	Content  string `json:"content"`
}

// Inbound is the client-to-server envelope. Fields beyond Type are only
// meaningful for the message types that use them; the dispatcher picks what
// it needs and ignores the rest, so unrelated client traffic (preview
// connections) decodes harmlessly.
type Inbound struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName,omitempty"`
	SessionCode string `json:"sessionCode,omitempty"`

	FilePath string   `json:"filePath,omitempty"`
	Content  string   `json:"content,omitempty"`
	Changes  []Change `json:"changes,omitempty"`

	Line               int  `json:"line,omitempty"`
	Character          int  `json:"character,omitempty"`
	SelectionStartLine *int `json:"selectionStartLine,omitempty"`
	SelectionStartChar *int `json:"selectionStartChar,omitempty"`
	SelectionEndLine   *int `json:"selectionEndLine,omitempty"`
	SelectionEndChar   *int `json:"selectionEndChar,omitempty"`

	Text      string `json:"text,omitempty"`
	CommentID string `json:"commentId,omitempty"`

	TargetUserID string `json:"targetUserId,omitempty"`
	NewRole      string `json:"newRole,omitempty"`

	Files []File `json:"files,omitempty"`
}

// SessionCreated is the reply to a successful create_session.
type SessionCreated struct {
	Type        string            `json:"type"`
	SessionCode string            `json:"sessionCode"`
	UserID      string            `json:"userId"`
	Role        collab.Role       `json:"role"`
	Users       []collab.UserInfo `json:"users"`
}

// SessionJoined is the reply to a successful join_session. Unlike
// SessionCreated it includes the comment overlay so the joiner can render
// existing annotations immediately.
type SessionJoined struct {
	Type        string            `json:"type"`
	SessionCode string            `json:"sessionCode"`
	UserID      string            `json:"userId"`
	Role        collab.Role       `json:"role"`
	Users       []collab.UserInfo `json:"users"`
	Comments    []collab.Comment  `json:"comments"`
}

// UserJoined announces a new roster member to everyone else.
type UserJoined struct {
	Type        string            `json:"type"`
	UserID      string            `json:"userId"`
	DisplayName string            `json:"displayName"`
	Role        collab.Role       `json:"role"`
	Users       []collab.UserInfo `json:"users"`
}

// UserLeft announces a departure (disconnect or kick) with the reduced
// roster.
type UserLeft struct {
	Type        string            `json:"type"`
	UserID      string            `json:"userId"`
	DisplayName string            `json:"displayName"`
	Reason      string            `json:"reason"`
	Users       []collab.UserInfo `json:"users"`
}

// FileUpdate relays a full-content file change.
type FileUpdate struct {
	Type     string `json:"type"`
	FilePath string `json:"filePath"`
	Content  string `json:"content"`
	UserID   string `json:"userId"`
}

// FileDiff relays ranged edits. The server applies no ordering or merge
// logic; overlapping concurrent diffs interleave as they arrive.
type FileDiff struct {
	Type     string   `json:"type"`
	FilePath string   `json:"filePath"`
	Changes  []Change `json:"changes"`
	UserID   string   `json:"userId"`
}

// FileFocus relays a host/admin "follow me" signal.
type FileFocus struct {
	Type        string `json:"type"`
	FilePath    string `json:"filePath"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// CursorUpdate relays a cursor position, with an optional selection range.
type CursorUpdate struct {
	Type               string `json:"type"`
	UserID             string `json:"userId"`
	DisplayName        string `json:"displayName"`
	FilePath           string `json:"filePath"`
	Line               int    `json:"line"`
	Character          int    `json:"character"`
	SelectionStartLine *int   `json:"selectionStartLine,omitempty"`
	SelectionStartChar *int   `json:"selectionStartChar,omitempty"`
	SelectionEndLine   *int   `json:"selectionEndLine,omitempty"`
	SelectionEndChar   *int   `json:"selectionEndChar,omitempty"`
}

// CommentAdded confirms a new comment to the whole roster, author included.
type CommentAdded struct {
	Type    string         `json:"type"`
	Comment collab.Comment `json:"comment"`
}

// CommentDeleted announces a comment removal.
type CommentDeleted struct {
	Type      string `json:"type"`
	CommentID string `json:"commentId"`
}

// RoleChanged announces a role update with the refreshed roster.
type RoleChanged struct {
	Type    string            `json:"type"`
	UserID  string            `json:"userId"`
	OldRole collab.Role       `json:"oldRole"`
	NewRole collab.Role       `json:"newRole"`
	Users   []collab.UserInfo `json:"users"`
}

// Kicked tells a participant it was removed; its connection closes right
// after.
type Kicked struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// SessionClosed tells remaining participants the host ended the session.
type SessionClosed struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Error reports an authorization or lookup failure to the sender only.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SyncRequest asks the host to push a full sync to one participant.
type SyncRequest struct {
	Type         string `json:"type"`
	TargetUserID string `json:"targetUserId"`
}

// FullSync carries complete file contents to exactly one participant.
type FullSync struct {
	Type  string `json:"type"`
	Files []File `json:"files"`
}

// LiveReload signals preview connections to refresh.
type LiveReload struct {
	Type string `json:"type"`
}

// Marshal encodes an envelope, returning nil on failure. The envelope
// structs contain nothing json.Marshal can reject, so a nil here indicates
// a programming error; senders skip nil payloads.
func Marshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
