package collab

// Conn is the transport half of a participant. Implementations must not
// block: a send to a closed or saturated peer returns an error instead of
// stalling the caller, so a dead receiver can never hold up a broadcast.
type Conn interface {
	Send(payload []byte) error
	Close(code int, reason string)
}

// Participant is one connected user within a session.
// Role reads and writes happen under the owning session's lock.
type Participant struct {
	ID          string
	DisplayName string
	Role        Role
	Conn        Conn
}

// UserInfo is the roster entry shape shared over the wire.
type UserInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
}

// Info returns the participant's wire representation.
func (p *Participant) Info() UserInfo {
	return UserInfo{ID: p.ID, DisplayName: p.DisplayName, Role: p.Role}
}
