package collab

import (
	"sync"
	"time"
)

// Session is the authoritative state of one collaboration: the roster, the
// host identity, and the comment overlay. Every operation runs under the
// session mutex and performs its permission check, mutation, and fan-out in
// one critical section, so messages from different connections never
// interleave mid-update and every broadcast carries a consistent roster
// snapshot.
//
// Fan-out payloads are produced by builder callbacks so the wire encoding
// stays out of the domain. Builders run while the lock is held and must not
// call back into the session. A nil payload is skipped.
type Session struct {
	Code      string
	HostID    string
	CreatedAt time.Time

	mu       sync.Mutex
	users    map[string]*Participant
	comments *CommentStore
	closed   bool
}

// NewSession creates a session with the given code and host participant.
// The host is the only participant that ever carries RoleHost.
func NewSession(code string, host *Participant) *Session {
	host.Role = RoleHost
	return &Session{
		Code:      code,
		HostID:    host.ID,
		CreatedAt: time.Now(),
		users:     map[string]*Participant{host.ID: host},
		comments:  NewCommentStore(),
	}
}

// Users returns a roster snapshot.
func (s *Session) Users() []UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usersLocked()
}

// Comments returns a snapshot of the comment overlay.
func (s *Session) Comments() []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comments.GetAll()
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// JoinPayloads builds the three envelopes produced by a join: the reply to
// the joiner, the notification to everyone else, and the sync request sent
// to the host.
type JoinPayloads func(users []UserInfo, comments []Comment) (self, others, syncReq []byte)

// Join inserts p into the roster, replies to the joiner with the session
// snapshot, notifies the rest of the roster, and asks the host to push a
// full sync to the new participant. Fails with ErrSessionClosed if the host
// already tore the session down.
func (s *Session) Join(p *Participant, build JoinPayloads) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.users[p.ID] = p

	self, others, syncReq := build(s.usersLocked(), s.comments.GetAll())
	send(p.Conn, self)
	s.broadcastLocked(others, p.ID)
	if host, ok := s.users[s.HostID]; ok && host.ID != p.ID {
		send(host.Conn, syncReq)
	}
	return nil
}

// Relay fans payload out to every roster member except the sender, provided
// allowed approves the sender's current role. The server keeps no file
// state; edits and cursor traffic pass through untouched.
func (s *Session) Relay(senderID string, allowed func(Role) bool, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sender, ok := s.users[senderID]
	if !ok {
		// Sender already removed (kicked mid-flight); nothing it may do.
		return ErrPermissionDenied
	}
	if allowed != nil && !allowed(sender.Role) {
		return ErrPermissionDenied
	}
	s.broadcastLocked(payload, senderID)
	return nil
}

// SyncTo delivers a full-sync payload from the host to one target
// participant. Only the host may push a full sync; requests from anyone
// else fail with ErrPermissionDenied and callers ignore them silently.
func (s *Session) SyncTo(senderID, targetID string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sender, ok := s.users[senderID]
	if !ok || sender.Role != RoleHost {
		return ErrPermissionDenied
	}
	target, ok := s.users[targetID]
	if !ok {
		return ErrUserNotFound
	}
	send(target.Conn, payload)
	return nil
}

// AddComment creates a comment authored by the given participant and
// broadcasts it to the entire roster, the author included (the echo is the
// author's confirmation).
func (s *Session) AddComment(id, authorID, filePath string, line int, text string, build func(Comment) []byte) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	author, ok := s.users[authorID]
	if !ok {
		return Comment{}, ErrPermissionDenied
	}
	if !CanComment(author.Role) {
		return Comment{}, ErrPermissionDenied
	}
	c := s.comments.Add(Comment{
		ID:        id,
		FilePath:  filePath,
		Line:      line,
		Text:      text,
		Author:    author.DisplayName,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	})
	s.broadcastLocked(build(c), "")
	return c, nil
}

// DeleteComment removes a comment on behalf of the sender and broadcasts
// the deletion to the entire roster. Only the comment's author, the host,
// or an admin may delete it. An unknown id reports ErrCommentNotFound
// before any permission check.
func (s *Session) DeleteComment(senderID, commentID string, build func(commentID string) []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sender, ok := s.users[senderID]
	if !ok {
		return ErrPermissionDenied
	}
	c, ok := s.comments.FindByID(commentID)
	if !ok {
		return ErrCommentNotFound
	}
	if c.AuthorID != senderID && sender.Role != RoleHost && sender.Role != RoleAdmin {
		return ErrPermissionDenied
	}
	s.comments.Delete(commentID)
	s.broadcastLocked(build(commentID), "")
	return nil
}

// ChangeRole updates the target participant's role and broadcasts the
// change, with the refreshed roster, to everyone. CanChangeRole enforces
// that RoleHost is neither assignable nor reassignable, so no caller can
// mint a second host.
func (s *Session) ChangeRole(changerID, targetID string, newRole Role, build func(oldRole, newRole Role, users []UserInfo) []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changer, ok := s.users[changerID]
	if !ok {
		return ErrPermissionDenied
	}
	target, ok := s.users[targetID]
	if !ok {
		return ErrUserNotFound
	}
	if !CanChangeRole(changer.Role, target.Role, newRole) {
		return ErrPermissionDenied
	}
	oldRole := target.Role
	target.Role = newRole
	s.broadcastLocked(build(oldRole, newRole, s.usersLocked()), "")
	return nil
}

// Kick removes the target from the roster. The target is sent the kicked
// notice first, the remaining roster gets the departure broadcast, and the
// target's connection is returned so the caller can close it outside the
// lock.
func (s *Session) Kick(kickerID, targetID string, buildKicked func(kickerName string) []byte, buildLeft func(left UserInfo, users []UserInfo) []byte) (Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kicker, ok := s.users[kickerID]
	if !ok {
		return nil, ErrPermissionDenied
	}
	target, ok := s.users[targetID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if !CanKick(kicker.Role, target.Role) {
		return nil, ErrPermissionDenied
	}
	send(target.Conn, buildKicked(kicker.DisplayName))
	delete(s.users, targetID)
	s.broadcastLocked(buildLeft(target.Info(), s.usersLocked()), "")
	return target.Conn, nil
}

// Leave removes a participant after its connection closed. A departing
// host tears the whole session down: the remaining roster is notified of
// closure and their connections are returned for the caller to close (and
// to delete the session from the registry). A plain participant leaving
// only shrinks the roster.
func (s *Session) Leave(participantID string, buildClosed func() []byte, buildLeft func(left UserInfo, users []UserInfo) []byte) (hostLeft bool, remaining []Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[participantID]
	if !ok {
		return false, nil
	}
	delete(s.users, participantID)

	if participantID == s.HostID {
		s.closed = true
		payload := buildClosed()
		for _, u := range s.users {
			send(u.Conn, payload)
			remaining = append(remaining, u.Conn)
		}
		s.users = map[string]*Participant{}
		return true, remaining
	}

	s.broadcastLocked(buildLeft(p.Info(), s.usersLocked()), "")
	return false, nil
}

// usersLocked snapshots the roster. Caller holds the lock.
func (s *Session) usersLocked() []UserInfo {
	out := make([]UserInfo, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Info())
	}
	return out
}

// broadcastLocked sends payload to every roster member except excludeID.
// Caller holds the lock. Send failures are the transport's problem: the
// read loop of a dead peer triggers Leave on its own.
func (s *Session) broadcastLocked(payload []byte, excludeID string) {
	if payload == nil {
		return
	}
	for id, u := range s.users {
		if id == excludeID {
			continue
		}
		send(u.Conn, payload)
	}
}

func send(c Conn, payload []byte) {
	if c == nil || payload == nil {
		return
	}
	_ = c.Send(payload)
}
