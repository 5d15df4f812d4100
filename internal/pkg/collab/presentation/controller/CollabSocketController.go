package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/MazyLawzey/websync-live/internal/infrastructure/realtime"
	"github.com/MazyLawzey/websync-live/internal/observability"
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/application/usecase"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
)

// CollabSocketController handles the websocket endpoint carrying all
// collaboration traffic: session lifecycle, file relay, comments, roles.
// Preview (live-reload) clients connect to the same endpoint; they never
// bind to a session and their traffic falls through the dispatcher.
type CollabSocketController struct {
	registry    *collab.SessionRegistry
	broadcaster *realtime.Broadcaster

	createSessionUC *usecase.CreateSessionUseCase
	joinSessionUC   *usecase.JoinSessionUseCase
	leaveSessionUC  *usecase.LeaveSessionUseCase
	addCommentUC    *usecase.AddCommentUseCase
	deleteCommentUC *usecase.DeleteCommentUseCase
	changeRoleUC    *usecase.ChangeRoleUseCase
	kickUserUC      *usecase.KickUserUseCase
}

func NewCollabSocketController(registry *collab.SessionRegistry, broadcaster *realtime.Broadcaster) *CollabSocketController {
	return &CollabSocketController{
		registry:        registry,
		broadcaster:     broadcaster,
		createSessionUC: usecase.NewCreateSessionUseCase(registry),
		joinSessionUC:   usecase.NewJoinSessionUseCase(registry),
		leaveSessionUC:  usecase.NewLeaveSessionUseCase(registry),
		addCommentUC:    usecase.NewAddCommentUseCase(),
		deleteCommentUC: usecase.NewDeleteCommentUseCase(),
		changeRoleUC:    usecase.NewChangeRoleUseCase(),
		kickUserUC:      usecase.NewKickUserUseCase(),
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Sessions are capability-addressed by code; any origin may connect.
		return true
	},
}

const defaultReadTimeout = 60 * time.Second

// connState is the per-connection session binding. A connection starts
// unbound; a successful create or join binds it to exactly one session and
// participant for the rest of its life. The binding lives here, in the read
// loop, never stamped onto the transport handle.
type connState struct {
	session     *collab.Session
	participant *collab.Participant
}

func (st *connState) bound() bool {
	return st.session != nil
}

// Handle upgrades HTTP connections to websocket and processes envelopes
// until the client disconnects.
func (ctl *CollabSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			observability.Logger().Debug("websocket upgrade failed", "error", err)
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.broadcaster.Attach(conn)
		conn.Start()

		state := &connState{}
		defer func() {
			ctl.broadcaster.Detach(conn)
			if state.bound() {
				ctl.leaveSessionUC.Execute(usecase.LeaveSessionInput{
					Session:     state.session,
					Participant: state.participant,
				})
			}
			conn.Close(websocket.CloseNormalClosure, "connection closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					observability.Logger().Debug("websocket read ended", "error", err)
				}
				return
			}

			var msg protocol.Inbound
			if err := json.Unmarshal(data, &msg); err != nil {
				// Malformed payloads are dropped; the sender may not even
				// speak this protocol.
				observability.Logger().Debug("dropping malformed message", "error", err)
				continue
			}

			ctl.dispatch(conn, state, &msg)
		}
	}
}

// dispatch routes one inbound envelope. Unbound connections may only create
// or join; everything else needs a binding. Unknown types are ignored for
// forward compatibility with preview traffic.
func (ctl *CollabSocketController) dispatch(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	switch msg.Type {
	case protocol.TypeCreateSession:
		ctl.handleCreateSession(conn, state, msg)
	case protocol.TypeJoinSession:
		ctl.handleJoinSession(conn, state, msg)
	default:
		if !state.bound() {
			return
		}
		ctl.dispatchBound(conn, state, msg)
	}
}

func (ctl *CollabSocketController) dispatchBound(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	switch msg.Type {
	case protocol.TypeFileChange:
		ctl.handleFileChange(conn, state, msg)
	case protocol.TypeFileDiff:
		ctl.handleFileDiff(conn, state, msg)
	case protocol.TypeCursorUpdate:
		ctl.handleCursorUpdate(state, msg)
	case protocol.TypeFileFocus:
		ctl.handleFileFocus(conn, state, msg)
	case protocol.TypeAddComment:
		ctl.handleAddComment(conn, state, msg)
	case protocol.TypeDeleteComment:
		ctl.handleDeleteComment(conn, state, msg)
	case protocol.TypeChangeRole:
		ctl.handleChangeRole(conn, state, msg)
	case protocol.TypeKickUser:
		ctl.handleKickUser(conn, state, msg)
	case protocol.TypeFullSync:
		ctl.handleFullSync(state, msg)
	default:
		observability.Logger().Debug("ignoring unknown message type", "type", msg.Type)
	}
}

func (ctl *CollabSocketController) handleCreateSession(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	if state.bound() {
		return
	}

	out, err := ctl.createSessionUC.Execute(usecase.CreateSessionInput{
		DisplayName: msg.DisplayName,
		Conn:        conn,
	})
	if err != nil {
		observability.Logger().Error("create session failed", "error", err)
		ctl.replyError(conn, "Failed to create session.")
		return
	}

	state.session = out.Session
	state.participant = out.Participant
	observability.Logger().Info("session created",
		"code", out.Session.Code, "host", out.Participant.DisplayName, "userId", out.Participant.ID)
}

func (ctl *CollabSocketController) handleJoinSession(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	if state.bound() {
		return
	}

	out, err := ctl.joinSessionUC.Execute(usecase.JoinSessionInput{
		SessionCode: msg.SessionCode,
		DisplayName: msg.DisplayName,
		Conn:        conn,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			ctl.replyError(conn, "Session not found. Check the session code.")
			return
		}
		observability.Logger().Error("join session failed", "error", err)
		ctl.replyError(conn, "Failed to join session.")
		return
	}

	state.session = out.Session
	state.participant = out.Participant
	observability.Logger().Info("user joined session",
		"code", out.Session.Code, "user", out.Participant.DisplayName, "userId", out.Participant.ID)
}

func (ctl *CollabSocketController) handleFileChange(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	payload := protocol.Marshal(protocol.FileUpdate{
		Type:     protocol.TypeFileUpdate,
		FilePath: msg.FilePath,
		Content:  msg.Content,
		UserID:   state.participant.ID,
	})
	if err := state.session.Relay(state.participant.ID, collab.CanEdit, payload); err != nil {
		ctl.replyError(conn, "You do not have permission to edit files.")
		return
	}
	ctl.broadcastLiveReload()
}

func (ctl *CollabSocketController) handleFileDiff(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	changes := msg.Changes
	if changes == nil {
		changes = []protocol.Change{}
	}
	payload := protocol.Marshal(protocol.FileDiff{
		Type:     protocol.TypeFileDiff,
		FilePath: msg.FilePath,
		Changes:  changes,
		UserID:   state.participant.ID,
	})
	if err := state.session.Relay(state.participant.ID, collab.CanEdit, payload); err != nil {
		ctl.replyError(conn, "You do not have permission to edit files.")
		return
	}
	ctl.broadcastLiveReload()
}

func (ctl *CollabSocketController) handleCursorUpdate(state *connState, msg *protocol.Inbound) {
	payload := protocol.Marshal(protocol.CursorUpdate{
		Type:               protocol.TypeCursorUpdate,
		UserID:             state.participant.ID,
		DisplayName:        state.participant.DisplayName,
		FilePath:           msg.FilePath,
		Line:               msg.Line,
		Character:          msg.Character,
		SelectionStartLine: msg.SelectionStartLine,
		SelectionStartChar: msg.SelectionStartChar,
		SelectionEndLine:   msg.SelectionEndLine,
		SelectionEndChar:   msg.SelectionEndChar,
	})
	// Cursor traffic needs no authorization and produces no reply on failure.
	_ = state.session.Relay(state.participant.ID, nil, payload)
}

func (ctl *CollabSocketController) handleFileFocus(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	payload := protocol.Marshal(protocol.FileFocus{
		Type:        protocol.TypeFileFocus,
		FilePath:    msg.FilePath,
		UserID:      state.participant.ID,
		DisplayName: state.participant.DisplayName,
	})
	allowed := func(r collab.Role) bool { return r == collab.RoleHost || r == collab.RoleAdmin }
	if err := state.session.Relay(state.participant.ID, allowed, payload); err != nil {
		ctl.replyError(conn, "You do not have permission to change file focus.")
	}
}

func (ctl *CollabSocketController) handleAddComment(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	_, err := ctl.addCommentUC.Execute(usecase.AddCommentInput{
		Session:  state.session,
		SenderID: state.participant.ID,
		FilePath: msg.FilePath,
		Line:     msg.Line,
		Text:     msg.Text,
	})
	switch {
	case err == nil:
	case errors.Is(err, collab.ErrPermissionDenied):
		ctl.replyError(conn, "You do not have permission to comment.")
	default:
		ctl.replyError(conn, err.Error())
	}
}

func (ctl *CollabSocketController) handleDeleteComment(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	err := ctl.deleteCommentUC.Execute(usecase.DeleteCommentInput{
		Session:   state.session,
		SenderID:  state.participant.ID,
		CommentID: msg.CommentID,
	})
	switch {
	case err == nil:
	case errors.Is(err, collab.ErrCommentNotFound):
		ctl.replyError(conn, "Comment not found.")
	case errors.Is(err, collab.ErrPermissionDenied):
		ctl.replyError(conn, "You do not have permission to delete this comment.")
	}
}

func (ctl *CollabSocketController) handleChangeRole(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	err := ctl.changeRoleUC.Execute(usecase.ChangeRoleInput{
		Session:      state.session,
		SenderID:     state.participant.ID,
		TargetUserID: msg.TargetUserID,
		NewRole:      msg.NewRole,
	})
	switch {
	case err == nil:
		observability.Logger().Info("role changed",
			"code", state.session.Code, "by", state.participant.ID,
			"target", msg.TargetUserID, "newRole", msg.NewRole)
	case errors.Is(err, collab.ErrUserNotFound):
		ctl.replyError(conn, "User not found.")
	case errors.Is(err, collab.ErrPermissionDenied):
		ctl.replyError(conn, "You do not have permission to change this role.")
	}
}

func (ctl *CollabSocketController) handleKickUser(conn *realtime.Connection, state *connState, msg *protocol.Inbound) {
	err := ctl.kickUserUC.Execute(usecase.KickUserInput{
		Session:      state.session,
		SenderID:     state.participant.ID,
		TargetUserID: msg.TargetUserID,
	})
	switch {
	case err == nil:
		observability.Logger().Info("user kicked",
			"code", state.session.Code, "by", state.participant.ID, "target", msg.TargetUserID)
	case errors.Is(err, collab.ErrUserNotFound):
		ctl.replyError(conn, "User not found.")
	case errors.Is(err, collab.ErrPermissionDenied):
		ctl.replyError(conn, "You do not have permission to kick this user.")
	}
}

func (ctl *CollabSocketController) handleFullSync(state *connState, msg *protocol.Inbound) {
	files := msg.Files
	if files == nil {
		files = []protocol.File{}
	}
	payload := protocol.Marshal(protocol.FullSync{
		Type:  protocol.TypeFullSync,
		Files: files,
	})
	// Only the host may push a full sync; anyone else's request is dropped
	// without a reply, as is an unknown target.
	if err := state.session.SyncTo(state.participant.ID, msg.TargetUserID, payload); err == nil {
		observability.Logger().Debug("full sync forwarded",
			"code", state.session.Code, "target", msg.TargetUserID, "files", len(files))
	}
}

// broadcastLiveReload pings every connection on the server, preview clients
// included, regardless of session.
func (ctl *CollabSocketController) broadcastLiveReload() {
	ctl.broadcaster.BroadcastAll(protocol.Marshal(protocol.LiveReload{Type: protocol.TypeLiveReload}))
}

func (ctl *CollabSocketController) replyError(conn *realtime.Connection, message string) {
	if payload := protocol.Marshal(protocol.Error{Type: protocol.TypeError, Message: message}); payload != nil {
		_ = conn.Send(payload)
	}
}
