package usecase

import (
	"errors"

	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
	"github.com/google/uuid"
)

// JoinSessionInput carries a join request. Every joiner starts as Viewer;
// roles are only ever raised afterwards via change_role.
type JoinSessionInput struct {
	SessionCode string
	DisplayName string
	Conn        collab.Conn
}

// JoinSessionOutput returns the joined session and the new participant.
type JoinSessionOutput struct {
	Session     *collab.Session
	Participant *collab.Participant
}

// JoinSessionUseCase attaches a connection to an existing session, replies
// with the session snapshot, announces the joiner to the roster, and asks
// the host to push a full sync to the newcomer.
type JoinSessionUseCase struct {
	Registry *collab.SessionRegistry
}

func NewJoinSessionUseCase(registry *collab.SessionRegistry) *JoinSessionUseCase {
	return &JoinSessionUseCase{Registry: registry}
}

func (uc *JoinSessionUseCase) Execute(in JoinSessionInput) (*JoinSessionOutput, error) {
	session, ok := uc.Registry.Lookup(in.SessionCode)
	if !ok {
		return nil, ErrSessionNotFound
	}

	name := in.DisplayName
	if name == "" {
		name = "User"
	}

	p := &collab.Participant{
		ID:          uuid.NewString(),
		DisplayName: name,
		Role:        collab.RoleViewer,
		Conn:        in.Conn,
	}

	err := session.Join(p, func(users []collab.UserInfo, comments []collab.Comment) (self, others, syncReq []byte) {
		self = protocol.Marshal(protocol.SessionJoined{
			Type:        protocol.TypeSessionJoined,
			SessionCode: session.Code,
			UserID:      p.ID,
			Role:        p.Role,
			Users:       users,
			Comments:    comments,
		})
		others = protocol.Marshal(protocol.UserJoined{
			Type:        protocol.TypeUserJoined,
			UserID:      p.ID,
			DisplayName: p.DisplayName,
			Role:        p.Role,
			Users:       users,
		})
		syncReq = protocol.Marshal(protocol.SyncRequest{
			Type:         protocol.TypeSyncRequest,
			TargetUserID: p.ID,
		})
		return self, others, syncReq
	})
	if err != nil {
		// The host tore the session down between lookup and join; to the
		// joiner that is indistinguishable from an unknown code.
		if errors.Is(err, collab.ErrSessionClosed) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &JoinSessionOutput{Session: session, Participant: p}, nil
}
