package usecase

import (
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
)

// LeaveSessionInput identifies the departing participant.
type LeaveSessionInput struct {
	Session     *collab.Session
	Participant *collab.Participant
}

// LeaveSessionUseCase handles a closed connection. A departing host
// destroys the session: everyone remaining gets session_closed, their
// connections are closed, and the code is released. Anyone else leaving
// just shrinks the roster.
type LeaveSessionUseCase struct {
	Registry *collab.SessionRegistry
}

func NewLeaveSessionUseCase(registry *collab.SessionRegistry) *LeaveSessionUseCase {
	return &LeaveSessionUseCase{Registry: registry}
}

func (uc *LeaveSessionUseCase) Execute(in LeaveSessionInput) {
	hostLeft, remaining := in.Session.Leave(in.Participant.ID,
		func() []byte {
			return protocol.Marshal(protocol.SessionClosed{
				Type:   protocol.TypeSessionClosed,
				Reason: "Host disconnected",
			})
		},
		func(left collab.UserInfo, users []collab.UserInfo) []byte {
			return protocol.Marshal(protocol.UserLeft{
				Type:        protocol.TypeUserLeft,
				UserID:      left.ID,
				DisplayName: left.DisplayName,
				Reason:      "disconnected",
				Users:       users,
			})
		})

	if hostLeft {
		uc.Registry.Remove(in.Session.Code)
		for _, conn := range remaining {
			conn.Close(1000, "session closed")
		}
	}
}
