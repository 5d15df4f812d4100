package usecase

import (
	"fmt"

	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
)

// KickUserInput carries a kick request.
type KickUserInput struct {
	Session      *collab.Session
	SenderID     string
	TargetUserID string
}

// KickUserUseCase removes a participant: the target gets a kicked notice
// and its connection is closed, the remaining roster gets user_left with
// reason "kicked".
type KickUserUseCase struct{}

func NewKickUserUseCase() *KickUserUseCase {
	return &KickUserUseCase{}
}

func (uc *KickUserUseCase) Execute(in KickUserInput) error {
	conn, err := in.Session.Kick(in.SenderID, in.TargetUserID,
		func(kickerName string) []byte {
			return protocol.Marshal(protocol.Kicked{
				Type:   protocol.TypeKicked,
				Reason: fmt.Sprintf("Kicked by %s", kickerName),
			})
		},
		func(left collab.UserInfo, users []collab.UserInfo) []byte {
			return protocol.Marshal(protocol.UserLeft{
				Type:        protocol.TypeUserLeft,
				UserID:      left.ID,
				DisplayName: left.DisplayName,
				Reason:      "kicked",
				Users:       users,
			})
		})
	if err != nil {
		return err
	}
	conn.Close(1000, "kicked")
	return nil
}
