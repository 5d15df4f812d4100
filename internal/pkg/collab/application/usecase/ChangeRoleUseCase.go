package usecase

import (
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
)

// ChangeRoleInput carries a role change request. NewRole arrives as a raw
// wire string; CanChangeRole rejects unknown values and any attempt to
// assign or reassign the host role.
type ChangeRoleInput struct {
	Session      *collab.Session
	SenderID     string
	TargetUserID string
	NewRole      string
}

// ChangeRoleUseCase updates a participant's role and broadcasts
// role_changed with the refreshed roster to everyone.
type ChangeRoleUseCase struct{}

func NewChangeRoleUseCase() *ChangeRoleUseCase {
	return &ChangeRoleUseCase{}
}

func (uc *ChangeRoleUseCase) Execute(in ChangeRoleInput) error {
	return in.Session.ChangeRole(in.SenderID, in.TargetUserID, collab.Role(in.NewRole),
		func(oldRole, newRole collab.Role, users []collab.UserInfo) []byte {
			return protocol.Marshal(protocol.RoleChanged{
				Type:    protocol.TypeRoleChanged,
				UserID:  in.TargetUserID,
				OldRole: oldRole,
				NewRole: newRole,
				Users:   users,
			})
		})
}
