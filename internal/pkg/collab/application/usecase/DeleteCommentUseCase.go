package usecase

import (
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
)

// DeleteCommentInput carries a comment deletion request.
type DeleteCommentInput struct {
	Session   *collab.Session
	SenderID  string
	CommentID string
}

// DeleteCommentUseCase removes a comment on behalf of its author, the host,
// or an admin, and broadcasts comment_deleted to the entire roster. An
// unknown id fails with ErrCommentNotFound before any permission check.
type DeleteCommentUseCase struct{}

func NewDeleteCommentUseCase() *DeleteCommentUseCase {
	return &DeleteCommentUseCase{}
}

func (uc *DeleteCommentUseCase) Execute(in DeleteCommentInput) error {
	return in.Session.DeleteComment(in.SenderID, in.CommentID,
		func(commentID string) []byte {
			return protocol.Marshal(protocol.CommentDeleted{
				Type:      protocol.TypeCommentDeleted,
				CommentID: commentID,
			})
		})
}
