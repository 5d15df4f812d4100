package usecase

import (
	"fmt"
	"strings"

	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
	"github.com/google/uuid"
)

// AddCommentInput carries a new comment request.
type AddCommentInput struct {
	Session  *collab.Session
	SenderID string
	FilePath string
	Line     int
	Text     string
}

// AddCommentUseCase stores a comment and broadcasts comment_added to the
// entire roster, sender included.
type AddCommentUseCase struct{}

func NewAddCommentUseCase() *AddCommentUseCase {
	return &AddCommentUseCase{}
}

func (uc *AddCommentUseCase) Execute(in AddCommentInput) (collab.Comment, error) {
	if in.FilePath == "" || strings.TrimSpace(in.Text) == "" {
		return collab.Comment{}, fmt.Errorf("filePath and text are required")
	}
	if in.Line < 1 {
		return collab.Comment{}, fmt.Errorf("line must be positive")
	}

	return in.Session.AddComment(uuid.NewString(), in.SenderID, in.FilePath, in.Line, in.Text,
		func(c collab.Comment) []byte {
			return protocol.Marshal(protocol.CommentAdded{
				Type:    protocol.TypeCommentAdded,
				Comment: c,
			})
		})
}
