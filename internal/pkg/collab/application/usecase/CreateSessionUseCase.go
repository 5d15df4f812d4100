package usecase

import (
	collab "github.com/MazyLawzey/websync-live/internal/pkg/collab/application/domain"
	"github.com/MazyLawzey/websync-live/internal/pkg/collab/protocol"
	"github.com/google/uuid"
)

// CreateSessionInput carries the data needed to open a new session.
type CreateSessionInput struct {
	DisplayName string
	Conn        collab.Conn
}

// CreateSessionOutput returns the freshly registered session and its host.
type CreateSessionOutput struct {
	Session     *collab.Session
	Participant *collab.Participant
}

// CreateSessionUseCase registers a new session with the caller as host and
// replies with the session_created envelope.
type CreateSessionUseCase struct {
	Registry *collab.SessionRegistry
}

func NewCreateSessionUseCase(registry *collab.SessionRegistry) *CreateSessionUseCase {
	return &CreateSessionUseCase{Registry: registry}
}

func (uc *CreateSessionUseCase) Execute(in CreateSessionInput) (*CreateSessionOutput, error) {
	name := in.DisplayName
	if name == "" {
		name = "Host"
	}

	host := &collab.Participant{
		ID:          uuid.NewString(),
		DisplayName: name,
		Role:        collab.RoleHost,
		Conn:        in.Conn,
	}

	session, err := uc.Registry.Create(host)
	if err != nil {
		return nil, err
	}

	if payload := protocol.Marshal(protocol.SessionCreated{
		Type:        protocol.TypeSessionCreated,
		SessionCode: session.Code,
		UserID:      host.ID,
		Role:        collab.RoleHost,
		Users:       session.Users(),
	}); payload != nil {
		_ = in.Conn.Send(payload)
	}

	return &CreateSessionOutput{Session: session, Participant: host}, nil
}
