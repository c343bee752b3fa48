package ports

import (
	"context"
	"encoding/json"

	"github.com/maasutil/maascli/internal/domain"
)

// SessionFactory establishes sessions with a remote server, either from an
// explicit URL+credentials pair or from a stored profile.
type SessionFactory interface {
	FromURL(ctx context.Context, url string, credentials *domain.APIKey, insecure bool) (Session, error)
	FromProfile(ctx context.Context, profile domain.Profile) (Session, error)

	// ObtainToken exchanges a username and password for a long-lived
	// three-part API key.
	ObtainToken(ctx context.Context, url, username, password string, insecure bool) (*domain.APIKey, error)

	// ValidateKey asks the remote server whether the key is acceptable.
	ValidateKey(ctx context.Context, url string, credentials *domain.APIKey, insecure bool) error
}

// Session is a live connection to a remote server.
type Session interface {
	// Description returns the server's capability description, an opaque
	// blob cached verbatim in the profile.
	Description() json.RawMessage
	Origin() Origin
}

// Origin is the session-bound entry point to the remote resource
// collections.
type Origin interface {
	Nodes(ctx context.Context) ([]domain.Node, error)
	Node(ctx context.Context, systemID string) (domain.Node, error)
	AcquireNode(ctx context.Context, constraints domain.AcquireConstraints) (domain.Node, error)
	DeployNode(ctx context.Context, systemID string) (domain.Node, error)
	ReleaseNode(ctx context.Context, systemID string) (domain.Node, error)

	Tags(ctx context.Context) ([]domain.Tag, error)
	Files(ctx context.Context) ([]domain.File, error)
	Users(ctx context.Context) ([]domain.User, error)
}
