package ports

import (
	"context"

	"github.com/maasutil/maascli/internal/domain"
)

// ProfileStore is the durable mapping from profile name to profile. An
// implementation must make each Save/Delete atomic with respect to the
// persisted representation.
type ProfileStore interface {
	Get(ctx context.Context, name string) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	Delete(ctx context.Context, name string) error
}
