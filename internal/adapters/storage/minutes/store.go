package minutes

import (
	"context"

	domain "clubsync/internal/domain/minutes"
)

// Store persists Minutes state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Minutes, error)
	Save(ctx context.Context, value domain.Minutes) error
	Delete(ctx context.Context, id string) error
	ListByClub(ctx context.Context, clubID string, limit, offset int) ([]domain.Minutes, error)
}
