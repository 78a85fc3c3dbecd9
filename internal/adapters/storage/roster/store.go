package roster

import (
	"context"

	domain "clubsync/internal/domain/roster"
)

// Store persists Membership state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Membership, error)
	GetByClubAndEmail(ctx context.Context, clubID, email string) (domain.Membership, error)
	Save(ctx context.Context, value domain.Membership) error
	List(ctx context.Context, filter ListFilter) ([]domain.Membership, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	ClubID string
	Role   string
	Status string
	Search string
	Limit  int
	Offset int
	Sort   string
	Dir    string
}
