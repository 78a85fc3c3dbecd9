package profile

import (
	"context"

	domain "clubsync/internal/domain/profile"
)

// Store persists club profile details. Save replaces all fields in one
// statement so a submit never partially applies.
type Store interface {
	GetByClubID(ctx context.Context, clubID string) (domain.Draft, error)
	Save(ctx context.Context, value domain.Draft) error
}
