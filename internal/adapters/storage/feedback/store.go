package feedback

import (
	"context"

	domain "clubsync/internal/domain/feedback"
)

// Store persists Feedback state.
type Store interface {
	Save(ctx context.Context, value domain.Feedback) error
	ListByClub(ctx context.Context, clubID string, limit, offset int) ([]domain.Feedback, error)
	AverageRating(ctx context.Context, clubID string) (float64, error)
}
