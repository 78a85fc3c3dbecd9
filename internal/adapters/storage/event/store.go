package event

import (
	"context"

	domain "clubsync/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	CountByStatus(ctx context.Context, clubID string) (map[string]int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	ClubID string
	Status string
	Limit  int
	Offset int
}
