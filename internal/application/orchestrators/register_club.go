package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	clubStore "clubsync/internal/adapters/storage/club"
	"clubsync/internal/domain/club"

	"github.com/google/uuid"
)

// RegisterClubInput carries input for the orchestrator.
type RegisterClubInput struct {
	Name         string
	Category     string
	AdvisorEmail string
}

// RegisterClubDeps holds dependencies for RegisterClub.
type RegisterClubDeps struct {
	ClubStore clubStore.Store
}

var ErrClubNameTaken = errors.New("a club with this name already exists")

// ExecuteRegisterClub creates a new club in pending status awaiting verification.
// PRE: Valid name and category provided
// POST: Club saved with status pending and a unique slug
// INVARIANT: Slug must be unique across clubs
func ExecuteRegisterClub(ctx context.Context, input RegisterClubInput, deps RegisterClubDeps) (string, error) {
	slug := club.Slugify(input.Name)
	if slug == "" {
		return "", errors.New("club name cannot be empty")
	}

	// Slug collision means the name is effectively taken
	if _, err := deps.ClubStore.GetBySlug(ctx, slug); err == nil {
		return "", ErrClubNameTaken
	}

	entity := club.Club{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Slug:         slug,
		Category:     input.Category,
		Status:       club.StatusPending,
		AdvisorEmail: input.AdvisorEmail,
		CreatedAt:    time.Now(),
	}
	if err := entity.Validate(); err != nil {
		return "", err
	}

	if err := deps.ClubStore.Save(ctx, entity); err != nil {
		return "", err
	}

	slog.Info("club_event", "event", "club_registered", "club_id", entity.ID, "slug", slug)
	return entity.ID, nil
}
