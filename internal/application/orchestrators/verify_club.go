package orchestrators

import (
	"context"
	"log/slog"
	"time"

	clubStore "clubsync/internal/adapters/storage/club"
)

// VerifyClubInput carries input for verification decisions.
type VerifyClubInput struct {
	ClubID   string
	Reviewer string // email of the admin making the decision
	Approve  bool
}

// VerifyClubDeps holds dependencies for VerifyClub.
type VerifyClubDeps struct {
	ClubStore clubStore.Store
}

// ExecuteVerifyClub applies an admin verification decision to a pending club.
// PRE: Club exists and is in pending status
// POST: Club status is verified or rejected with reviewer and timestamp recorded
func ExecuteVerifyClub(ctx context.Context, input VerifyClubInput, deps VerifyClubDeps) error {
	entity, err := deps.ClubStore.GetByID(ctx, input.ClubID)
	if err != nil {
		return err
	}

	now := time.Now()
	if input.Approve {
		err = entity.Verify(input.Reviewer, now)
	} else {
		err = entity.Reject(input.Reviewer, now)
	}
	if err != nil {
		return err
	}

	if err := deps.ClubStore.Save(ctx, entity); err != nil {
		return err
	}

	slog.Info("club_event", "event", "club_reviewed", "club_id", entity.ID, "approved", input.Approve, "reviewer", input.Reviewer)
	return nil
}

// ExecuteArchiveClub retires a club without deleting its history.
// PRE: Club exists and is not already archived
// POST: Club status is archived
func ExecuteArchiveClub(ctx context.Context, clubID string, deps VerifyClubDeps) error {
	entity, err := deps.ClubStore.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if err := entity.Archive(); err != nil {
		return err
	}
	if err := deps.ClubStore.Save(ctx, entity); err != nil {
		return err
	}
	slog.Info("club_event", "event", "club_archived", "club_id", entity.ID)
	return nil
}
