package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	profileStore "clubsync/internal/adapters/storage/profile"
	"clubsync/internal/domain/profile"
)

// CompleteProfileDeps holds dependencies for the profile wizard orchestrators.
type CompleteProfileDeps struct {
	ProfileStore profileStore.Store
}

// ExecuteLoadDraft seeds a wizard session from the stored club details.
// PRE: clubID is non-empty
// POST: Returns a wizard at the first step with the stored draft, or
// profile.ErrLoad; a load failure is fatal to the session
func ExecuteLoadDraft(ctx context.Context, clubID string, deps CompleteProfileDeps) (profile.Wizard, error) {
	if clubID == "" {
		return profile.Wizard{}, fmt.Errorf("%w: missing club id", profile.ErrLoad)
	}

	draft, err := deps.ProfileStore.GetByClubID(ctx, clubID)
	if err != nil {
		slog.Error("profile_event", "event", "draft_load_failed", "club_id", clubID, "error", err.Error())
		return profile.Wizard{}, fmt.Errorf("%w: %v", profile.ErrLoad, err)
	}

	return profile.NewWizard(draft), nil
}

// ErrNotAtPreview means the wizard has not reached the preview step yet.
var ErrNotAtPreview = errors.New("wizard is not at the preview step")

// ExecuteSubmitDraft persists the whole draft in one bulk write.
// PRE: Wizard is at the preview step
// POST: Draft is stored as a single replace-fields upsert, or profile.ErrSubmit;
// on failure the in-memory draft is untouched and the submit can be retried
func ExecuteSubmitDraft(ctx context.Context, w profile.Wizard, deps CompleteProfileDeps) error {
	if !w.CanComplete() {
		return ErrNotAtPreview
	}

	if err := deps.ProfileStore.Save(ctx, w.Draft); err != nil {
		slog.Error("profile_event", "event", "draft_submit_failed", "club_id", w.Draft.ClubID, "error", err.Error())
		return fmt.Errorf("%w: %v", profile.ErrSubmit, err)
	}

	slog.Info("profile_event", "event", "draft_submitted", "club_id", w.Draft.ClubID, "completion", w.Draft.CompletionPercent())
	return nil
}
