package orchestrators

import (
	"context"
	"log/slog"
	"time"

	feedbackStore "clubsync/internal/adapters/storage/feedback"
	"clubsync/internal/domain/feedback"

	"github.com/google/uuid"
)

// SubmitFeedbackInput carries input for the orchestrator.
type SubmitFeedbackInput struct {
	ClubID      string
	Rating      int
	Comment     string
	Anonymous   bool
	SubmittedBy string // ignored when Anonymous is true
}

// SubmitFeedbackDeps holds dependencies for SubmitFeedback.
type SubmitFeedbackDeps struct {
	FeedbackStore feedbackStore.Store
}

// ExecuteSubmitFeedback records one append-only feedback entry.
// PRE: Rating within range
// POST: Entry saved; anonymous entries never carry the submitter
func ExecuteSubmitFeedback(ctx context.Context, input SubmitFeedbackInput, deps SubmitFeedbackDeps) (string, error) {
	submittedBy := input.SubmittedBy
	if input.Anonymous {
		submittedBy = ""
	}

	entity := feedback.Feedback{
		ID:          uuid.New().String(),
		ClubID:      input.ClubID,
		Rating:      input.Rating,
		Comment:     input.Comment,
		Anonymous:   input.Anonymous,
		SubmittedBy: submittedBy,
		SubmittedAt: time.Now(),
	}
	if err := entity.Validate(); err != nil {
		return "", err
	}
	if err := deps.FeedbackStore.Save(ctx, entity); err != nil {
		return "", err
	}

	slog.Info("feedback_event", "event", "feedback_submitted", "club_id", input.ClubID, "rating", input.Rating, "anonymous", input.Anonymous)
	return entity.ID, nil
}
