package orchestrators

import (
	"context"
	"log/slog"
	"time"

	minutesStore "clubsync/internal/adapters/storage/minutes"
	"clubsync/internal/domain/minutes"

	"github.com/google/uuid"
)

// RecordMinutesInput carries input for the orchestrator. An empty ID creates
// a new record; a non-empty ID updates an existing one.
type RecordMinutesInput struct {
	ID          string
	ClubID      string
	Title       string
	Body        string // markdown
	MeetingDate time.Time
	CreatedBy   string
}

// RecordMinutesDeps holds dependencies for the minutes orchestrators.
type RecordMinutesDeps struct {
	MinutesStore minutesStore.Store
}

// ExecuteRecordMinutes creates or updates meeting minutes.
// PRE: Valid title and body provided
// POST: Minutes saved; UpdatedAt set on updates
func ExecuteRecordMinutes(ctx context.Context, input RecordMinutesInput, deps RecordMinutesDeps) (string, error) {
	var entity minutes.Minutes
	if input.ID == "" {
		entity = minutes.Minutes{
			ID:          uuid.New().String(),
			ClubID:      input.ClubID,
			Title:       input.Title,
			Body:        input.Body,
			MeetingDate: input.MeetingDate,
			CreatedBy:   input.CreatedBy,
			CreatedAt:   time.Now(),
		}
	} else {
		existing, err := deps.MinutesStore.GetByID(ctx, input.ID)
		if err != nil {
			return "", err
		}
		existing.Title = input.Title
		existing.Body = input.Body
		existing.MeetingDate = input.MeetingDate
		now := time.Now()
		existing.UpdatedAt = &now
		entity = existing
	}

	if err := entity.Validate(); err != nil {
		return "", err
	}
	if err := deps.MinutesStore.Save(ctx, entity); err != nil {
		return "", err
	}

	slog.Info("minutes_event", "event", "minutes_recorded", "minutes_id", entity.ID, "club_id", entity.ClubID)
	return entity.ID, nil
}

// ExecuteDeleteMinutes removes a minutes record.
// PRE: Minutes exist
// POST: Record deleted
func ExecuteDeleteMinutes(ctx context.Context, minutesID string, deps RecordMinutesDeps) error {
	if _, err := deps.MinutesStore.GetByID(ctx, minutesID); err != nil {
		return err
	}
	if err := deps.MinutesStore.Delete(ctx, minutesID); err != nil {
		return err
	}
	slog.Info("minutes_event", "event", "minutes_deleted", "minutes_id", minutesID)
	return nil
}
