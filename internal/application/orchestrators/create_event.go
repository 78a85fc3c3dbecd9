package orchestrators

import (
	"context"
	"log/slog"
	"time"

	eventStore "clubsync/internal/adapters/storage/event"
	"clubsync/internal/domain/event"

	"github.com/google/uuid"
)

// CreateEventInput carries input for the orchestrator.
type CreateEventInput struct {
	ClubID      string
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	EndsAt      time.Time
}

// CreateEventDeps holds dependencies for the event orchestrators.
type CreateEventDeps struct {
	EventStore eventStore.Store
}

// ExecuteCreateEvent creates a draft event for a club.
// PRE: Valid title and time range provided
// POST: Event saved with status draft
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (string, error) {
	entity := event.Event{
		ID:          uuid.New().String(),
		ClubID:      input.ClubID,
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Status:      event.StatusDraft,
	}
	if err := entity.Validate(); err != nil {
		return "", err
	}
	if err := deps.EventStore.Save(ctx, entity); err != nil {
		return "", err
	}
	slog.Info("event_event", "event", "event_created", "event_id", entity.ID, "club_id", input.ClubID)
	return entity.ID, nil
}

// transitionEvent loads, applies a state change, and saves.
func transitionEvent(ctx context.Context, eventID string, deps CreateEventDeps, name string, apply func(*event.Event) error) error {
	entity, err := deps.EventStore.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := apply(&entity); err != nil {
		return err
	}
	if err := deps.EventStore.Save(ctx, entity); err != nil {
		return err
	}
	slog.Info("event_event", "event", name, "event_id", eventID)
	return nil
}

// ExecutePublishEvent makes a draft event visible.
// PRE: Event is in draft status
// POST: Status is published
func ExecutePublishEvent(ctx context.Context, eventID string, deps CreateEventDeps) error {
	return transitionEvent(ctx, eventID, deps, "event_published", (*event.Event).Publish)
}

// ExecuteCompleteEvent marks a published event as held.
// PRE: Event is in published status
// POST: Status is completed; certificates may now be issued against it
func ExecuteCompleteEvent(ctx context.Context, eventID string, deps CreateEventDeps) error {
	return transitionEvent(ctx, eventID, deps, "event_completed", (*event.Event).Complete)
}

// ExecuteCancelEvent cancels an event that has not finished.
// PRE: Event is not completed or already cancelled
// POST: Status is cancelled
func ExecuteCancelEvent(ctx context.Context, eventID string, deps CreateEventDeps) error {
	return transitionEvent(ctx, eventID, deps, "event_cancelled", (*event.Event).Cancel)
}
