package event

import (
	"errors"
	"strings"
	"time"
)

// Event lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Domain errors
var (
	ErrNotDraft     = errors.New("event is not a draft")
	ErrNotPublished = errors.New("event is not published")
	ErrFinished     = errors.New("event has already finished")
)

// Event holds state for one club event.
type Event struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
}

// Validate checks if the Event has valid data.
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: EndsAt is not before StartsAt
func (e *Event) Validate() error {
	if e.ClubID == "" {
		return errors.New("event club id cannot be empty")
	}
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("event title cannot be empty")
	}
	if e.StartsAt.IsZero() {
		return errors.New("event start time must be set")
	}
	if !e.EndsAt.IsZero() && e.EndsAt.Before(e.StartsAt) {
		return errors.New("event cannot end before it starts")
	}
	switch e.Status {
	case StatusDraft, StatusPublished, StatusCompleted, StatusCancelled:
	default:
		return errors.New("status must be 'draft', 'published', 'completed', or 'cancelled'")
	}
	return nil
}

// Publish makes a draft event visible.
// PRE: Status is draft
// POST: Status is published
func (e *Event) Publish() error {
	if e.Status != StatusDraft {
		return ErrNotDraft
	}
	e.Status = StatusPublished
	return nil
}

// Complete marks a published event as held. Completed events make their
// attendees eligible for certificates.
// PRE: Status is published
// POST: Status is completed
func (e *Event) Complete() error {
	if e.Status != StatusPublished {
		return ErrNotPublished
	}
	e.Status = StatusCompleted
	return nil
}

// Cancel withdraws a draft or published event.
// PRE: Status is draft or published
// POST: Status is cancelled
func (e *Event) Cancel() error {
	if e.Status == StatusCompleted || e.Status == StatusCancelled {
		return ErrFinished
	}
	e.Status = StatusCancelled
	return nil
}

// DateLabel formats the event date the way certificates display it.
func (e *Event) DateLabel() string {
	return e.StartsAt.Format("Jan 2, 2006")
}
