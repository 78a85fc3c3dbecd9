package minutes

import (
	"errors"
	"strings"
	"time"
)

// MaxTitleLength caps user-supplied minute titles.
const MaxTitleLength = 200

// Minutes holds one meeting's recorded minutes. Body is markdown and is
// rendered to safe HTML at display time.
type Minutes struct {
	ID          string     `json:"id"`
	ClubID      string     `json:"club_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	MeetingDate time.Time  `json:"meeting_date"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Validate checks if the Minutes have valid data.
// POST: Returns error if validation fails, nil otherwise
func (m *Minutes) Validate() error {
	if m.ClubID == "" {
		return errors.New("minutes club id cannot be empty")
	}
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("minutes title cannot be empty")
	}
	if len(m.Title) > MaxTitleLength {
		return errors.New("minutes title cannot exceed 200 characters")
	}
	if strings.TrimSpace(m.Body) == "" {
		return errors.New("minutes body cannot be empty")
	}
	if m.MeetingDate.IsZero() {
		return errors.New("meeting date must be set")
	}
	return nil
}
