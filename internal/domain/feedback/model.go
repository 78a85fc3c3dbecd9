package feedback

import (
	"errors"
	"time"
)

// Rating bounds for feedback entries.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback holds one anonymous or attributed feedback entry for a club.
type Feedback struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Anonymous   bool      `json:"anonymous"`
	SubmittedBy string    `json:"submitted_by,omitempty"` // empty when Anonymous
	SubmittedAt time.Time `json:"submitted_at"`
}

// Validate checks if the Feedback has valid data.
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Anonymous entries carry no submitter identity
func (f *Feedback) Validate() error {
	if f.ClubID == "" {
		return errors.New("feedback club id cannot be empty")
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return errors.New("rating must be between 1 and 5")
	}
	if f.Anonymous && f.SubmittedBy != "" {
		return errors.New("anonymous feedback cannot name a submitter")
	}
	return nil
}

// AverageRating computes the mean rating of entries, 0 when there are none.
func AverageRating(entries []Feedback) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, f := range entries {
		sum += f.Rating
	}
	return float64(sum) / float64(len(entries))
}
