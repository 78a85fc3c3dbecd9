package club

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 120
)

// Verification lifecycle statuses.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusArchived = "archived"
)

// Club categories.
const (
	CategoryAcademic  = "academic"
	CategoryCultural  = "cultural"
	CategorySports    = "sports"
	CategoryService   = "service"
	CategoryTechnical = "technical"
)

// Domain errors
var (
	ErrNotPending      = errors.New("club is not pending verification")
	ErrAlreadyArchived = errors.New("club is already archived")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Club holds state for a registered club.
type Club struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	AdvisorEmail string     `json:"advisor_email"`
	CreatedAt    time.Time  `json:"created_at"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	VerifiedBy   string     `json:"verified_by,omitempty"`
}

// Validate checks if the Club has valid data.
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Slug is lowercase kebab-case; AdvisorEmail contains '@'
func (c *Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("club name cannot be empty")
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("club name cannot exceed 120 characters")
	}
	if !slugPattern.MatchString(c.Slug) {
		return errors.New("club slug must be lowercase kebab-case")
	}
	switch c.Category {
	case CategoryAcademic, CategoryCultural, CategorySports, CategoryService, CategoryTechnical:
	default:
		return errors.New("unknown club category")
	}
	switch c.Status {
	case StatusPending, StatusVerified, StatusRejected, StatusArchived:
	default:
		return errors.New("status must be 'pending', 'verified', 'rejected', or 'archived'")
	}
	if c.AdvisorEmail != "" && !strings.Contains(c.AdvisorEmail, "@") {
		return errors.New("advisor email must be valid")
	}
	return nil
}

// IsVerified returns true if the club passed verification.
// INVARIANT: Status field is not mutated
func (c *Club) IsVerified() bool {
	return c.Status == StatusVerified
}

// Verify marks a pending club as verified by the given reviewer.
// PRE: Status is pending
// POST: Status is verified, VerifiedAt/VerifiedBy recorded
func (c *Club) Verify(reviewer string, now time.Time) error {
	if c.Status != StatusPending {
		return ErrNotPending
	}
	c.Status = StatusVerified
	c.VerifiedAt = &now
	c.VerifiedBy = reviewer
	return nil
}

// Reject marks a pending club as rejected by the given reviewer.
// PRE: Status is pending
// POST: Status is rejected, VerifiedAt/VerifiedBy recorded
func (c *Club) Reject(reviewer string, now time.Time) error {
	if c.Status != StatusPending {
		return ErrNotPending
	}
	c.Status = StatusRejected
	c.VerifiedAt = &now
	c.VerifiedBy = reviewer
	return nil
}

// Archive soft-deletes the club. The row is kept.
// PRE: Club is not already archived
// POST: Status is archived
func (c *Club) Archive() error {
	if c.Status == StatusArchived {
		return ErrAlreadyArchived
	}
	c.Status = StatusArchived
	return nil
}

// Slugify derives a slug from a club name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
