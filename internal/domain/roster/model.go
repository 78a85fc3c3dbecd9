package roster

import (
	"errors"
	"strings"
	"time"
)

// Membership roles within a club.
const (
	RoleMember    = "member"
	RoleExcom     = "excom"
	RolePresident = "president"
)

// Membership statuses.
const (
	StatusActive = "active"
	StatusLeft   = "left"
)

// Domain errors
var (
	ErrAlreadyLeft = errors.New("membership has already ended")
)

// Membership holds one person's membership in one club.
type Membership struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	MemberName string    `json:"member_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	JoinedAt   time.Time `json:"joined_at"`
}

// Validate checks if the Membership has valid data.
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@'
func (m *Membership) Validate() error {
	if m.ClubID == "" {
		return errors.New("membership club id cannot be empty")
	}
	if strings.TrimSpace(m.MemberName) == "" {
		return errors.New("member name cannot be empty")
	}
	if !strings.Contains(m.Email, "@") {
		return errors.New("member email must be valid")
	}
	if m.Role != RoleMember && m.Role != RoleExcom && m.Role != RolePresident {
		return errors.New("role must be 'member', 'excom', or 'president'")
	}
	if m.Status != StatusActive && m.Status != StatusLeft {
		return errors.New("status must be 'active' or 'left'")
	}
	return nil
}

// IsExcom returns true for executive committee roles (excom and president).
// INVARIANT: Role field is not mutated
func (m *Membership) IsExcom() bool {
	return m.Role == RoleExcom || m.Role == RolePresident
}

// Leave ends the membership. The row is kept for history.
// PRE: Status is active
// POST: Status is left
func (m *Membership) Leave() error {
	if m.Status == StatusLeft {
		return ErrAlreadyLeft
	}
	m.Status = StatusLeft
	return nil
}
