package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	clubStore "clubsync/internal/adapters/storage/club"
	rosterStore "clubsync/internal/adapters/storage/roster"
	"clubsync/internal/domain/roster"

	"github.com/google/uuid"
)

// JoinClubInput carries input for the orchestrator.
type JoinClubInput struct {
	ClubID     string
	MemberName string
	Email      string
	Role       string // defaults to member
}

// JoinClubDeps holds dependencies for JoinClub.
type JoinClubDeps struct {
	ClubStore   clubStore.Store
	RosterStore rosterStore.Store
}

var (
	ErrClubNotVerified = errors.New("club is not verified")
	ErrAlreadyMember   = errors.New("this email is already on the club roster")
)

// ExecuteJoinClub adds a member to a verified club's roster.
// PRE: Club exists and is verified
// POST: Membership saved with status active
// INVARIANT: One active membership per email per club
func ExecuteJoinClub(ctx context.Context, input JoinClubInput, deps JoinClubDeps) (string, error) {
	entity, err := deps.ClubStore.GetByID(ctx, input.ClubID)
	if err != nil {
		return "", err
	}
	if !entity.IsVerified() {
		return "", ErrClubNotVerified
	}

	if existing, err := deps.RosterStore.GetByClubAndEmail(ctx, input.ClubID, input.Email); err == nil {
		if existing.Status == roster.StatusActive {
			return "", ErrAlreadyMember
		}
		// Rejoining revives the old row rather than creating a duplicate
		existing.Status = roster.StatusActive
		existing.MemberName = input.MemberName
		existing.JoinedAt = time.Now()
		if err := deps.RosterStore.Save(ctx, existing); err != nil {
			return "", err
		}
		slog.Info("roster_event", "event", "member_rejoined", "club_id", input.ClubID, "membership_id", existing.ID)
		return existing.ID, nil
	}

	role := input.Role
	if role == "" {
		role = roster.RoleMember
	}
	membership := roster.Membership{
		ID:         uuid.New().String(),
		ClubID:     input.ClubID,
		MemberName: input.MemberName,
		Email:      input.Email,
		Role:       role,
		Status:     roster.StatusActive,
		JoinedAt:   time.Now(),
	}
	if err := membership.Validate(); err != nil {
		return "", err
	}

	if err := deps.RosterStore.Save(ctx, membership); err != nil {
		return "", err
	}

	slog.Info("roster_event", "event", "member_joined", "club_id", input.ClubID, "membership_id", membership.ID, "role", role)
	return membership.ID, nil
}

// ExecuteChangeRole updates a membership's role.
// PRE: Membership exists and is active
// POST: Role updated and saved
func ExecuteChangeRole(ctx context.Context, membershipID, role string, deps JoinClubDeps) error {
	membership, err := deps.RosterStore.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	membership.Role = role
	if err := membership.Validate(); err != nil {
		return err
	}
	if err := deps.RosterStore.Save(ctx, membership); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "role_changed", "membership_id", membershipID, "role", role)
	return nil
}

// ExecuteLeaveClub flips a membership to left, keeping the row for history.
// PRE: Membership exists and is active
// POST: Status is left
func ExecuteLeaveClub(ctx context.Context, membershipID string, deps JoinClubDeps) error {
	membership, err := deps.RosterStore.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if err := membership.Leave(); err != nil {
		return err
	}
	if err := deps.RosterStore.Save(ctx, membership); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "member_left", "membership_id", membershipID)
	return nil
}
