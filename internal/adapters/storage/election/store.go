package election

import (
	"context"

	domain "clubsync/internal/domain/election"
)

// Store persists elections, candidates, and ballots.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Election, error)
	Save(ctx context.Context, value domain.Election) error
	ListByClub(ctx context.Context, clubID string) ([]domain.Election, error)

	SaveCandidate(ctx context.Context, value domain.Candidate) error
	ListCandidates(ctx context.Context, electionID string) ([]domain.Candidate, error)

	SaveBallot(ctx context.Context, value domain.Ballot) error
	HasVoted(ctx context.Context, electionID, voterEmail string) (bool, error)
	ListBallots(ctx context.Context, electionID string) ([]domain.Ballot, error)
}
