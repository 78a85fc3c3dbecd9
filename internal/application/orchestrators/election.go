package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	electionStore "clubsync/internal/adapters/storage/election"
	"clubsync/internal/domain/election"

	"github.com/google/uuid"
)

// OpenElectionInput carries input for the orchestrator.
type OpenElectionInput struct {
	ClubID     string
	Position   string
	ClosesAt   time.Time
	Candidates []string // candidate names, at least two
}

// ElectionDeps holds dependencies for the election orchestrators.
type ElectionDeps struct {
	ElectionStore electionStore.Store
}

var ErrTooFewCandidates = errors.New("an election needs at least two candidates")

// ExecuteOpenElection opens a new election with its slate of candidates.
// PRE: Position is non-empty, ClosesAt is in the future, >= 2 candidates
// POST: Election and candidates saved; election is open
func ExecuteOpenElection(ctx context.Context, input OpenElectionInput, deps ElectionDeps) (string, error) {
	if len(input.Candidates) < 2 {
		return "", ErrTooFewCandidates
	}

	entity := election.Election{
		ID:       uuid.New().String(),
		ClubID:   input.ClubID,
		Position: input.Position,
		Status:   election.StatusOpen,
		OpensAt:  time.Now(),
		ClosesAt: input.ClosesAt,
	}
	if err := entity.Validate(); err != nil {
		return "", err
	}
	if err := deps.ElectionStore.Save(ctx, entity); err != nil {
		return "", err
	}

	for _, name := range input.Candidates {
		candidate := election.Candidate{
			ID:         uuid.New().String(),
			ElectionID: entity.ID,
			Name:       name,
		}
		if err := deps.ElectionStore.SaveCandidate(ctx, candidate); err != nil {
			return "", err
		}
	}

	slog.Info("election_event", "event", "election_opened", "election_id", entity.ID, "position", input.Position, "candidates", len(input.Candidates))
	return entity.ID, nil
}

// CastBallotInput carries input for the orchestrator.
type CastBallotInput struct {
	ElectionID  string
	CandidateID string
	VoterEmail  string
}

// ExecuteCastBallot records one voter's ballot.
// PRE: Election is open, candidate belongs to it, voter has not voted
// POST: Ballot saved
// INVARIANT: One ballot per voter per election, enforced here and by the
// unique constraint underneath
func ExecuteCastBallot(ctx context.Context, input CastBallotInput, deps ElectionDeps) error {
	entity, err := deps.ElectionStore.GetByID(ctx, input.ElectionID)
	if err != nil {
		return err
	}
	if !entity.IsOpen(time.Now()) {
		return election.ErrClosed
	}

	candidates, err := deps.ElectionStore.ListCandidates(ctx, input.ElectionID)
	if err != nil {
		return err
	}
	found := false
	for _, c := range candidates {
		if c.ID == input.CandidateID {
			found = true
			break
		}
	}
	if !found {
		return election.ErrNoCandidate
	}

	voted, err := deps.ElectionStore.HasVoted(ctx, input.ElectionID, input.VoterEmail)
	if err != nil {
		return err
	}
	if voted {
		return election.ErrDuplicateVoter
	}

	ballot := election.Ballot{
		ID:          uuid.New().String(),
		ElectionID:  input.ElectionID,
		CandidateID: input.CandidateID,
		VoterEmail:  input.VoterEmail,
		CastAt:      time.Now(),
	}
	if err := deps.ElectionStore.SaveBallot(ctx, ballot); err != nil {
		return err
	}

	slog.Info("election_event", "event", "ballot_cast", "election_id", input.ElectionID)
	return nil
}

// ExecuteCloseElection closes an election and returns the final tally.
// PRE: Election is not already closed
// POST: Election status is closed; tally computed from stored ballots
func ExecuteCloseElection(ctx context.Context, electionID string, deps ElectionDeps) ([]election.CandidateTally, error) {
	entity, err := deps.ElectionStore.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if err := entity.Close(); err != nil {
		return nil, err
	}
	if err := deps.ElectionStore.Save(ctx, entity); err != nil {
		return nil, err
	}

	candidates, err := deps.ElectionStore.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, err
	}
	ballots, err := deps.ElectionStore.ListBallots(ctx, electionID)
	if err != nil {
		return nil, err
	}

	tally := election.Tally(candidates, ballots)
	slog.Info("election_event", "event", "election_closed", "election_id", electionID, "ballots", len(ballots))
	return tally, nil
}
