package election

import (
	"errors"
	"strings"
	"time"
)

// Election lifecycle statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Domain errors
var (
	ErrClosed         = errors.New("election is closed")
	ErrAlreadyClosed  = errors.New("election is already closed")
	ErrDuplicateVoter = errors.New("voter has already cast a ballot")
	ErrNoCandidate    = errors.New("unknown candidate")
)

// Election holds state for one position's election within a club.
type Election struct {
	ID       string    `json:"id"`
	ClubID   string    `json:"club_id"`
	Position string    `json:"position"`
	Status   string    `json:"status"`
	OpensAt  time.Time `json:"opens_at"`
	ClosesAt time.Time `json:"closes_at"`
}

// Candidate is one person standing in an election.
type Candidate struct {
	ID         string `json:"id"`
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
}

// Ballot records one voter's choice. One ballot per voter per election.
type Ballot struct {
	ID          string
	ElectionID  string
	CandidateID string
	VoterEmail  string
	CastAt      time.Time
}

// CandidateTally is the per-candidate result of a tally.
type CandidateTally struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Votes       int    `json:"votes"`
	Percent     int    `json:"percent"`
}

// Validate checks if the Election has valid data.
// POST: Returns error if validation fails, nil otherwise
func (e *Election) Validate() error {
	if e.ClubID == "" {
		return errors.New("election club id cannot be empty")
	}
	if strings.TrimSpace(e.Position) == "" {
		return errors.New("election position cannot be empty")
	}
	if e.Status != StatusOpen && e.Status != StatusClosed {
		return errors.New("status must be 'open' or 'closed'")
	}
	return nil
}

// IsOpen reports whether ballots are currently accepted.
// INVARIANT: Status and ClosesAt are not mutated
func (e *Election) IsOpen(now time.Time) bool {
	if e.Status != StatusOpen {
		return false
	}
	if !e.ClosesAt.IsZero() && now.After(e.ClosesAt) {
		return false
	}
	return true
}

// Close ends voting.
// PRE: Status is open
// POST: Status is closed
func (e *Election) Close() error {
	if e.Status == StatusClosed {
		return ErrAlreadyClosed
	}
	e.Status = StatusClosed
	return nil
}

// Tally counts ballots per candidate and computes percentages. Candidates
// with no ballots appear with zero votes. Percentages are zero when there
// are no ballots at all.
// INVARIANT: with at least one ballot, percentages sum to exactly 100
func Tally(candidates []Candidate, ballots []Ballot) []CandidateTally {
	counts := make(map[string]int, len(candidates))
	for _, b := range ballots {
		counts[b.CandidateID]++
	}

	total := len(ballots)
	results := make([]CandidateTally, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, CandidateTally{
			CandidateID: c.ID,
			Name:        c.Name,
			Votes:       counts[c.ID],
		})
	}
	if total == 0 {
		return results
	}

	// Floor each share, then hand the leftover points to the largest
	// remainders so the shares sum to exactly 100. Ties go to the earlier
	// candidate, keeping the result deterministic.
	assigned := 0
	remainders := make([]int, len(results))
	for i := range results {
		scaled := results[i].Votes * 100
		results[i].Percent = scaled / total
		remainders[i] = scaled % total
		assigned += results[i].Percent
	}
	for assigned < 100 {
		best := -1
		for i, r := range remainders {
			if r > 0 && (best == -1 || r > remainders[best]) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		results[best].Percent++
		remainders[best] = 0
		assigned++
	}
	return results
}
