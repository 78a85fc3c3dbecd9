package web

import (
	"errors"
	"net/http"
	"time"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/election"
)

// handleListElections handles GET /api/clubs/{id}/elections
func handleListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := stores.ElectionStore.ListByClub(r.Context(), r.PathValue("id"))
	if err != nil {
		internalError(w, err)
		return
	}
	if elections == nil {
		elections = []election.Election{}
	}
	writeJSON(w, http.StatusOK, elections)
}

// handleOpenElection handles POST /api/clubs/{id}/elections
func handleOpenElection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position   string    `json:"position"`
		ClosesAt   time.Time `json:"closes_at"`
		Candidates []string  `json:"candidates"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteOpenElection(r.Context(), orchestrators.OpenElectionInput{
		ClubID:     r.PathValue("id"),
		Position:   body.Position,
		ClosesAt:   body.ClosesAt,
		Candidates: body.Candidates,
	}, orchestrators.ElectionDeps{ElectionStore: stores.ElectionStore})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// electionView is the detail payload for one election.
type electionView struct {
	Election   election.Election         `json:"election"`
	Candidates []election.Candidate      `json:"candidates"`
	Tally      []election.CandidateTally `json:"tally,omitempty"`
}

// handleGetElection handles GET /api/elections/{id}
// The tally is only included once the election is closed.
func handleGetElection(w http.ResponseWriter, r *http.Request) {
	entity, err := stores.ElectionStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		notFound(w, "election not found")
		return
	}
	candidates, err := stores.ElectionStore.ListCandidates(r.Context(), entity.ID)
	if err != nil {
		internalError(w, err)
		return
	}
	if candidates == nil {
		candidates = []election.Candidate{}
	}

	view := electionView{Election: entity, Candidates: candidates}
	if entity.Status == election.StatusClosed {
		ballots, err := stores.ElectionStore.ListBallots(r.Context(), entity.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		view.Tally = election.Tally(candidates, ballots)
	}
	writeJSON(w, http.StatusOK, view)
}

// handleCastBallot handles POST /api/elections/{id}/ballots
// The voter identity comes from the session, never from the body.
func handleCastBallot(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		CandidateID string `json:"candidate_id"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	err := orchestrators.ExecuteCastBallot(r.Context(), orchestrators.CastBallotInput{
		ElectionID:  r.PathValue("id"),
		CandidateID: body.CandidateID,
		VoterEmail:  session.Email,
	}, orchestrators.ElectionDeps{ElectionStore: stores.ElectionStore})
	switch {
	case errors.Is(err, election.ErrDuplicateVoter):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, election.ErrClosed), errors.Is(err, election.ErrNoCandidate):
		badRequest(w, err.Error())
	case err != nil:
		internalError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleCloseElection handles POST /api/elections/{id}/close
func handleCloseElection(w http.ResponseWriter, r *http.Request) {
	tally, err := orchestrators.ExecuteCloseElection(r.Context(), r.PathValue("id"),
		orchestrators.ElectionDeps{ElectionStore: stores.ElectionStore})
	if errors.Is(err, election.ErrAlreadyClosed) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tally": tally})
}
