package web

import (
	"net/http"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/application/listutil"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/feedback"
)

// handleListFeedback handles GET /api/clubs/{id}/feedback
// Available to excom and admins only; anonymous entries carry no submitter.
func handleListFeedback(w http.ResponseWriter, r *http.Request) {
	pp := listutil.ParsePageParams(r.URL.Query())
	clubID := r.PathValue("id")

	entries, err := stores.FeedbackStore.ListByClub(r.Context(), clubID, pp.PerPage, (pp.Page-1)*pp.PerPage)
	if err != nil {
		internalError(w, err)
		return
	}
	if entries == nil {
		entries = []feedback.Feedback{}
	}

	average, err := stores.FeedbackStore.AverageRating(r.Context(), clubID)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"feedback":       entries,
		"average_rating": average,
	})
}

// handleSubmitFeedback handles POST /api/clubs/{id}/feedback
func handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var body struct {
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
		Anonymous bool   `json:"anonymous"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteSubmitFeedback(r.Context(), orchestrators.SubmitFeedbackInput{
		ClubID:      r.PathValue("id"),
		Rating:      body.Rating,
		Comment:     body.Comment,
		Anonymous:   body.Anonymous,
		SubmittedBy: session.Email,
	}, orchestrators.SubmitFeedbackDeps{FeedbackStore: stores.FeedbackStore})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
