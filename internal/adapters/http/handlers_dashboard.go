package web

import (
	"net/http"

	"clubsync/internal/application/projections"
)

// handleGetDashboard handles GET /api/clubs/{id}/dashboard
func handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	if _, err := stores.ClubStore.GetByID(r.Context(), clubID); err != nil {
		notFound(w, "club not found")
		return
	}

	result, err := projections.QueryGetClubDashboard(r.Context(),
		projections.GetClubDashboardQuery{ClubID: clubID},
		projections.GetClubDashboardDeps{
			RosterStore:      stores.RosterStore,
			EventStore:       stores.EventStore,
			FeedbackStore:    stores.FeedbackStore,
			CertificateStore: stores.CertificateStore,
			ProfileStore:     stores.ProfileStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active_members":     result.ActiveMembers,
		"excom_members":      result.ExcomMembers,
		"events_by_status":   result.EventsByStatus,
		"average_rating":     result.AverageRating,
		"certificates_count": result.CertificatesCount,
		"profile_completion": result.ProfileCompletion,
	})
}
