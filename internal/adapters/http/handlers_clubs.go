package web

import (
	"errors"
	"net/http"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/application/listutil"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/application/projections"
	"clubsync/internal/domain/club"
)

// handleListClubs handles GET /api/clubs
func handleListClubs(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(),
		[]string{"name", "category", "status", "created_at"},
		[]string{"category", "status"},
	)

	result, err := projections.QueryGetClubList(r.Context(), projections.GetClubListQuery{
		Category: lp.Filters["category"],
		Status:   lp.Filters["status"],
		Search:   lp.Search,
		Sort:     lp.Sort,
		Dir:      lp.Dir,
		Page:     lp.Page,
		PerPage:  lp.PerPage,
	}, projections.GetClubListDeps{ClubStore: stores.ClubStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleRegisterClub handles POST /api/clubs
func handleRegisterClub(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name         string `json:"name"`
		Category     string `json:"category"`
		AdvisorEmail string `json:"advisor_email"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteRegisterClub(r.Context(), orchestrators.RegisterClubInput{
		Name:         body.Name,
		Category:     body.Category,
		AdvisorEmail: body.AdvisorEmail,
	}, orchestrators.RegisterClubDeps{
		ClubStore: stores.ClubStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrClubNameTaken) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleGetClub handles GET /api/clubs/{id}
func handleGetClub(w http.ResponseWriter, r *http.Request) {
	entity, err := stores.ClubStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		notFound(w, "club not found")
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

// handleVerifyClub handles POST /api/clubs/{id}/verify
func handleVerifyClub(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Approve bool `json:"approve"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	err := orchestrators.ExecuteVerifyClub(r.Context(), orchestrators.VerifyClubInput{
		ClubID:   r.PathValue("id"),
		Reviewer: session.Email,
		Approve:  body.Approve,
	}, orchestrators.VerifyClubDeps{ClubStore: stores.ClubStore})
	if err != nil {
		if errors.Is(err, club.ErrNotPending) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleArchiveClub handles POST /api/clubs/{id}/archive
func handleArchiveClub(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteArchiveClub(r.Context(), r.PathValue("id"), orchestrators.VerifyClubDeps{
		ClubStore: stores.ClubStore,
	})
	if err != nil {
		if errors.Is(err, club.ErrAlreadyArchived) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
