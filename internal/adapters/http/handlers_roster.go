package web

import (
	"errors"
	"net/http"

	"clubsync/internal/application/listutil"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/application/projections"
	"clubsync/internal/domain/roster"
)

// handleGetRoster handles GET /api/clubs/{id}/roster
func handleGetRoster(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(),
		[]string{"member_name", "role", "joined_at"},
		[]string{"role", "status"},
	)

	result, err := projections.QueryGetClubRoster(r.Context(), projections.GetClubRosterQuery{
		ClubID:  r.PathValue("id"),
		Role:    lp.Filters["role"],
		Status:  lp.Filters["status"],
		Search:  lp.Search,
		Sort:    lp.Sort,
		Dir:     lp.Dir,
		Page:    lp.Page,
		PerPage: lp.PerPage,
	}, projections.GetClubRosterDeps{RosterStore: stores.RosterStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleJoinClub handles POST /api/clubs/{id}/roster
func handleJoinClub(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MemberName string `json:"member_name"`
		Email      string `json:"email"`
		Role       string `json:"role"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteJoinClub(r.Context(), orchestrators.JoinClubInput{
		ClubID:     r.PathValue("id"),
		MemberName: body.MemberName,
		Email:      body.Email,
		Role:       body.Role,
	}, orchestrators.JoinClubDeps{
		ClubStore:   stores.ClubStore,
		RosterStore: stores.RosterStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAlreadyMember):
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		case errors.Is(err, orchestrators.ErrClubNotVerified):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
		default:
			badRequest(w, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleChangeRole handles PUT /api/roster/{id}/role
func handleChangeRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	deps := orchestrators.JoinClubDeps{ClubStore: stores.ClubStore, RosterStore: stores.RosterStore}
	if err := orchestrators.ExecuteChangeRole(r.Context(), r.PathValue("id"), body.Role, deps); err != nil {
		badRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLeaveClub handles POST /api/roster/{id}/leave
func handleLeaveClub(w http.ResponseWriter, r *http.Request) {
	deps := orchestrators.JoinClubDeps{ClubStore: stores.ClubStore, RosterStore: stores.RosterStore}
	if err := orchestrators.ExecuteLeaveClub(r.Context(), r.PathValue("id"), deps); err != nil {
		if errors.Is(err, roster.ErrAlreadyLeft) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		badRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
