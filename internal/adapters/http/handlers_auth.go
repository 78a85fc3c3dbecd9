package web

import (
	"errors"
	"net/http"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/application/orchestrators"
)

// handleLogin handles POST /api/auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: orchestrators.ErrInvalidCredentials.Error()})
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": result.AccountID,
		"email":      result.Email,
		"role":       result.Role,
	})
}

// handleLogout handles POST /api/auth/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("clubsync_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSession handles GET /api/auth/session
func handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not logged in"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": session.AccountID,
		"email":      session.Email,
		"role":       session.Role,
	})
}
