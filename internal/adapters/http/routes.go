package web

import (
	"net/http"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/domain/account"
)

// registerRoutes attaches all API handlers to the mux.
// Reads on club content are public; writes require a session with the right
// role. Admin-only surfaces are wrapped with RequireRole.
func registerRoutes(mux *http.ServeMux) {
	requireAuth := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	requireManager := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(account.RoleAdmin, account.RoleClubAdmin)(h)
	}
	requireAdmin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(account.RoleAdmin)(h)
	}

	// Auth
	mux.HandleFunc("POST /api/auth/login", handleLogin)
	mux.HandleFunc("POST /api/auth/logout", handleLogout)
	mux.HandleFunc("GET /api/auth/session", handleGetSession)

	// Clubs and verification
	mux.HandleFunc("GET /api/clubs", handleListClubs)
	mux.Handle("POST /api/clubs", requireManager(handleRegisterClub))
	mux.HandleFunc("GET /api/clubs/{id}", handleGetClub)
	mux.Handle("POST /api/clubs/{id}/verify", requireAdmin(handleVerifyClub))
	mux.Handle("POST /api/clubs/{id}/archive", requireAdmin(handleArchiveClub))

	// Club profile details and wizard
	mux.HandleFunc("GET /api/clubs/{id}/details", handleGetClubDetails)
	mux.Handle("PUT /api/clubs/{id}/details", requireManager(handlePutClubDetails))
	mux.Handle("POST /api/clubs/{id}/wizard", requireManager(handleStartWizard))
	mux.Handle("GET /api/wizard/{token}", requireManager(handleGetWizard))
	mux.Handle("POST /api/wizard/{token}/next", requireManager(handleWizardNext))
	mux.Handle("POST /api/wizard/{token}/previous", requireManager(handleWizardPrevious))
	mux.Handle("PUT /api/wizard/{token}/field", requireManager(handleWizardField))
	mux.Handle("POST /api/wizard/{token}/tags", requireManager(handleWizardAddTag))
	mux.Handle("DELETE /api/wizard/{token}/tags", requireManager(handleWizardRemoveTag))
	mux.Handle("POST /api/wizard/{token}/complete", requireManager(handleWizardComplete))

	// Roster
	mux.HandleFunc("GET /api/clubs/{id}/roster", handleGetRoster)
	mux.Handle("POST /api/clubs/{id}/roster", requireAuth(handleJoinClub))
	mux.Handle("PUT /api/roster/{id}/role", requireManager(handleChangeRole))
	mux.Handle("POST /api/roster/{id}/leave", requireAuth(handleLeaveClub))

	// Events
	mux.HandleFunc("GET /api/clubs/{id}/events", handleListEvents)
	mux.Handle("POST /api/clubs/{id}/events", requireManager(handleCreateEvent))
	mux.Handle("POST /api/events/{id}/publish", requireManager(handlePublishEvent))
	mux.Handle("POST /api/events/{id}/complete", requireManager(handleCompleteEvent))
	mux.Handle("POST /api/events/{id}/cancel", requireManager(handleCancelEvent))

	// Elections
	mux.HandleFunc("GET /api/clubs/{id}/elections", handleListElections)
	mux.Handle("POST /api/clubs/{id}/elections", requireManager(handleOpenElection))
	mux.HandleFunc("GET /api/elections/{id}", handleGetElection)
	mux.Handle("POST /api/elections/{id}/ballots", requireAuth(handleCastBallot))
	mux.Handle("POST /api/elections/{id}/close", requireManager(handleCloseElection))

	// Minutes
	mux.HandleFunc("GET /api/clubs/{id}/minutes", handleListMinutes)
	mux.Handle("POST /api/clubs/{id}/minutes", requireManager(handleCreateMinutes))
	mux.HandleFunc("GET /api/minutes/{id}", handleGetMinutes)
	mux.Handle("PUT /api/minutes/{id}", requireManager(handleUpdateMinutes))
	mux.Handle("DELETE /api/minutes/{id}", requireManager(handleDeleteMinutes))

	// Feedback
	mux.Handle("GET /api/clubs/{id}/feedback", requireManager(handleListFeedback))
	mux.Handle("POST /api/clubs/{id}/feedback", requireAuth(handleSubmitFeedback))

	// Certificates
	mux.HandleFunc("POST /api/certificates/generate", handleGenerateCertificate)
	mux.Handle("POST /api/clubs/{id}/certificates", requireManager(handleIssueCertificate))
	mux.HandleFunc("GET /api/clubs/{id}/certificates", handleListCertificates)
	mux.Handle("POST /api/certificates/{id}/send", requireManager(handleSendCertificate))

	// Dashboard
	mux.HandleFunc("GET /api/clubs/{id}/dashboard", handleGetDashboard)

	// Outbox administration
	mux.Handle("GET /api/admin/outbox/failed", requireAdmin(handleListFailedOutbox))
	mux.Handle("POST /api/admin/outbox/{id}/retry", requireAdmin(handleRetryOutbox))
	mux.Handle("POST /api/admin/outbox/{id}/abandon", requireAdmin(handleAbandonOutbox))
}
