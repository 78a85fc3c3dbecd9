package web

import (
	"net/http"

	"clubsync/internal/domain/outbox"
)

// handleListFailedOutbox handles GET /api/admin/outbox/failed
func handleListFailedOutbox(w http.ResponseWriter, r *http.Request) {
	entries, err := stores.OutboxStore.ListFailed(r.Context(), 100)
	if err != nil {
		internalError(w, err)
		return
	}
	if entries == nil {
		entries = []outbox.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleRetryOutbox handles POST /api/admin/outbox/{id}/retry
// Forces one immediate attempt regardless of the backoff schedule.
func handleRetryOutbox(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")
	if err := outboxProcessor.ProcessSingle(r.Context(), entryID); err != nil {
		badRequest(w, err.Error())
		return
	}

	entry, err := stores.OutboxStore.GetByID(r.Context(), entryID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleAbandonOutbox handles POST /api/admin/outbox/{id}/abandon
func handleAbandonOutbox(w http.ResponseWriter, r *http.Request) {
	if err := outboxProcessor.AbandonEntry(r.Context(), r.PathValue("id")); err != nil {
		badRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
