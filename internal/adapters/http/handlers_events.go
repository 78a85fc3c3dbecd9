package web

import (
	"net/http"
	"time"

	eventStore "clubsync/internal/adapters/storage/event"
	"clubsync/internal/application/listutil"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/event"
)

// handleListEvents handles GET /api/clubs/{id}/events
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(), nil, []string{"status"})

	events, err := stores.EventStore.List(r.Context(), eventStore.ListFilter{
		ClubID: r.PathValue("id"),
		Status: lp.Filters["status"],
		Limit:  lp.PerPage,
		Offset: (lp.Page - 1) * lp.PerPage,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if events == nil {
		events = []event.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// handleCreateEvent handles POST /api/clubs/{id}/events
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Venue       string    `json:"venue"`
		StartsAt    time.Time `json:"starts_at"`
		EndsAt      time.Time `json:"ends_at"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteCreateEvent(r.Context(), orchestrators.CreateEventInput{
		ClubID:      r.PathValue("id"),
		Title:       body.Title,
		Description: body.Description,
		Venue:       body.Venue,
		StartsAt:    body.StartsAt,
		EndsAt:      body.EndsAt,
	}, orchestrators.CreateEventDeps{EventStore: stores.EventStore})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handlePublishEvent handles POST /api/events/{id}/publish
func handlePublishEvent(w http.ResponseWriter, r *http.Request) {
	deps := orchestrators.CreateEventDeps{EventStore: stores.EventStore}
	if err := orchestrators.ExecutePublishEvent(r.Context(), r.PathValue("id"), deps); err != nil {
		badRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCompleteEvent handles POST /api/events/{id}/complete
func handleCompleteEvent(w http.ResponseWriter, r *http.Request) {
	deps := orchestrators.CreateEventDeps{EventStore: stores.EventStore}
	if err := orchestrators.ExecuteCompleteEvent(r.Context(), r.PathValue("id"), deps); err != nil {
		badRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCancelEvent handles POST /api/events/{id}/cancel
func handleCancelEvent(w http.ResponseWriter, r *http.Request) {
	deps := orchestrators.CreateEventDeps{EventStore: stores.EventStore}
	if err := orchestrators.ExecuteCancelEvent(r.Context(), r.PathValue("id"), deps); err != nil {
		badRequest(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
