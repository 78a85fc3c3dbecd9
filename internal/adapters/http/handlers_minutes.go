package web

import (
	"net/http"
	"time"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/application/listutil"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/minutes"
)

// handleListMinutes handles GET /api/clubs/{id}/minutes
func handleListMinutes(w http.ResponseWriter, r *http.Request) {
	pp := listutil.ParsePageParams(r.URL.Query())

	records, err := stores.MinutesStore.ListByClub(r.Context(), r.PathValue("id"), pp.PerPage, (pp.Page-1)*pp.PerPage)
	if err != nil {
		internalError(w, err)
		return
	}
	if records == nil {
		records = []minutes.Minutes{}
	}
	writeJSON(w, http.StatusOK, records)
}

type minutesBody struct {
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	MeetingDate time.Time `json:"meeting_date"`
}

// handleCreateMinutes handles POST /api/clubs/{id}/minutes
func handleCreateMinutes(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var body minutesBody
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteRecordMinutes(r.Context(), orchestrators.RecordMinutesInput{
		ClubID:      r.PathValue("id"),
		Title:       body.Title,
		Body:        body.Body,
		MeetingDate: body.MeetingDate,
		CreatedBy:   session.Email,
	}, orchestrators.RecordMinutesDeps{MinutesStore: stores.MinutesStore})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleGetMinutes handles GET /api/minutes/{id}
// The markdown body is returned both raw and rendered to sanitised HTML.
func handleGetMinutes(w http.ResponseWriter, r *http.Request) {
	entity, err := stores.MinutesStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		notFound(w, "minutes not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"minutes":   entity,
		"body_html": renderMarkdown(entity.Body),
	})
}

// handleUpdateMinutes handles PUT /api/minutes/{id}
func handleUpdateMinutes(w http.ResponseWriter, r *http.Request) {
	var body minutesBody
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteRecordMinutes(r.Context(), orchestrators.RecordMinutesInput{
		ID:          r.PathValue("id"),
		Title:       body.Title,
		Body:        body.Body,
		MeetingDate: body.MeetingDate,
	}, orchestrators.RecordMinutesDeps{MinutesStore: stores.MinutesStore})
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleDeleteMinutes handles DELETE /api/minutes/{id}
func handleDeleteMinutes(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteMinutes(r.Context(), r.PathValue("id"),
		orchestrators.RecordMinutesDeps{MinutesStore: stores.MinutesStore})
	if err != nil {
		notFound(w, "minutes not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
