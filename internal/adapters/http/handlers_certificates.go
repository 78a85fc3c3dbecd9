package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"clubsync/internal/application/listutil"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/certificate"
)

// handleGenerateCertificate handles POST /api/certificates/generate
// Renders a certificate and streams the file back. Nothing is persisted or
// uploaded; this is the self-service download path.
func handleGenerateCertificate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserName  string  `json:"user_name"`
		EventName string  `json:"event_name"`
		ClubName  string  `json:"club_name"`
		EventDate string  `json:"event_date"`
		Format    string  `json:"format"`
		Quality   float64 `json:"quality"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	req, artifact, err := orchestrators.ExecuteGenerateCertificate(r.Context(), orchestrators.GenerateCertificateInput{
		UserName:  body.UserName,
		EventName: body.EventName,
		ClubName:  body.ClubName,
		EventDate: body.EventDate,
		Format:    body.Format,
		Quality:   body.Quality,
	}, orchestrators.GenerateCertificateDeps{Renderer: certRenderer})
	switch {
	case errors.Is(err, certificate.ErrUnsupportedFormat), errors.Is(err, certificate.ErrInvalidQuality):
		badRequest(w, err.Error())
		return
	case errors.Is(err, certificate.ErrRender):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	case err != nil:
		badRequest(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", certificate.FileNameFor(req, body.Format)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}

// handleIssueCertificate handles POST /api/clubs/{id}/certificates
// Runs the full pipeline: record, render, upload, attach the hosted URL.
func handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	clubEntity, err := stores.ClubStore.GetByID(r.Context(), clubID)
	if err != nil {
		notFound(w, "club not found")
		return
	}

	var body struct {
		MemberName string  `json:"member_name"`
		EventName  string  `json:"event_name"`
		EventDate  string  `json:"event_date"`
		Format     string  `json:"format"`
		Quality    float64 `json:"quality"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	record, err := orchestrators.ExecuteIssueCertificate(r.Context(), orchestrators.IssueCertificateInput{
		ClubID:     clubID,
		ClubName:   clubEntity.Name,
		MemberName: body.MemberName,
		EventName:  body.EventName,
		EventDate:  body.EventDate,
		Format:     body.Format,
		Quality:    body.Quality,
	}, orchestrators.IssueCertificateDeps{
		CertificateStore: stores.CertificateStore,
		OutboxStore:      stores.OutboxStore,
		Renderer:         certRenderer,
		Uploader:         certUploader,
	})
	switch {
	case errors.Is(err, certificate.ErrUnsupportedFormat), errors.Is(err, certificate.ErrInvalidQuality):
		badRequest(w, err.Error())
	case errors.Is(err, certificate.ErrRender), errors.Is(err, certificate.ErrUpload):
		// The record exists with status failed; surface it so the caller can retry.
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  pipelineCause(err),
			"record": record,
		})
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusCreated, record)
	}
}

// pipelineCause strips the pipeline-stage sentinel prefix so the backend's
// own message reaches the caller verbatim.
func pipelineCause(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{certificate.ErrUpload, certificate.ErrRender} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

// handleListCertificates handles GET /api/clubs/{id}/certificates
func handleListCertificates(w http.ResponseWriter, r *http.Request) {
	pp := listutil.ParsePageParams(r.URL.Query())
	clubID := r.PathValue("id")

	total, err := stores.CertificateStore.CountByClub(r.Context(), clubID)
	if err != nil {
		internalError(w, err)
		return
	}
	info := listutil.NewPageInfo(pp.Page, pp.PerPage, total)

	records, err := stores.CertificateStore.ListByClub(r.Context(), clubID, info.PerPage, info.Offset())
	if err != nil {
		internalError(w, err)
		return
	}
	if records == nil {
		records = []certificate.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"certificates": records,
		"page_info":    info,
	})
}

// handleSendCertificate handles POST /api/certificates/{id}/send
func handleSendCertificate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Recipient string `json:"recipient"`
	}
	if err := strictDecode(r, &body); err != nil || body.Recipient == "" {
		badRequest(w, "recipient is required")
		return
	}

	err := orchestrators.ExecuteSendCertificate(r.Context(), orchestrators.SendCertificateInput{
		RecordID:  r.PathValue("id"),
		Recipient: body.Recipient,
	}, orchestrators.SendCertificateDeps{
		CertificateStore: stores.CertificateStore,
		ClubStore:        stores.ClubStore,
		OutboxStore:      stores.OutboxStore,
		Sender:           emailSender,
	})
	switch {
	case errors.Is(err, orchestrators.ErrCertificateNotReady):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case err != nil:
		internalError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
