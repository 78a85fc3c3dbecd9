package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"clubsync/internal/adapters/assethost"
	"clubsync/internal/adapters/render"
	certificateStore "clubsync/internal/adapters/storage/certificate"
	outboxStore "clubsync/internal/adapters/storage/outbox"
	"clubsync/internal/domain/certificate"
	"clubsync/internal/domain/outbox"

	"github.com/google/uuid"
)

// GenerateCertificateInput carries input for a render-only generation.
type GenerateCertificateInput struct {
	UserName  string
	EventName string
	ClubName  string
	EventDate string
	Format    string
	Quality   float64 // 0 means certificate.DefaultQuality
}

// GenerateCertificateDeps holds dependencies for GenerateCertificate.
type GenerateCertificateDeps struct {
	Renderer render.Renderer
}

// ExecuteGenerateCertificate renders a certificate without persisting anything.
// Used for the download path where the caller just wants the bytes.
// PRE: Format and quality are within the supported set
// POST: Returns the rendered Artifact; no records or uploads
func ExecuteGenerateCertificate(ctx context.Context, input GenerateCertificateInput, deps GenerateCertificateDeps) (certificate.Request, certificate.Artifact, error) {
	quality := input.Quality
	if quality == 0 {
		quality = certificate.DefaultQuality
	}
	if err := certificate.ValidateFormat(input.Format, quality); err != nil {
		return certificate.Request{}, certificate.Artifact{}, err
	}

	req := certificate.Request{
		UserName:      input.UserName,
		EventName:     input.EventName,
		ClubName:      input.ClubName,
		EventDate:     input.EventDate,
		CertificateID: uuid.New().String(),
	}
	if err := req.Validate(); err != nil {
		return certificate.Request{}, certificate.Artifact{}, err
	}

	artifact, err := deps.Renderer.Render(ctx, req, input.Format, quality)
	if err != nil {
		return certificate.Request{}, certificate.Artifact{}, err
	}
	return req, artifact, nil
}

// IssueCertificateInput carries input for the full issuance pipeline.
type IssueCertificateInput struct {
	ClubID     string
	ClubName   string
	MemberName string
	EventName  string
	EventDate  string
	Format     string
	Quality    float64
}

// IssueCertificateDeps holds dependencies for IssueCertificate.
type IssueCertificateDeps struct {
	CertificateStore certificateStore.Store
	OutboxStore      outboxStore.Store
	Renderer         render.Renderer
	Uploader         assethost.Uploader
}

// RecordAssetURLPayload is the outbox payload for re-applying an asset URL
// to a certificate record.
type RecordAssetURLPayload struct {
	RecordID string `json:"record_id"`
	AssetURL string `json:"asset_url"`
}

// ExecuteIssueCertificate runs the full pipeline: persist a record, render,
// upload, then attach the hosted URL to the record.
// PRE: Input names are non-empty; format/quality supported
// POST: Record exists with status uploaded on full success. If the asset host
// returned a URL but the record update failed, the update is enqueued in the
// outbox so no record is left orphaned.
func ExecuteIssueCertificate(ctx context.Context, input IssueCertificateInput, deps IssueCertificateDeps) (certificate.Record, error) {
	quality := input.Quality
	if quality == 0 {
		quality = certificate.DefaultQuality
	}
	if err := certificate.ValidateFormat(input.Format, quality); err != nil {
		return certificate.Record{}, err
	}

	req := certificate.Request{
		UserName:      input.MemberName,
		EventName:     input.EventName,
		ClubName:      input.ClubName,
		EventDate:     input.EventDate,
		CertificateID: uuid.New().String(),
	}
	if err := req.Validate(); err != nil {
		return certificate.Record{}, err
	}

	record := certificate.Record{
		ID:         req.CertificateID,
		ClubID:     input.ClubID,
		MemberName: input.MemberName,
		EventName:  input.EventName,
		IssuedAt:   time.Now(),
		Status:     certificate.StatusPending,
	}
	if err := record.Validate(); err != nil {
		return certificate.Record{}, err
	}
	if err := deps.CertificateStore.Save(ctx, record); err != nil {
		return certificate.Record{}, err
	}

	artifact, err := deps.Renderer.Render(ctx, req, input.Format, quality)
	if err != nil {
		_ = deps.CertificateStore.SetAssetURL(ctx, record.ID, "", certificate.StatusFailed)
		return record, err
	}

	result, err := deps.Uploader.Upload(ctx, assethost.UploadRequest{
		FileName:    certificate.FileNameFor(req, input.Format),
		ContentType: artifact.ContentType,
		Data:        artifact.Data,
		Folder:      "certificates",
	})
	if err != nil {
		_ = deps.CertificateStore.SetAssetURL(ctx, record.ID, "", certificate.StatusFailed)
		return record, fmt.Errorf("%w: %v", certificate.ErrUpload, err)
	}

	if err := deps.CertificateStore.SetAssetURL(ctx, record.ID, result.SecureURL, certificate.StatusUploaded); err != nil {
		// The asset exists remotely but the record does not know its URL.
		// Hand the reconciliation to the outbox instead of dropping it.
		if enqueueErr := enqueueRecordAssetURL(ctx, deps.OutboxStore, record.ID, result.SecureURL); enqueueErr != nil {
			slog.Error("certificate_event", "event", "asset_url_enqueue_failed", "record_id", record.ID, "error", enqueueErr.Error())
			return record, err
		}
		slog.Warn("certificate_event", "event", "asset_url_deferred", "record_id", record.ID, "asset_url", result.SecureURL)
		record.AssetURL = result.SecureURL
		return record, nil
	}

	record.AssetURL = result.SecureURL
	record.Status = certificate.StatusUploaded
	slog.Info("certificate_event", "event", "certificate_issued", "record_id", record.ID, "club_id", input.ClubID, "format", input.Format)
	return record, nil
}

func enqueueRecordAssetURL(ctx context.Context, store outboxStore.Store, recordID, assetURL string) error {
	payload, err := json.Marshal(RecordAssetURLPayload{RecordID: recordID, AssetURL: assetURL})
	if err != nil {
		return err
	}
	entry := outbox.Entry{
		ID:          uuid.New().String(),
		ActionType:  outbox.ActionTypeRecordAssetURL,
		Payload:     string(payload),
		Status:      outbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   time.Now(),
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return store.Save(ctx, entry)
}
