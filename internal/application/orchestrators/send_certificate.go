package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"clubsync/internal/adapters/email"
	certificateStore "clubsync/internal/adapters/storage/certificate"
	clubStore "clubsync/internal/adapters/storage/club"
	outboxStore "clubsync/internal/adapters/storage/outbox"
	"clubsync/internal/domain/certificate"
	"clubsync/internal/domain/outbox"

	"github.com/google/uuid"
)

// SendCertificateInput carries input for the orchestrator.
type SendCertificateInput struct {
	RecordID  string
	Recipient string
}

// SendCertificateDeps holds dependencies for SendCertificate.
type SendCertificateDeps struct {
	CertificateStore certificateStore.Store
	ClubStore        clubStore.Store
	OutboxStore      outboxStore.Store
	Sender           email.Sender
}

var ErrCertificateNotReady = errors.New("certificate has no hosted asset yet")

// CertificateEmailPayload is the outbox payload for a deferred delivery.
type CertificateEmailPayload struct {
	RecordID  string `json:"record_id"`
	Recipient string `json:"recipient"`
}

// ExecuteSendCertificate emails the hosted certificate link to the recipient.
// PRE: Record exists with status uploaded
// POST: Email sent, or the delivery enqueued in the outbox when the provider
// rejects it
func ExecuteSendCertificate(ctx context.Context, input SendCertificateInput, deps SendCertificateDeps) error {
	record, err := deps.CertificateStore.GetByID(ctx, input.RecordID)
	if err != nil {
		return err
	}
	if record.Status != certificate.StatusUploaded || record.AssetURL == "" {
		return ErrCertificateNotReady
	}

	clubEntity, err := deps.ClubStore.GetByID(ctx, record.ClubID)
	if err != nil {
		return err
	}

	req, err := email.CertificateEmail(input.Recipient, clubEntity.Name, record, nil, "")
	if err != nil {
		return err
	}

	if _, err := deps.Sender.Send(ctx, req); err != nil {
		if enqueueErr := enqueueCertificateEmail(ctx, deps.OutboxStore, input); enqueueErr != nil {
			slog.Error("certificate_event", "event", "email_enqueue_failed", "record_id", input.RecordID, "error", enqueueErr.Error())
			return err
		}
		slog.Warn("certificate_event", "event", "email_deferred", "record_id", input.RecordID, "recipient", input.Recipient)
		return nil
	}

	slog.Info("certificate_event", "event", "certificate_emailed", "record_id", input.RecordID, "recipient", input.Recipient)
	return nil
}

func enqueueCertificateEmail(ctx context.Context, store outboxStore.Store, input SendCertificateInput) error {
	payload, err := json.Marshal(CertificateEmailPayload{RecordID: input.RecordID, Recipient: input.Recipient})
	if err != nil {
		return err
	}
	entry := outbox.Entry{
		ID:          uuid.New().String(),
		ActionType:  outbox.ActionTypeCertificateEmail,
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
