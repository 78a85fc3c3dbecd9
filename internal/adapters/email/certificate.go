package email

import (
	"bytes"
	"fmt"
	"html/template"

	"clubsync/internal/domain/certificate"
)

var certificateBody = template.Must(template.New("certificate_email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 560px; margin: 0 auto;">
  <h2 style="color: #1a365d;">Your certificate from {{.ClubName}}</h2>
  <p>Hi {{.MemberName}},</p>
  <p>Thank you for taking part in <strong>{{.EventName}}</strong>. Your certificate
  of participation is ready.</p>
  {{if .AssetURL}}
  <p><a href="{{.AssetURL}}" style="display: inline-block; padding: 10px 20px; background: #2b6cb0; color: #fff; text-decoration: none; border-radius: 4px;">View certificate</a></p>
  {{end}}
  {{if .Attached}}
  <p>A copy is attached to this email.</p>
  {{end}}
  <p style="color: #718096; font-size: 12px;">Certificate ID: {{.CertificateID}}</p>
</div>
`))

// CertificateEmail builds the delivery email for an issued certificate.
// The rendered file, when provided, is attached alongside the hosted link.
// PRE: record has been validated; recipient is a valid email address
// POST: Returns a SendRequest ready for any Sender
func CertificateEmail(recipient, clubName string, record certificate.Record, artifact *certificate.Artifact, fileName string) (SendRequest, error) {
	data := struct {
		ClubName      string
		MemberName    string
		EventName     string
		AssetURL      string
		CertificateID string
		Attached      bool
	}{
		ClubName:      clubName,
		MemberName:    record.MemberName,
		EventName:     record.EventName,
		AssetURL:      record.AssetURL,
		CertificateID: record.ID,
		Attached:      artifact != nil,
	}

	var body bytes.Buffer
	if err := certificateBody.Execute(&body, data); err != nil {
		return SendRequest{}, fmt.Errorf("certificate email template: %w", err)
	}

	req := SendRequest{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Certificate of participation: %s", record.EventName),
		HTML:    body.String(),
	}
	if artifact != nil {
		req.Attachments = append(req.Attachments, Attachment{
			Filename:    fileName,
			ContentType: artifact.ContentType,
			Data:        artifact.Data,
		})
	}
	return req, nil
}
