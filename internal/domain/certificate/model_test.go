package certificate_test

import (
	"errors"
	"testing"

	"clubsync/internal/domain/certificate"
)

// TestValidateFormat tests format and quality gating before rendering.
func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		quality float64
		wantErr error
	}{
		{"png ok", certificate.FormatPNG, 0.95, nil},
		{"jpeg ok", certificate.FormatJPEG, 0.8, nil},
		{"pdf ok", certificate.FormatPDF, 1.0, nil},
		{"unknown format", "gif", 0.95, certificate.ErrUnsupportedFormat},
		{"empty format", "", 0.95, certificate.ErrUnsupportedFormat},
		{"zero quality", certificate.FormatJPEG, 0, certificate.ErrInvalidQuality},
		{"quality above one", certificate.FormatJPEG, 1.2, certificate.ErrInvalidQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := certificate.ValidateFormat(tt.format, tt.quality)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFormat(%q, %v) = %v, want %v", tt.format, tt.quality, err, tt.wantErr)
			}
		})
	}
}

// TestContentTypeFor maps formats to MIME types.
func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{certificate.FormatPNG, "image/png"},
		{certificate.FormatJPEG, "image/jpeg"},
		{certificate.FormatPDF, "application/pdf"},
		{"bmp", ""},
	}
	for _, tt := range tests {
		if got := certificate.ContentTypeFor(tt.format); got != tt.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

// TestRequestValidate tests required display fields.
func TestRequestValidate(t *testing.T) {
	valid := certificate.Request{
		UserName:  "Jane Doe",
		EventName: "Hack Night",
		ClubName:  "CS Club",
		EventDate: "Jan 1, 2025",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request: %v", err)
	}

	missing := valid
	missing.UserName = "  "
	if err := missing.Validate(); err == nil {
		t.Error("expected error for blank recipient name")
	}
}

// TestRecordValidate tests status gating on issuance records.
func TestRecordValidate(t *testing.T) {
	r := certificate.Record{
		ID:         "cert-1",
		ClubID:     "club-42",
		MemberName: "Jane Doe",
		EventName:  "Hack Night",
		Status:     certificate.StatusPending,
	}
	if err := r.Validate(); err != nil {
		t.Errorf("valid record: %v", err)
	}
	r.Status = "lost"
	if err := r.Validate(); err == nil {
		t.Error("expected error for invalid status")
	}
}

// TestFileNameFor builds download names from recipient and format.
func TestFileNameFor(t *testing.T) {
	req := certificate.Request{UserName: "Jane Doe"}
	if got := certificate.FileNameFor(req, certificate.FormatJPEG); got != "Jane-Doe-certificate.jpg" {
		t.Errorf("jpeg name = %q", got)
	}
	if got := certificate.FileNameFor(certificate.Request{}, certificate.FormatPDF); got != "certificate-certificate.pdf" {
		t.Errorf("fallback name = %q", got)
	}
}
