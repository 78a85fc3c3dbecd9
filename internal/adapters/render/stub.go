package render

import (
	"context"

	"clubsync/internal/domain/certificate"
)

// StubRenderer returns tiny valid file headers without a browser. Used in
// tests and when no rendering backend is configured.
type StubRenderer struct{}

// NewStubRenderer creates a new StubRenderer.
func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

var stubBytes = map[string][]byte{
	certificate.FormatPNG:  {0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a},
	certificate.FormatJPEG: {0xff, 0xd8, 0xff, 0xe0},
	certificate.FormatPDF:  []byte("%PDF-1.4\n"),
}

// Render validates inputs and returns placeholder bytes for the format.
// POST: Same validation behaviour as the real renderer; no side effects
func (r *StubRenderer) Render(_ context.Context, req certificate.Request, format string, quality float64) (certificate.Artifact, error) {
	if err := certificate.ValidateFormat(format, quality); err != nil {
		return certificate.Artifact{}, err
	}
	if err := req.Validate(); err != nil {
		return certificate.Artifact{}, err
	}
	return certificate.Artifact{
		ContentType: certificate.ContentTypeFor(format),
		Data:        stubBytes[format],
	}, nil
}

// Close is a no-op.
func (r *StubRenderer) Close() error { return nil }
