package render

import (
	"context"

	"clubsync/internal/domain/certificate"
)

// Renderer turns a certificate request into rendered bytes in one of the
// supported formats.
type Renderer interface {
	// Render produces an Artifact in the requested format. The format and
	// quality must already satisfy certificate.ValidateFormat.
	Render(ctx context.Context, req certificate.Request, format string, quality float64) (certificate.Artifact, error)
	// Close releases the rendering backend.
	Close() error
}
