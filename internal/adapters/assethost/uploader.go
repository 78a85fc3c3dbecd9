package assethost

import (
	"context"
)

// UploadRequest carries one rendered certificate to the asset host.
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Folder      string // remote folder, e.g. "certificates"
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	SecureURL string // HTTPS URL of the hosted asset
}

// Uploader pushes rendered certificate files to an external asset host.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
}
