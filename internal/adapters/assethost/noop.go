package assethost

import (
	"context"
	"fmt"
	"log/slog"
)

// NoopUploader is a no-op uploader for development and testing. It returns a
// deterministic fake URL without touching the network.
type NoopUploader struct{}

// NewNoopUploader creates a new NoopUploader.
func NewNoopUploader() *NoopUploader {
	return &NoopUploader{}
}

// Upload logs the request and returns a local-looking URL.
// POST: Returns a fake secure URL; no network activity
func (u *NoopUploader) Upload(_ context.Context, req UploadRequest) (UploadResult, error) {
	slog.Info("noop_asset_upload", "file", req.FileName, "bytes", len(req.Data))
	return UploadResult{SecureURL: fmt.Sprintf("https://assets.invalid/%s/%s", req.Folder, req.FileName)}, nil
}
