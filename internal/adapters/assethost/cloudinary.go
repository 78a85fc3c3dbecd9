package assethost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// Defaults for the hosted upload endpoint. The cloud id can be overridden
// with CLUBSYNC_ASSET_CLOUD.
const (
	defaultCloudID      = "clubsync"
	defaultUploadPreset = "clubsync_certificates"
)

// CloudinaryUploader uploads certificate files via Cloudinary's unsigned
// upload API.
type CloudinaryUploader struct {
	client       *http.Client
	baseURL      string // overridable for tests
	cloudID      string
	uploadPreset string
}

// NewCloudinaryUploader creates an uploader for the configured cloud.
// PRE: CLUBSYNC_ASSET_CLOUD optionally set in the environment
// POST: Returns a ready-to-use uploader with a 30s request timeout
func NewCloudinaryUploader() *CloudinaryUploader {
	cloudID := os.Getenv("CLUBSYNC_ASSET_CLOUD")
	if cloudID == "" {
		cloudID = defaultCloudID
	}
	return &CloudinaryUploader{
		client:       &http.Client{Timeout: 30 * time.Second},
		baseURL:      "https://api.cloudinary.com/v1_1",
		cloudID:      cloudID,
		uploadPreset: defaultUploadPreset,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one file as an unsigned multipart POST.
// PRE: req.Data is non-empty
// POST: Returns the hosted secure_url, or the host's error message verbatim
// when the host supplies one
func (u *CloudinaryUploader) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if len(req.Data) == 0 {
		return UploadResult{}, fmt.Errorf("upload: empty file")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", req.FileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload form: %w", err)
	}
	if _, err := part.Write(req.Data); err != nil {
		return UploadResult{}, fmt.Errorf("upload form: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return UploadResult{}, fmt.Errorf("upload form: %w", err)
	}
	folder := req.Folder
	if folder == "" {
		folder = "certificates"
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return UploadResult{}, fmt.Errorf("upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/auto/upload", u.baseURL, u.cloudID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return UploadResult{}, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(httpReq)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload response: %w", err)
	}

	var parsed uploadResponse
	// The error path deliberately ignores a decode failure so the generic
	// message below still applies to non-JSON bodies.
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("asset_upload_failed", "status", resp.StatusCode, "file", req.FileName, "host_message", parsed.Error.Message)
		if parsed.Error.Message != "" {
			return UploadResult{}, fmt.Errorf("%s", parsed.Error.Message)
		}
		return UploadResult{}, fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	if parsed.SecureURL == "" {
		return UploadResult{}, fmt.Errorf("upload succeeded but no secure_url in response")
	}

	slog.Info("asset_uploaded", "file", req.FileName, "url", parsed.SecureURL)
	return UploadResult{SecureURL: parsed.SecureURL}, nil
}
