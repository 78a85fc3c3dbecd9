package assethost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testUploader(serverURL string) *CloudinaryUploader {
	return &CloudinaryUploader{
		client:       &http.Client{Timeout: 5 * time.Second},
		baseURL:      serverURL,
		cloudID:      "test-cloud",
		uploadPreset: "test_preset",
	}
}

func TestUploadSuccess(t *testing.T) {
	var gotPreset, gotFolder, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-cloud/auto/upload" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		gotFolder = r.FormValue("folder")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFile = header.Filename
		}
		w.Write([]byte(`{"secure_url": "https://res.example.com/certs/jane.png"}`))
	}))
	defer server.Close()

	result, err := testUploader(server.URL).Upload(context.Background(), UploadRequest{
		FileName:    "jane-certificate.png",
		ContentType: "image/png",
		Data:        []byte("png bytes"),
		Folder:      "certificates",
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if result.SecureURL != "https://res.example.com/certs/jane.png" {
		t.Errorf("SecureURL = %q", result.SecureURL)
	}
	if gotPreset != "test_preset" {
		t.Errorf("upload_preset = %q, want test_preset", gotPreset)
	}
	if gotFolder != "certificates" {
		t.Errorf("folder = %q, want certificates", gotFolder)
	}
	if gotFile != "jane-certificate.png" {
		t.Errorf("file name = %q", gotFile)
	}
}

func TestUploadHostErrorMessageSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid upload preset"}}`))
	}))
	defer server.Close()

	_, err := testUploader(server.URL).Upload(context.Background(), UploadRequest{
		FileName: "x.png",
		Data:     []byte("x"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Invalid upload preset" {
		t.Errorf("error = %q, want host message verbatim", err.Error())
	}
}

func TestUploadNonJSONErrorGetsGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	_, err := testUploader(server.URL).Upload(context.Background(), UploadRequest{
		FileName: "x.png",
		Data:     []byte("x"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "upload failed with status 502" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	_, err := testUploader("http://unused.invalid").Upload(context.Background(), UploadRequest{
		FileName: "x.png",
	})
	if err == nil {
		t.Fatal("expected error for empty file")
	}
}
