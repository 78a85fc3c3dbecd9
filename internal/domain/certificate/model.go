package certificate

import (
	"errors"
	"strings"
	"time"
)

// Supported output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatPDF  = "pdf"
)

// DefaultQuality is the JPEG encoding quality used when none is given.
const DefaultQuality = 0.95

// Record lifecycle statuses.
const (
	StatusPending  = "pending"  // record created, asset not yet uploaded
	StatusUploaded = "uploaded" // asset URL recorded
	StatusFailed   = "failed"   // upload abandoned after retries
)

// Domain errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported certificate format")
	ErrInvalidQuality    = errors.New("quality must be in (0, 1]")
	ErrRender            = errors.New("certificate rendering failed")
	ErrUpload            = errors.New("certificate upload failed")
)

// Request describes one certificate to render. Immutable once constructed.
type Request struct {
	UserName      string
	EventName     string
	ClubName      string
	EventDate     string // display string, not parsed
	CertificateID string
}

// Validate checks the Request has the fields the template needs.
// POST: Returns error if a required display field is empty
func (r Request) Validate() error {
	if strings.TrimSpace(r.UserName) == "" {
		return errors.New("recipient name cannot be empty")
	}
	if strings.TrimSpace(r.EventName) == "" {
		return errors.New("event name cannot be empty")
	}
	if strings.TrimSpace(r.ClubName) == "" {
		return errors.New("club name cannot be empty")
	}
	return nil
}

// Artifact is the transient output of rendering: bytes plus content type,
// and the remote URL once uploaded.
type Artifact struct {
	ContentType string
	Data        []byte
	RemoteURL   string
}

// Record is the persisted issuance record for one certificate.
type Record struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	MemberName string    `json:"member_name"`
	EventName  string    `json:"event_name"`
	IssuedAt   time.Time `json:"issued_at"`
	AssetURL   string    `json:"asset_url,omitempty"`
	Status     string    `json:"status"`
}

// Validate checks the Record has valid data.
// POST: Returns error if validation fails, nil otherwise
func (r *Record) Validate() error {
	if r.ID == "" {
		return errors.New("record id cannot be empty")
	}
	if r.ClubID == "" {
		return errors.New("record club id cannot be empty")
	}
	if strings.TrimSpace(r.MemberName) == "" {
		return errors.New("record member name cannot be empty")
	}
	if r.Status != StatusPending && r.Status != StatusUploaded && r.Status != StatusFailed {
		return errors.New("status must be 'pending', 'uploaded', or 'failed'")
	}
	return nil
}

// ValidateFormat checks the requested output format and quality before any
// rendering side effect occurs.
// POST: nil for png/jpeg/pdf with quality in (0, 1]
func ValidateFormat(format string, quality float64) error {
	switch format {
	case FormatPNG, FormatJPEG, FormatPDF:
	default:
		return ErrUnsupportedFormat
	}
	if quality <= 0 || quality > 1 {
		return ErrInvalidQuality
	}
	return nil
}

// ContentTypeFor maps a validated format to its MIME type.
func ContentTypeFor(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return ""
}

// FileNameFor builds a download file name for a request and format.
func FileNameFor(req Request, format string) string {
	name := strings.ReplaceAll(strings.TrimSpace(req.UserName), " ", "-")
	if name == "" {
		name = "certificate"
	}
	ext := format
	if format == FormatJPEG {
		ext = "jpg"
	}
	return name + "-certificate." + ext
}
