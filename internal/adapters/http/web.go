package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"clubsync/internal/adapters/assethost"
	"clubsync/internal/adapters/email"
	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/adapters/render"
	accountStore "clubsync/internal/adapters/storage/account"
	certificateStore "clubsync/internal/adapters/storage/certificate"
	clubStore "clubsync/internal/adapters/storage/club"
	electionStore "clubsync/internal/adapters/storage/election"
	eventStore "clubsync/internal/adapters/storage/event"
	feedbackStore "clubsync/internal/adapters/storage/feedback"
	minutesStore "clubsync/internal/adapters/storage/minutes"
	outboxStore "clubsync/internal/adapters/storage/outbox"
	profileStore "clubsync/internal/adapters/storage/profile"
	rosterStore "clubsync/internal/adapters/storage/roster"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/outbox"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	ClubStore        clubStore.Store
	ProfileStore     profileStore.Store
	RosterStore      rosterStore.Store
	EventStore       eventStore.Store
	ElectionStore    electionStore.Store
	MinutesStore     minutesStore.Store
	FeedbackStore    feedbackStore.Store
	CertificateStore certificateStore.Store
	OutboxStore      outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from CLUBSYNC_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUBSYNC_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUBSYNC_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLUBSYNC_ENV") == "production" {
		log.Fatal("CLUBSYNC_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CLUBSYNC_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global wizard session store instance
var wizards *WizardSessions

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global certificate pipeline backends (set by SetCertificatePipeline)
var (
	certRenderer render.Renderer
	certUploader assethost.Uploader
)

// SetCertificatePipeline sets the renderer and uploader used by the
// certificate endpoints. Call before NewMux.
func SetCertificatePipeline(r render.Renderer, u assethost.Uploader) {
	certRenderer = r
	certUploader = u
}

// Global outbox processor (set by SetOutboxProcessor)
var outboxProcessor *orchestrators.OutboxProcessor

// SetOutboxProcessor sets the processor used by the admin retry and abandon
// endpoints. Call before NewMux.
func SetOutboxProcessor(p *orchestrators.OutboxProcessor) {
	outboxProcessor = p
}

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	wizards = NewWizardSessions()
	middleware.SecureCookies = os.Getenv("CLUBSYNC_ENV") == "production"

	if certRenderer == nil {
		certRenderer = render.NewStubRenderer()
	}
	if certUploader == nil {
		certUploader = assethost.NewNoopUploader()
	}
	if emailSender == nil {
		emailSender = email.NewNoopSender()
	}
	if outboxProcessor == nil {
		outboxProcessor = orchestrators.NewOutboxProcessor(s.OutboxStore, map[string]orchestrators.ActionExecutor{
			outbox.ActionTypeRecordAssetURL: &orchestrators.RecordAssetURLExecutor{CertificateStore: s.CertificateStore},
			outbox.ActionTypeCertificateEmail: &orchestrators.CertificateEmailExecutor{
				CertificateStore: s.CertificateStore,
				ClubStore:        s.ClubStore,
				Sender:           emailSender,
			},
		})
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RequestLog -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.RequestLog(),
	)
}
