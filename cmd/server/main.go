package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"clubsync/internal/adapters/assethost"
	emailPkg "clubsync/internal/adapters/email"
	web "clubsync/internal/adapters/http"
	"clubsync/internal/adapters/render"
	"clubsync/internal/adapters/storage"
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

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CLUBSYNC_DB", "clubsync.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Wrap DB with slow-query logging
	timedDB := storage.NewTimedDB(db)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     acctStore,
		ClubStore:        clubStore.NewSQLiteStore(timedDB),
		ProfileStore:     profileStore.NewSQLiteStore(timedDB),
		RosterStore:      rosterStore.NewSQLiteStore(timedDB),
		EventStore:       eventStore.NewSQLiteStore(timedDB),
		ElectionStore:    electionStore.NewSQLiteStore(timedDB),
		MinutesStore:     minutesStore.NewSQLiteStore(timedDB),
		FeedbackStore:    feedbackStore.NewSQLiteStore(timedDB),
		CertificateStore: certificateStore.NewSQLiteStore(timedDB),
		OutboxStore:      outboxStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("CLUBSYNC_ADMIN_EMAIL", "admin@clubsync.local")
	adminPassword := envOrDefault("CLUBSYNC_ADMIN_PASSWORD", "change me before launch")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("CLUBSYNC_RESEND_KEY")
	emailFrom := envOrDefault("CLUBSYNC_RESEND_FROM", "ClubSync <noreply@clubsync.app>")
	emailReply := envOrDefault("CLUBSYNC_REPLY_TO", "hello@clubsync.app")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("CLUBSYNC_ENV") == "production" {
			log.Println("WARNING: CLUBSYNC_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CLUBSYNC_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, emailFrom, emailReply)

	// Certificate pipeline: headless Chromium for rendering, a Cloudinary-style
	// host for storage. Both degrade to local stand-ins when unavailable.
	var renderer render.Renderer
	chromium, err := render.NewChromiumRenderer()
	if err != nil {
		log.Printf("WARNING: headless browser unavailable (%v) — certificates will use stub output", err)
		renderer = render.NewStubRenderer()
	} else {
		renderer = chromium
		defer chromium.Close()
		log.Println("Certificate renderer configured (Chromium)")
	}
	var uploader assethost.Uploader
	if os.Getenv("CLUBSYNC_ASSET_CLOUD") != "" {
		uploader = assethost.NewCloudinaryUploader()
		log.Println("Asset host configured (Cloudinary)")
	} else {
		uploader = assethost.NewNoopUploader()
		log.Println("Asset host configured (noop — set CLUBSYNC_ASSET_CLOUD for real uploads)")
	}
	web.SetCertificatePipeline(renderer, uploader)

	// Outbox worker retries failed uploads and deliveries in the background
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeRecordAssetURL: &orchestrators.RecordAssetURLExecutor{
			CertificateStore: stores.CertificateStore,
		},
		outbox.ActionTypeCertificateEmail: &orchestrators.CertificateEmailExecutor{
			CertificateStore: stores.CertificateStore,
			ClubStore:        stores.ClubStore,
			Sender:           sender,
		},
	})
	web.SetOutboxProcessor(processor)
	outboxStopCh := make(chan struct{})
	orchestrators.StartBackgroundWorker(processor, 1*time.Minute, outboxStopCh)
	defer close(outboxStopCh)

	mux := web.NewMux("static", stores)

	addr := envOrDefault("CLUBSYNC_ADDR", ":8080")
	log.Printf("ClubSync %s starting on %s (env=%s)", version, addr, envOrDefault("CLUBSYNC_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
