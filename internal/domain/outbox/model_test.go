package outbox

import (
	"errors"
	"testing"
	"time"
)

func pendingEntry() Entry {
	return Entry{
		ID:          "ob1",
		ActionType:  ActionTypeRecordAssetURL,
		Payload:     `{"record_id":"r1","asset_url":"https://assets.invalid/r1.png"}`,
		Status:      StatusPending,
		MaxAttempts: 3,
		CreatedAt:   time.Now(),
	}
}

func TestEntry_Validate(t *testing.T) {
	e := pendingEntry()
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	e = pendingEntry()
	e.ActionType = ""
	if err := e.Validate(); !errors.Is(err, ErrEmptyActionType) {
		t.Errorf("error = %v, want ErrEmptyActionType", err)
	}

	e = pendingEntry()
	e.Payload = ""
	if err := e.Validate(); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("error = %v, want ErrEmptyPayload", err)
	}

	// A missing max attempts gets the default rather than an error.
	e = pendingEntry()
	e.MaxAttempts = 0
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if e.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", e.MaxAttempts)
	}
}

func TestEntry_RetryUntilExhausted(t *testing.T) {
	e := pendingEntry()
	boom := errors.New("asset host timeout")

	for i := 0; i < e.MaxAttempts; i++ {
		if !e.CanRetry() {
			t.Fatalf("CanRetry() = false after %d attempts, max %d", e.Attempts, e.MaxAttempts)
		}
		e.MarkAttempt()
		e.MarkFailed(boom)
	}

	if e.CanRetry() {
		t.Error("CanRetry() = true after exhausting attempts")
	}
	if !e.IsTerminal() {
		t.Error("IsTerminal() = false after exhausting attempts")
	}
	if e.Status != StatusFailed {
		t.Errorf("status = %q, want failed", e.Status)
	}
	if e.ErrorMessage != "asset host timeout" {
		t.Errorf("error message = %q", e.ErrorMessage)
	}
}

func TestEntry_MarkSuccessClearsError(t *testing.T) {
	e := pendingEntry()
	e.MarkAttempt()
	e.MarkFailed(errors.New("transient"))
	if e.IsTerminal() {
		t.Fatal("entry terminal after a single failure")
	}

	e.MarkAttempt()
	e.MarkSuccess("https://assets.invalid/r1.png")
	if e.Status != StatusDone {
		t.Errorf("status = %q, want done", e.Status)
	}
	if e.ErrorMessage != "" {
		t.Errorf("error message = %q, want empty", e.ErrorMessage)
	}
	if e.ExternalID == "" {
		t.Error("external id not recorded")
	}
}

func TestEntry_MarkAbandonedIsTerminal(t *testing.T) {
	e := pendingEntry()
	e.MarkAbandoned()
	if !e.IsTerminal() {
		t.Error("abandoned entry should be terminal")
	}
	if e.CanRetry() {
		t.Error("abandoned entry should not be retryable")
	}
}

func TestEntry_NextRetryDelayBackoff(t *testing.T) {
	base := 30 * time.Second
	max := time.Hour

	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{1, time.Minute},
		{2, 2 * time.Minute},
		{3, 4 * time.Minute},
		{10, time.Hour}, // capped
	}
	for _, tt := range tests {
		e := Entry{Attempts: tt.attempts}
		if got := e.NextRetryDelay(base, max); got != tt.want {
			t.Errorf("attempts=%d: delay = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}
