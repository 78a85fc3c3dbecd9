package middleware

import (
	"sync"
	"testing"
	"time"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	ss := NewSessionStore()

	token, err := ss.Create("a1", "admin@clubsync.test", "admin")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if token == "" {
		t.Fatal("Create() returned an empty token")
	}

	sess, ok := ss.Get(token)
	if !ok {
		t.Fatal("Get() did not find a fresh session")
	}
	if sess.Email != "admin@clubsync.test" || sess.Role != "admin" {
		t.Errorf("session = %+v", sess)
	}

	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("Get() found a deleted session")
	}
}

// TestSessionStoreExpiredGetConcurrent hammers Get for an expired token from
// many goroutines at once. Expiry deletes the session, so the lookups must
// not race with the removal; run with -race.
func TestSessionStoreExpiredGetConcurrent(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create("a1", "admin@clubsync.test", "admin")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Backdate the session past the 24h window.
	ss.mu.Lock()
	s := ss.sessions[token]
	s.CreatedAt = time.Now().Add(-25 * time.Hour)
	ss.sessions[token] = s
	ss.mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := ss.Get(token); ok {
				t.Error("Get() returned an expired session")
			}
		}()
	}
	wg.Wait()

	if _, ok := ss.sessions[token]; ok {
		t.Error("expired session was not removed")
	}
}
