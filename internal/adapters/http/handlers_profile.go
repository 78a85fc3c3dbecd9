package web

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/profile"
)

// wizardTTL bounds how long an abandoned wizard session is kept.
const wizardTTL = 2 * time.Hour

type wizardSession struct {
	mu        sync.Mutex
	wizard    profile.Wizard
	createdAt time.Time
}

// WizardSessions is an in-memory store of active profile wizard sessions,
// keyed by an opaque token.
type WizardSessions struct {
	mu       sync.RWMutex
	sessions map[string]*wizardSession
}

// NewWizardSessions creates a new wizard session store.
func NewWizardSessions() *WizardSessions {
	return &WizardSessions{sessions: make(map[string]*wizardSession)}
}

// Create stores a new wizard session and returns its token.
func (ws *WizardSessions) Create(w profile.Wizard) string {
	token := generateID()
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.sessions[token] = &wizardSession{wizard: w, createdAt: timeNow()}
	return token
}

// get returns the live session for a token, expiring stale ones.
func (ws *WizardSessions) get(token string) (*wizardSession, bool) {
	ws.mu.RLock()
	s, ok := ws.sessions[token]
	ws.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(s.createdAt) > wizardTTL {
		ws.mu.Lock()
		delete(ws.sessions, token)
		ws.mu.Unlock()
		return nil, false
	}
	return s, true
}

// Delete removes a wizard session.
func (ws *WizardSessions) Delete(token string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	delete(ws.sessions, token)
}

// wizardView is the JSON shape of a wizard session.
type wizardView struct {
	Token      string        `json:"token"`
	Step       int           `json:"step"`
	StepName   string        `json:"step_name"`
	Draft      profile.Draft `json:"draft"`
	Completion int           `json:"completion_percent"`
}

func viewOf(token string, w profile.Wizard) wizardView {
	return wizardView{
		Token:      token,
		Step:       int(w.Step),
		StepName:   w.Step.String(),
		Draft:      w.Draft,
		Completion: w.Draft.CompletionPercent(),
	}
}

// handleGetClubDetails handles GET /api/clubs/{id}/details
func handleGetClubDetails(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	if _, err := stores.ClubStore.GetByID(r.Context(), clubID); err != nil {
		notFound(w, "club not found")
		return
	}
	draft, err := stores.ProfileStore.GetByClubID(r.Context(), clubID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// handlePutClubDetails handles PUT /api/clubs/{id}/details
// The whole draft is replaced in one write. A failed write leaves the stored
// draft untouched so the client can retry.
func handlePutClubDetails(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	if _, err := stores.ClubStore.GetByID(r.Context(), clubID); err != nil {
		notFound(w, "club not found")
		return
	}

	var draft profile.Draft
	if err := strictDecode(r, &draft); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	draft.ClubID = clubID

	if err := stores.ProfileStore.Save(r.Context(), draft); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// handleStartWizard handles POST /api/clubs/{id}/wizard
// Seeds a wizard session from the stored draft.
func handleStartWizard(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	if _, err := stores.ClubStore.GetByID(r.Context(), clubID); err != nil {
		notFound(w, "club not found")
		return
	}

	wiz, err := orchestrators.ExecuteLoadDraft(r.Context(), clubID, orchestrators.CompleteProfileDeps{
		ProfileStore: stores.ProfileStore,
	})
	if err != nil {
		// Load failures are fatal to the session; there is no retry state
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	token := wizards.Create(wiz)
	writeJSON(w, http.StatusCreated, viewOf(token, wiz))
}

// withWizard runs fn while holding the session lock, then responds with the
// updated wizard state.
func withWizard(w http.ResponseWriter, r *http.Request, fn func(*profile.Wizard) error) {
	token := r.PathValue("token")
	s, ok := wizards.get(token)
	if !ok {
		notFound(w, "wizard session not found or expired")
		return
	}

	s.mu.Lock()
	err := fn(&s.wizard)
	view := viewOf(token, s.wizard)
	s.mu.Unlock()

	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleGetWizard handles GET /api/wizard/{token}
func handleGetWizard(w http.ResponseWriter, r *http.Request) {
	withWizard(w, r, func(*profile.Wizard) error { return nil })
}

// handleWizardNext handles POST /api/wizard/{token}/next
func handleWizardNext(w http.ResponseWriter, r *http.Request) {
	withWizard(w, r, func(wiz *profile.Wizard) error { return wiz.Next() })
}

// handleWizardPrevious handles POST /api/wizard/{token}/previous
func handleWizardPrevious(w http.ResponseWriter, r *http.Request) {
	withWizard(w, r, func(wiz *profile.Wizard) error { return wiz.Previous() })
}

// handleWizardField handles PUT /api/wizard/{token}/field
// Pure in-memory mutation of one draft field.
func handleWizardField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Section string `json:"section"`
		Field   string `json:"field"`
		Value   string `json:"value"`
	}
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	withWizard(w, r, func(wiz *profile.Wizard) error {
		return setDraftField(&wiz.Draft, body.Section, body.Field, body.Value)
	})
}

var errUnknownField = errors.New("unknown section or field")

func setDraftField(d *profile.Draft, section, field, value string) error {
	switch section {
	case "images":
		switch field {
		case "cover_image":
			d.Images.CoverImage = value
		case "profile_image":
			d.Images.ProfileImage = value
		default:
			return errUnknownField
		}
	case "social":
		if !d.SetSocial(field, value) {
			return errUnknownField
		}
	case "contact":
		switch field {
		case "email":
			d.Contact.Email = value
		case "phone":
			d.Contact.Phone = value
		case "google_map_url":
			d.Contact.GoogleMapURL = value
		case "headquarters":
			d.Contact.Headquarters = value
		default:
			return errUnknownField
		}
	case "details":
		switch field {
		case "about":
			d.Details.About = value
		case "mission":
			d.Details.Mission = value
		default:
			return errUnknownField
		}
	default:
		return errUnknownField
	}
	return nil
}

type tagBody struct {
	List string `json:"list"` // "values" or "avenues"
	Tag  string `json:"tag"`
}

// handleWizardAddTag handles POST /api/wizard/{token}/tags
func handleWizardAddTag(w http.ResponseWriter, r *http.Request) {
	var body tagBody
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	withWizard(w, r, func(wiz *profile.Wizard) error {
		switch body.List {
		case "values":
			wiz.Draft.AddValue(body.Tag)
		case "avenues":
			wiz.Draft.AddAvenue(body.Tag)
		default:
			return errUnknownField
		}
		return nil
	})
}

// handleWizardRemoveTag handles DELETE /api/wizard/{token}/tags
func handleWizardRemoveTag(w http.ResponseWriter, r *http.Request) {
	var body tagBody
	if err := strictDecode(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	withWizard(w, r, func(wiz *profile.Wizard) error {
		switch body.List {
		case "values":
			wiz.Draft.RemoveValue(body.Tag)
		case "avenues":
			wiz.Draft.RemoveAvenue(body.Tag)
		default:
			return errUnknownField
		}
		return nil
	})
}

// handleWizardComplete handles POST /api/wizard/{token}/complete
// Submits the draft in one bulk write. On success the session ends; on
// failure the session and draft survive for a retry.
func handleWizardComplete(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	s, ok := wizards.get(token)
	if !ok {
		notFound(w, "wizard session not found or expired")
		return
	}

	s.mu.Lock()
	wiz := s.wizard
	s.mu.Unlock()

	err := orchestrators.ExecuteSubmitDraft(r.Context(), wiz, orchestrators.CompleteProfileDeps{
		ProfileStore: stores.ProfileStore,
	})
	if err != nil {
		if errors.Is(err, profile.ErrSubmit) {
			// Retryable: the session stays alive
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		badRequest(w, err.Error())
		return
	}

	wizards.Delete(token)
	writeJSON(w, http.StatusOK, wiz.Draft)
}
