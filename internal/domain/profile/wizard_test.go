package profile_test

import (
	"errors"
	"testing"

	"clubsync/internal/domain/profile"
)

// TestWizardForwardAndBack walks the full step sequence in both directions.
func TestWizardForwardAndBack(t *testing.T) {
	w := profile.NewWizard(profile.Draft{ClubID: "club-42"})

	if w.Step != profile.StepImages {
		t.Fatalf("initial step = %v, want Images", w.Step)
	}
	if err := w.Previous(); !errors.Is(err, profile.ErrAtFirstStep) {
		t.Errorf("Previous at first step: err = %v, want ErrAtFirstStep", err)
	}

	order := []profile.Step{
		profile.StepSocialMedia,
		profile.StepContact,
		profile.StepDetails,
		profile.StepPreview,
	}
	for _, want := range order {
		if err := w.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
		if w.Step != want {
			t.Fatalf("step = %v, want %v", w.Step, want)
		}
	}

	if err := w.Next(); !errors.Is(err, profile.ErrAtLastStep) {
		t.Errorf("Next at preview: err = %v, want ErrAtLastStep", err)
	}
	if !w.CanComplete() {
		t.Error("CanComplete at preview = false, want true")
	}

	if err := w.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if w.Step != profile.StepDetails {
		t.Errorf("step after Previous = %v, want Details", w.Step)
	}
	if w.CanComplete() {
		t.Error("CanComplete off preview = true, want false")
	}
}

// TestWizardDraftSurvivesNavigation verifies navigation does not touch the draft.
func TestWizardDraftSurvivesNavigation(t *testing.T) {
	draft := profile.Draft{ClubID: "club-42"}
	draft.AddValue("Integrity")
	w := profile.NewWizard(draft)

	_ = w.Next()
	_ = w.Next()
	_ = w.Previous()

	if len(w.Draft.Details.Values) != 1 || w.Draft.Details.Values[0] != "Integrity" {
		t.Errorf("draft values = %v, want [Integrity]", w.Draft.Details.Values)
	}
}

// TestStepString covers display names used by the wizard UI.
func TestStepString(t *testing.T) {
	if got := profile.StepSocialMedia.String(); got != "Social Media" {
		t.Errorf("StepSocialMedia = %q", got)
	}
	if got := profile.Step(99).String(); got != "Unknown" {
		t.Errorf("out-of-range step = %q", got)
	}
}
