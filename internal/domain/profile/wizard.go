package profile

import "errors"

// Step identifies one page of the profile completion wizard.
type Step int

// Wizard steps, in order. There is no skipping between them.
const (
	StepImages Step = iota + 1
	StepSocialMedia
	StepContact
	StepDetails
	StepPreview
)

// Domain errors for wizard navigation and session lifecycle.
var (
	ErrAtFirstStep = errors.New("already at the first step")
	ErrAtLastStep  = errors.New("already at the last step")
	ErrLoad        = errors.New("could not load club details")
	ErrSubmit      = errors.New("could not save club details")
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepImages:
		return "Images"
	case StepSocialMedia:
		return "Social Media"
	case StepContact:
		return "Contact"
	case StepDetails:
		return "Details"
	case StepPreview:
		return "Preview"
	}
	return "Unknown"
}

// Wizard is the five-step profile completion state machine. It owns the one
// mutable draft for the editing session.
type Wizard struct {
	Step  Step
	Draft Draft
}

// NewWizard starts a wizard at the first step with a draft seeded from the
// club's stored profile.
func NewWizard(draft Draft) Wizard {
	return Wizard{Step: StepImages, Draft: draft}
}

// Next advances one step.
// PRE: current step is Images..Details
// POST: Step is incremented, or ErrAtLastStep from Preview
func (w *Wizard) Next() error {
	if w.Step >= StepPreview {
		return ErrAtLastStep
	}
	w.Step++
	return nil
}

// Previous moves back one step.
// PRE: current step is SocialMedia..Preview
// POST: Step is decremented, or ErrAtFirstStep from Images
func (w *Wizard) Previous() error {
	if w.Step <= StepImages {
		return ErrAtFirstStep
	}
	w.Step--
	return nil
}

// CanComplete reports whether the terminal submit action is available.
// INVARIANT: submission is only offered from the Preview step
func (w *Wizard) CanComplete() bool {
	return w.Step == StepPreview
}
