// Package session tracks which view a user is on and owns that user's upload orchestrator.
package session

// Step is the page currently shown.
type Step int

const (
	StepLanding Step = iota
	StepUpload
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepUpload:
		return "upload"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// Action is a user or upload event that may move between steps.
type Action int

const (
	// ActionStart leaves the landing page for the upload page.
	ActionStart Action = iota + 1
	// ActionUploaded shows the result after a successful upload.
	ActionUploaded
	// ActionReset is "upload another": back to the landing page.
	ActionReset
)

// Transition returns the step that follows step after action.
// Actions that do not apply to the current step leave it unchanged.
func Transition(step Step, action Action) Step {
	switch {
	case step == StepLanding && action == ActionStart:
		return StepUpload
	case step == StepUpload && action == ActionUploaded:
		return StepResult
	case action == ActionReset:
		return StepLanding
	}
	return step
}
