package domain

// Step is a page of the wizard.
type Step string

const (
	StepCreate   Step = "create-resume"
	StepPreview  Step = "preview-resume"
	StepPayment  Step = "payment"
	StepDownload Step = "download-resume"
)

func ParseStep(s string) (Step, bool) {
	switch Step(s) {
	case StepCreate, StepPreview, StepPayment, StepDownload:
		return Step(s), true
	}
	return "", false
}

// Path is the front-end route for the step.
func (s Step) Path() string { return "/" + string(s) }
