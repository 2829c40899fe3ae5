package usecase

import "resumatic/internal/domain"

// Resolve returns the step a session must actually be shown when it asks
// for want. The gate is one-shot: once unlocked, preview and payment lead
// to download.
func Resolve(s *domain.Session, want domain.Step) domain.Step {
	unlocked := s != nil && s.Unlocked
	switch want {
	case domain.StepPreview, domain.StepPayment:
		if !s.HasResume() {
			return domain.StepCreate
		}
		if unlocked {
			return domain.StepDownload
		}
	case domain.StepDownload:
		if !unlocked {
			return domain.StepPayment
		}
		if !s.HasResume() {
			return domain.StepCreate
		}
	}
	return want
}

// guardDownload maps a refused download step to its error.
func guardDownload(s *domain.Session) error {
	switch Resolve(s, domain.StepDownload) {
	case domain.StepDownload:
		return nil
	case domain.StepPayment:
		return domain.ErrLocked
	default:
		return domain.ErrNoResume
	}
}
