package registration

import "clarimed/models"

// Step hints recognized in email deep links. Anything else falls through to
// the default first step.
const (
	HintAutoConfirm      = "auto_confirm"
	HintEmailConfirm     = "email_confirm"
	HintRegistrationForm = "registration_form"
)

// ResolveEntryStep maps an entry descriptor to the wizard's initial step.
// Total over all inputs: unrecognized or absent hints start from doctor
// verification.
func ResolveEntryStep(entry models.EntryParams) models.RegistrationStep {
	switch entry.StepHint {
	case HintAutoConfirm:
		// Auto-confirmation needs both the email and the deep-link token;
		// without a token the best we can do is manual code entry.
		if entry.Email != "" && entry.Token != "" {
			return models.StepAutoConfirm
		}
		return models.StepEmailConfirm
	case HintEmailConfirm:
		return models.StepEmailConfirm
	case HintRegistrationForm:
		return models.StepRegistrationForm
	default:
		return models.StepDoctorVerification
	}
}
