package registration

import (
	"context"
	"time"

	"clarimed/models"
	"clarimed/upstream"
)

// API is the slice of the upstream client the wizard needs. *upstream.Client
// satisfies it; tests substitute a stub.
type API interface {
	VerifyDoctor(ctx context.Context, email string, creds models.DoctorCredentials) (*upstream.VerifyDoctorResponse, error)
	RequestEmailVerification(ctx context.Context, email string, termsAccepted bool, doctor *models.DoctorCredentials) (*upstream.EmailVerificationResponse, error)
	ConfirmEmail(ctx context.Context, email, token string) (*upstream.ConfirmEmailResponse, error)
	CompleteRegistration(ctx context.Context, payload upstream.RegistrationPayload) error
}

// ConsentGate supplies the server-authoritative list of required consents.
type ConsentGate interface {
	RequiredConsents(ctx context.Context) ([]string, error)
}

// Service sequences the multi-step sign-up wizard.
type Service interface {
	Start(ctx context.Context, entry models.EntryParams) (*models.RegistrationSession, error)
	Session(ctx context.Context, sessionID string) (*models.RegistrationSession, error)
	VerifyDoctor(ctx context.Context, sessionID string, creds models.DoctorCredentials) (*StepResult, error)
	RequestEmailCode(ctx context.Context, sessionID, email string, termsAccepted bool) (*StepResult, error)
	SubmitCode(ctx context.Context, sessionID, code string) (*StepResult, error)
	AutoConfirm(ctx context.Context, sessionID string) (*StepResult, error)
	SubmitRegistration(ctx context.Context, sessionID string, form models.RegistrationForm, consents models.ConsentSet) (*StepResult, error)
	ChangeEmail(ctx context.Context, sessionID string) (*StepResult, error)
	Abandon(ctx context.Context, sessionID string) error
}

// StepResult is returned by every wizard operation: the step the session is
// now on, an optional human-readable note, and an optional display delay the
// browser should honor before advancing the UI (UX pacing, not a wait the
// server performs).
type StepResult struct {
	Step                models.RegistrationStep `json:"step"`
	Message             string                  `json:"message,omitempty"`
	DisplayDelay        time.Duration           `json:"-"`
	DisplayDelayMillis  int64                   `json:"display_delay_ms,omitempty"`
	PendingVerification bool                    `json:"pending_verification,omitempty"`
}

// DefaultRegistrationService is the production implementation.
type DefaultRegistrationService struct {
	API      API
	Store    SessionStore
	Consents ConsentGate
}
