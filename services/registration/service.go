package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clarimed/models"
	"clarimed/upstream"
	"clarimed/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Start creates a wizard session for one of the three entry paths: a fresh
// visitor, an email-confirm deep link (manual code entry with the email
// pre-filled), or an auto-confirming link carrying both email and token.
func (s *DefaultRegistrationService) Start(ctx context.Context, entry models.EntryParams) (*models.RegistrationSession, error) {
	now := time.Now()
	session := models.RegistrationSession{
		ID:          uuid.NewString(),
		CurrentStep: ResolveEntryStep(entry),
		Doctor: models.DoctorCredentials{
			FamilyName:    entry.FamilyName,
			GivenName:     entry.GivenName,
			BirthDate:     entry.BirthDate,
			LicenseNumber: entry.LicenseNumber,
		},
		VerifiedEmail: entry.Email,
		DeepLinkToken: entry.Token,
		Consents:      map[string]bool{},
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start registration")
	}
	return &session, nil
}

// Session returns the current wizard state.
func (s *DefaultRegistrationService) Session(ctx context.Context, sessionID string) (*models.RegistrationSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// VerifyDoctor runs step one. A rejection keeps the session where it is and
// surfaces the upstream reason verbatim; success advances to email
// verification and tells the browser to hold the success message for the
// configured display delay.
func (s *DefaultRegistrationService) VerifyDoctor(ctx context.Context, sessionID string, creds models.DoctorCredentials) (*StepResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepDoctorVerification {
		return nil, fmt.Errorf("doctor verification is not the current step")
	}
	if err := ValidateDoctorCredentials(creds); err != nil {
		return nil, err
	}

	resp, err := s.API.VerifyDoctor(ctx, session.VerifiedEmail, creds)
	if err != nil {
		return nil, err
	}
	if !resp.Valid {
		message := resp.Message
		if message == "" {
			message = "We could not verify your medical license"
		}
		return nil, fmt.Errorf("%s", message)
	}

	session.Doctor = creds
	if resp.DoctorData != nil {
		session.Doctor = *resp.DoctorData
	}
	session.DoctorOK = true
	session.CurrentStep = models.StepEmailVerification
	if err := s.Store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update registration")
	}

	return &StepResult{
		Step:               session.CurrentStep,
		Message:            "Medical license verified",
		DisplayDelay:       utils.DoctorVerifiedDisplayDelay,
		DisplayDelayMillis: utils.DoctorVerifiedDisplayDelay.Milliseconds(),
	}, nil
}

// RequestEmailCode asks upstream to send the 6-digit code. The terms box
// and a minimal "@" check gate the call; authoritative email validation is
// upstream's job. A pending unconfirmed registration gets a distinct
// message but transitions identically.
func (s *DefaultRegistrationService) RequestEmailCode(ctx context.Context, sessionID, email string, termsAccepted bool) (*StepResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepEmailVerification {
		return nil, fmt.Errorf("email verification is not the current step")
	}
	if !termsAccepted {
		return nil, fmt.Errorf("you must accept the terms and conditions")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("please enter a valid email address")
	}

	var doctor *models.DoctorCredentials
	if session.DoctorOK {
		doctor = &session.Doctor
	}
	resp, err := s.API.RequestEmailVerification(ctx, email, termsAccepted, doctor)
	if err != nil {
		return nil, err
	}

	session.VerifiedEmail = email
	session.CurrentStep = models.StepEmailConfirm
	if err := s.Store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update registration")
	}

	message := "We sent a verification code to " + email
	if resp.PendingVerification {
		message = "This email already had a pending registration; we sent a new code"
	}
	return &StepResult{
		Step:                session.CurrentStep,
		Message:             message,
		PendingVerification: resp.PendingVerification,
	}, nil
}

// SubmitCode confirms the manually entered 6-digit code. Rejection leaves
// the session on the confirm step; the entered cells are never cleared
// server-side.
func (s *DefaultRegistrationService) SubmitCode(ctx context.Context, sessionID, code string) (*StepResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepEmailConfirm {
		return nil, fmt.Errorf("code entry is not the current step")
	}
	if len(code) != CodeCellCount || strings.ContainsFunc(code, func(r rune) bool { return r < '0' || r > '9' }) {
		return nil, fmt.Errorf("the verification code must be 6 digits")
	}

	resp, err := s.API.ConfirmEmail(ctx, session.VerifiedEmail, code)
	if err != nil {
		return nil, err
	}

	session.ConfirmedToken = resp.Token
	session.CurrentStep = models.StepRegistrationForm
	if err := s.Store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update registration")
	}
	return &StepResult{Step: session.CurrentStep}, nil
}

// AutoConfirm silently confirms using the deep-link token. Failure falls
// back to manual code entry with the upstream error surfaced.
func (s *DefaultRegistrationService) AutoConfirm(ctx context.Context, sessionID string) (*StepResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepAutoConfirm {
		return nil, fmt.Errorf("auto-confirmation is not the current step")
	}

	resp, err := s.API.ConfirmEmail(ctx, session.VerifiedEmail, session.DeepLinkToken)
	if err != nil {
		session.CurrentStep = models.StepEmailConfirm
		if saveErr := s.Store.Save(ctx, *session); saveErr != nil {
			utils.GetLogger().Error("AutoConfirm: failed to save fallback step", zap.Error(saveErr))
		}
		return nil, err
	}

	session.ConfirmedToken = resp.Token
	session.CurrentStep = models.StepRegistrationForm
	if err := s.Store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update registration")
	}
	return &StepResult{Step: session.CurrentStep}, nil
}

// SubmitRegistration validates the final form locally (nothing is sent
// upstream on a local failure), checks the required-consent gate, and
// completes the registration. Success reports the redirect display delay
// and destroys the wizard session.
func (s *DefaultRegistrationService) SubmitRegistration(ctx context.Context, sessionID string, form models.RegistrationForm, consents models.ConsentSet) (*StepResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepRegistrationForm {
		return nil, fmt.Errorf("the registration form is not the current step")
	}

	if err := ValidateRegistrationForm(form); err != nil {
		return nil, err
	}

	required, err := s.Consents.RequiredConsents(ctx)
	if err != nil {
		return nil, err
	}
	if missing := consents.MissingRequired(required); len(missing) > 0 {
		return nil, fmt.Errorf("required consent not granted: %s", strings.Join(missing, ", "))
	}

	payload := upstream.RegistrationPayload{
		Email:          session.VerifiedEmail,
		ConfirmedToken: session.ConfirmedToken,
		GivenName:      form.GivenName,
		FamilyName:     form.FamilyName,
		Password:       form.Password,
		FiscalCode:     strings.ToUpper(form.FiscalCode),
		Phone:          form.Phone,
		BillingType:    string(form.BillingType),
		Doctor:         session.Doctor,
		Consents:       consents,
	}
	if form.BillingType == models.BillingBusiness {
		payload.CompanyName = &form.CompanyName
		payload.VATNumber = &form.VATNumber
		if form.PECEmail != "" {
			payload.PECEmail = &form.PECEmail
		}
		if form.SDICode != "" {
			payload.SDICode = &form.SDICode
		}
	}

	if err := s.API.CompleteRegistration(ctx, payload); err != nil {
		return nil, err
	}

	// The wizard is done; the TTL would reap the session anyway but there is
	// no reason to keep credentials around.
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("SubmitRegistration: failed to delete completed session", zap.Error(err))
	}

	return &StepResult{
		Step:               models.StepSuccess,
		Message:            "Registration complete",
		DisplayDelay:       utils.SuccessRedirectDelay,
		DisplayDelayMillis: utils.SuccessRedirectDelay.Milliseconds(),
	}, nil
}

// ChangeEmail is the explicit go-back action from code entry to the email
// form. The only sanctioned backward transition besides abandoning.
func (s *DefaultRegistrationService) ChangeEmail(ctx context.Context, sessionID string) (*StepResult, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CurrentStep != models.StepEmailConfirm {
		return nil, fmt.Errorf("there is no email step to go back to")
	}
	session.CurrentStep = models.StepEmailVerification
	if err := s.Store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to update registration")
	}
	return &StepResult{Step: session.CurrentStep}, nil
}

// Abandon destroys the wizard session (the modal was closed).
func (s *DefaultRegistrationService) Abandon(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}
