package upstream

import (
	"context"
	"net/http"

	"clarimed/models"
)

// VerifyDoctorResponse mirrors POST /auth/b2c/verify-doctor.
type VerifyDoctorResponse struct {
	Valid      bool                      `json:"valid"`
	Message    string                    `json:"message,omitempty"`
	DoctorData *models.DoctorCredentials `json:"doctor_data,omitempty"`
}

// VerifyDoctor checks the supplied credentials against the medical registry.
func (c *Client) VerifyDoctor(ctx context.Context, email string, creds models.DoctorCredentials) (*VerifyDoctorResponse, error) {
	body := map[string]interface{}{
		"email":          email,
		"family_name":    creds.FamilyName,
		"given_name":     creds.GivenName,
		"birth_date":     creds.BirthDate,
		"license_number": creds.LicenseNumber,
	}
	var out VerifyDoctorResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/b2c/verify-doctor", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EmailVerificationResponse mirrors the verification-request endpoint.
// PendingVerification signals that the email already had an unconfirmed
// registration and a new code was sent instead of starting fresh.
type EmailVerificationResponse struct {
	PendingVerification bool `json:"pending_verification"`
}

// RequestEmailVerification asks upstream to email a 6-digit code plus a
// deep link. The doctor data rides along so the link can prefill the wizard.
func (c *Client) RequestEmailVerification(ctx context.Context, email string, termsAccepted bool, doctor *models.DoctorCredentials) (*EmailVerificationResponse, error) {
	body := map[string]interface{}{
		"email":          email,
		"terms_accepted": termsAccepted,
	}
	if doctor != nil {
		body["doctor_data"] = doctor
	}
	var out EmailVerificationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/b2c/request-verification", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmEmailResponse carries the confirmed token forward to registration.
type ConfirmEmailResponse struct {
	Token string `json:"token"`
}

// ConfirmEmail validates a 6-digit code or deep-link token for the email.
func (c *Client) ConfirmEmail(ctx context.Context, email, token string) (*ConfirmEmailResponse, error) {
	body := map[string]string{"email": email, "token": token}
	var out ConfirmEmailResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/b2c/confirm-email", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegistrationPayload is the completion request. Business billing fields are
// pointers so they serialize as null when not applicable.
type RegistrationPayload struct {
	Email          string                   `json:"email"`
	ConfirmedToken string                   `json:"confirmed_token"`
	GivenName      string                   `json:"given_name"`
	FamilyName     string                   `json:"family_name"`
	Password       string                   `json:"password"`
	FiscalCode     string                   `json:"fiscal_code"`
	Phone          string                   `json:"phone,omitempty"`
	BillingType    string                   `json:"billing_type"`
	CompanyName    *string                  `json:"company_name"`
	VATNumber      *string                  `json:"vat_number"`
	PECEmail       *string                  `json:"pec_email"`
	SDICode        *string                  `json:"sdi_code"`
	Doctor         models.DoctorCredentials `json:"doctor_data"`
	Consents       map[string]bool          `json:"consents"`
}

// CompleteRegistration submits the full profile/billing/consent payload.
func (c *Client) CompleteRegistration(ctx context.Context, payload RegistrationPayload) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/b2c/register", "", payload, nil)
}
