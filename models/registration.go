package models

import "time"

// RegistrationStep identifies where a wizard session currently is.
type RegistrationStep string

const (
	StepDoctorVerification RegistrationStep = "doctor_verification"
	StepEmailVerification  RegistrationStep = "email_verification"
	StepEmailConfirm       RegistrationStep = "email_confirm"
	StepAutoConfirm        RegistrationStep = "auto_confirm"
	StepRegistrationForm   RegistrationStep = "registration_form"
	StepSuccess            RegistrationStep = "success"
)

// DoctorCredentials is collected in the first wizard step and sent to the
// upstream verification endpoint. Never persisted beyond the wizard session.
type DoctorCredentials struct {
	FamilyName    string `json:"family_name"`
	GivenName     string `json:"given_name"`
	BirthDate     string `json:"birth_date"` // YYYY-MM-DD
	LicenseNumber string `json:"license_number"`
}

// BillingType selects which billing fields are required on the final form.
type BillingType string

const (
	BillingPrivate  BillingType = "private"
	BillingBusiness BillingType = "business"
)

// RegistrationForm is the final-step profile/billing payload.
type RegistrationForm struct {
	GivenName       string      `json:"given_name"`
	FamilyName      string      `json:"family_name"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	PasswordConfirm string      `json:"password_confirm"`
	FiscalCode      string      `json:"fiscal_code"`
	Phone           string      `json:"phone,omitempty"`
	BillingType     BillingType `json:"billing_type"`

	// Business-only billing fields. Nulled out on submission for private
	// billing so the upstream payload omits them.
	CompanyName string `json:"company_name,omitempty"`
	VATNumber   string `json:"vat_number,omitempty"`
	PECEmail    string `json:"pec_email,omitempty"`
	SDICode     string `json:"sdi_code,omitempty"` // 7-character unique code
}

// RegistrationSession is the wizard state held in Redis for the duration of
// a sign-up flow. Created when the flow starts, deleted on completion or
// abandonment (TTL).
type RegistrationSession struct {
	ID            string            `json:"id"`
	CurrentStep   RegistrationStep  `json:"currentStep"`
	Doctor        DoctorCredentials `json:"doctor"`
	DoctorOK      bool              `json:"doctorOk"`
	VerifiedEmail string            `json:"verifiedEmail"`
	// DeepLinkToken is present only for wizard sessions resumed from an
	// auto-confirming email link.
	DeepLinkToken string `json:"deepLinkToken,omitempty"`
	// ConfirmedToken carries the verified email token into the final step.
	ConfirmedToken string          `json:"confirmedToken,omitempty"`
	Consents       map[string]bool `json:"consents"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// EntryParams is the descriptor distilled from deep-link URL parameters on
// page load. Zero values mean "not supplied".
type EntryParams struct {
	StepHint      string `json:"step,omitempty"`
	Email         string `json:"email,omitempty"`
	Token         string `json:"token,omitempty"`
	GivenName     string `json:"nome,omitempty"`
	FamilyName    string `json:"cognome,omitempty"`
	BirthDate     string `json:"birth_date,omitempty"`
	LicenseNumber string `json:"odm,omitempty"`
}
