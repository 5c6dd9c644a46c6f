package registration

import (
	"testing"

	"clarimed/models"

	"github.com/stretchr/testify/assert"
)

const validFiscalCode = "RSSMRA80A01H501U"

func validForm() models.RegistrationForm {
	return models.RegistrationForm{
		GivenName:       "Mario",
		FamilyName:      "Rossi",
		Email:           "mario.rossi@example.it",
		Password:        "Lungamente1!",
		PasswordConfirm: "Lungamente1!",
		FiscalCode:      validFiscalCode,
		BillingType:     models.BillingPrivate,
	}
}

func TestVerifyPasswordComplexity(t *testing.T) {
	assert.NoError(t, VerifyPasswordComplexity("Lungamente1!"))

	cases := map[string]string{
		"too short":  "Ab1!xyz",
		"no upper":   "lungamente1!",
		"no digit":   "Lungamente!!",
		"no special": "Lungamente11",
	}
	for name, pw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, VerifyPasswordComplexity(pw))
		})
	}
}

func TestValidateRegistrationFormPasswordMismatch(t *testing.T) {
	form := validForm()
	// Both satisfy the policy on their own; the mismatch alone must reject.
	form.PasswordConfirm = "Diversamente2?"
	err := ValidateRegistrationForm(form)
	assert.ErrorContains(t, err, "do not match")
}

func TestValidateRegistrationFormRequiredFields(t *testing.T) {
	form := validForm()
	form.Email = ""
	assert.Error(t, ValidateRegistrationForm(form))
}

func TestValidateRegistrationFormBusinessRules(t *testing.T) {
	form := validForm()
	form.BillingType = models.BillingBusiness
	assert.ErrorContains(t, ValidateRegistrationForm(form), "company name")

	form.CompanyName = "Referti Srl"
	assert.ErrorContains(t, ValidateRegistrationForm(form), "VAT")

	form.VATNumber = "12345678901"
	assert.ErrorContains(t, ValidateRegistrationForm(form), "PEC")

	// Either PEC or a 7-character SDI code satisfies the rule.
	form.SDICode = "ABC1234"
	assert.NoError(t, ValidateRegistrationForm(form))

	form.SDICode = ""
	form.PECEmail = "referti@pec.it"
	assert.NoError(t, ValidateRegistrationForm(form))
}

func TestValidateRegistrationFormFiscalCode(t *testing.T) {
	form := validForm()
	form.FiscalCode = "RSSMRA80A01H501A"
	assert.ErrorContains(t, ValidateRegistrationForm(form), "check character")
}

func TestValidateDoctorCredentials(t *testing.T) {
	creds := models.DoctorCredentials{
		FamilyName:    "Rossi",
		GivenName:     "Mario",
		BirthDate:     "1980-01-01",
		LicenseNumber: "MI-12345",
	}
	assert.NoError(t, ValidateDoctorCredentials(creds))

	short := creds
	short.GivenName = "M"
	assert.Error(t, ValidateDoctorCredentials(short))

	missing := creds
	missing.LicenseNumber = " "
	assert.Error(t, ValidateDoctorCredentials(missing))
}
