package registration

import (
	"fmt"
	"strings"

	"clarimed/models"
)

// PasswordSpecialChars is the fixed special-character set accepted by the
// password policy.
const PasswordSpecialChars = `!@#$%^&*()_-+=.,;:?`

// VerifyPasswordComplexity checks the 4-rule password policy.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < 10 {
		return fmt.Errorf("password must be at least 10 characters long")
	}
	if !strings.ContainsFunc(pw, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !strings.ContainsFunc(pw, func(r rune) bool { return r >= '0' && r <= '9' }) {
		return fmt.Errorf("password must include at least one number")
	}
	if !strings.ContainsAny(pw, PasswordSpecialChars) {
		return fmt.Errorf("password must include at least one special character (%s)", PasswordSpecialChars)
	}
	return nil
}

// ValidateDoctorCredentials applies the step-one local constraints.
func ValidateDoctorCredentials(creds models.DoctorCredentials) error {
	if len(strings.TrimSpace(creds.FamilyName)) < 2 {
		return fmt.Errorf("family name must be at least 2 characters")
	}
	if len(strings.TrimSpace(creds.GivenName)) < 2 {
		return fmt.Errorf("given name must be at least 2 characters")
	}
	if strings.TrimSpace(creds.BirthDate) == "" {
		return fmt.Errorf("birth date is required")
	}
	if strings.TrimSpace(creds.LicenseNumber) == "" {
		return fmt.Errorf("license number is required")
	}
	return nil
}

// ValidateRegistrationForm runs the final-step checks in their fixed order:
// required fields, password match, password policy, business billing rules,
// fiscal code. Consent gating happens separately because it needs the
// server-supplied catalog.
func ValidateRegistrationForm(form models.RegistrationForm) error {
	if form.GivenName == "" || form.FamilyName == "" || form.Email == "" || form.Password == "" || form.FiscalCode == "" {
		return fmt.Errorf("all required fields must be filled in")
	}
	if form.Password != form.PasswordConfirm {
		return fmt.Errorf("password and confirmation do not match")
	}
	if err := VerifyPasswordComplexity(form.Password); err != nil {
		return err
	}
	if form.BillingType == models.BillingBusiness {
		if strings.TrimSpace(form.CompanyName) == "" {
			return fmt.Errorf("company name is required for business billing")
		}
		if strings.TrimSpace(form.VATNumber) == "" {
			return fmt.Errorf("VAT number is required for business billing")
		}
		hasPEC := strings.TrimSpace(form.PECEmail) != ""
		hasSDI := len(strings.TrimSpace(form.SDICode)) == 7
		if !hasPEC && !hasSDI {
			return fmt.Errorf("either a PEC email or a 7-character SDI code is required for business billing")
		}
	}
	if check := ValidateFiscalCode(form.FiscalCode); !check.Valid() {
		switch {
		case !check.ValidLength:
			return fmt.Errorf("fiscal code must be 16 characters")
		case !check.ValidFormat:
			return fmt.Errorf("fiscal code format is invalid")
		default:
			return fmt.Errorf("fiscal code check character is invalid")
		}
	}
	return nil
}
