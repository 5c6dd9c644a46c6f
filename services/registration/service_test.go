package registration

import (
	"context"
	"fmt"
	"testing"

	"clarimed/models"
	"clarimed/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	verifyCalls   int
	verifyResp    upstream.VerifyDoctorResponse
	verifyErr     error
	requestCalls  int
	requestResp   upstream.EmailVerificationResponse
	requestErr    error
	confirmCalls  int
	confirmToken  string
	confirmErr    error
	lastCode      string
	completeCalls int
	completeErr   error
	lastPayload   upstream.RegistrationPayload
}

func (s *stubAPI) VerifyDoctor(ctx context.Context, email string, creds models.DoctorCredentials) (*upstream.VerifyDoctorResponse, error) {
	s.verifyCalls++
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	resp := s.verifyResp
	return &resp, nil
}

func (s *stubAPI) RequestEmailVerification(ctx context.Context, email string, termsAccepted bool, doctor *models.DoctorCredentials) (*upstream.EmailVerificationResponse, error) {
	s.requestCalls++
	if s.requestErr != nil {
		return nil, s.requestErr
	}
	resp := s.requestResp
	return &resp, nil
}

func (s *stubAPI) ConfirmEmail(ctx context.Context, email, token string) (*upstream.ConfirmEmailResponse, error) {
	s.confirmCalls++
	s.lastCode = token
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return &upstream.ConfirmEmailResponse{Token: s.confirmToken}, nil
}

func (s *stubAPI) CompleteRegistration(ctx context.Context, payload upstream.RegistrationPayload) error {
	s.completeCalls++
	s.lastPayload = payload
	return s.completeErr
}

type stubConsents struct {
	required []string
	err      error
}

func (s *stubConsents) RequiredConsents(ctx context.Context) ([]string, error) {
	return s.required, s.err
}

func newTestService(api *stubAPI, gate *stubConsents) (*DefaultRegistrationService, *MemorySessionStore) {
	store := NewMemorySessionStore()
	if gate == nil {
		gate = &stubConsents{}
	}
	return &DefaultRegistrationService{API: api, Store: store, Consents: gate}, store
}

func startAt(t *testing.T, svc *DefaultRegistrationService, store *MemorySessionStore, step models.RegistrationStep) *models.RegistrationSession {
	t.Helper()
	session, err := svc.Start(context.Background(), models.EntryParams{})
	require.NoError(t, err)
	session.CurrentStep = step
	session.VerifiedEmail = "mario.rossi@example.it"
	require.NoError(t, store.Save(context.Background(), *session))
	return session
}

func validCreds() models.DoctorCredentials {
	return models.DoctorCredentials{
		FamilyName:    "Rossi",
		GivenName:     "Mario",
		BirthDate:     "1980-01-01",
		LicenseNumber: "MI-12345",
	}
}

func TestVerifyDoctorAdvancesWithDisplayDelay(t *testing.T) {
	api := &stubAPI{verifyResp: upstream.VerifyDoctorResponse{Valid: true}}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepDoctorVerification)

	res, err := svc.VerifyDoctor(context.Background(), session.ID, validCreds())
	require.NoError(t, err)
	assert.Equal(t, models.StepEmailVerification, res.Step)
	assert.Equal(t, int64(1500), res.DisplayDelayMillis)

	saved, err := store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, saved.DoctorOK)
	assert.Equal(t, models.StepEmailVerification, saved.CurrentStep)
}

func TestVerifyDoctorLocalFailureSkipsNetwork(t *testing.T) {
	api := &stubAPI{}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepDoctorVerification)

	creds := validCreds()
	creds.GivenName = "M"
	_, err := svc.VerifyDoctor(context.Background(), session.ID, creds)
	assert.Error(t, err)
	assert.Zero(t, api.verifyCalls)

	saved, _ := store.Get(context.Background(), session.ID)
	assert.Equal(t, models.StepDoctorVerification, saved.CurrentStep)
}

func TestVerifyDoctorRejectionSurfacesReason(t *testing.T) {
	api := &stubAPI{verifyResp: upstream.VerifyDoctorResponse{Valid: false, Message: "license expired in 2019"}}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepDoctorVerification)

	_, err := svc.VerifyDoctor(context.Background(), session.ID, validCreds())
	require.Error(t, err)
	assert.Equal(t, "license expired in 2019", err.Error())

	saved, _ := store.Get(context.Background(), session.ID)
	assert.Equal(t, models.StepDoctorVerification, saved.CurrentStep)
}

func TestRequestEmailCodeRequiresTerms(t *testing.T) {
	api := &stubAPI{}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepEmailVerification)

	_, err := svc.RequestEmailCode(context.Background(), session.ID, "mario@example.it", false)
	assert.Error(t, err)
	assert.Zero(t, api.requestCalls)
}

func TestRequestEmailCodePendingVerification(t *testing.T) {
	api := &stubAPI{requestResp: upstream.EmailVerificationResponse{PendingVerification: true}}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepEmailVerification)

	res, err := svc.RequestEmailCode(context.Background(), session.ID, "mario@example.it", true)
	require.NoError(t, err)
	assert.Equal(t, models.StepEmailConfirm, res.Step)
	assert.True(t, res.PendingVerification)
	assert.Contains(t, res.Message, "pending registration")
}

func TestSubmitCodeRejectsMalformedCode(t *testing.T) {
	api := &stubAPI{}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepEmailConfirm)

	for _, code := range []string{"12345", "1234567", "12a456", ""} {
		_, err := svc.SubmitCode(context.Background(), session.ID, code)
		assert.Error(t, err, "code %q", code)
	}
	assert.Zero(t, api.confirmCalls)
}

func TestSubmitCodeAdvancesAndKeepsToken(t *testing.T) {
	api := &stubAPI{confirmToken: "tok-abc"}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepEmailConfirm)

	res, err := svc.SubmitCode(context.Background(), session.ID, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.StepRegistrationForm, res.Step)
	assert.Equal(t, "123456", api.lastCode)

	saved, _ := store.Get(context.Background(), session.ID)
	assert.Equal(t, "tok-abc", saved.ConfirmedToken)
}

func TestAutoConfirmFallsBackToManualEntry(t *testing.T) {
	api := &stubAPI{confirmErr: fmt.Errorf("token expired")}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepAutoConfirm)

	_, err := svc.AutoConfirm(context.Background(), session.ID)
	require.Error(t, err)

	saved, _ := store.Get(context.Background(), session.ID)
	assert.Equal(t, models.StepEmailConfirm, saved.CurrentStep)
}

func TestSubmitRegistrationConsentGate(t *testing.T) {
	api := &stubAPI{}
	gate := &stubConsents{required: []string{"privacy_policy", "health_data"}}
	svc, store := newTestService(api, gate)
	session := startAt(t, svc, store, models.StepRegistrationForm)

	consents := models.ConsentSet{"privacy_policy": true, "health_data": false}
	_, err := svc.SubmitRegistration(context.Background(), session.ID, validForm(), consents)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health_data")
	assert.Zero(t, api.completeCalls)

	consents["health_data"] = true
	res, err := svc.SubmitRegistration(context.Background(), session.ID, validForm(), consents)
	require.NoError(t, err)
	assert.Equal(t, models.StepSuccess, res.Step)
	assert.Equal(t, int64(3000), res.DisplayDelayMillis)

	_, err = store.Get(context.Background(), session.ID)
	assert.Error(t, err, "completed session should be deleted")
}

func TestSubmitRegistrationPrivateBillingNullsBusinessFields(t *testing.T) {
	api := &stubAPI{}
	svc, store := newTestService(api, &stubConsents{})
	session := startAt(t, svc, store, models.StepRegistrationForm)

	_, err := svc.SubmitRegistration(context.Background(), session.ID, validForm(), models.ConsentSet{})
	require.NoError(t, err)
	assert.Nil(t, api.lastPayload.CompanyName)
	assert.Nil(t, api.lastPayload.VATNumber)
	assert.Equal(t, validFiscalCode, api.lastPayload.FiscalCode)
}

func TestChangeEmailOnlyFromCodeEntry(t *testing.T) {
	api := &stubAPI{}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepEmailConfirm)

	res, err := svc.ChangeEmail(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepEmailVerification, res.Step)

	_, err = svc.ChangeEmail(context.Background(), session.ID)
	assert.Error(t, err, "not on the code entry step anymore")
}

func TestStepGuardsRejectOutOfOrderCalls(t *testing.T) {
	api := &stubAPI{}
	svc, store := newTestService(api, nil)
	session := startAt(t, svc, store, models.StepRegistrationForm)

	_, err := svc.VerifyDoctor(context.Background(), session.ID, validCreds())
	assert.Error(t, err)
	_, err = svc.SubmitCode(context.Background(), session.ID, "123456")
	assert.Error(t, err)
	assert.Zero(t, api.verifyCalls)
	assert.Zero(t, api.confirmCalls)
}
