package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenemind/portal_backend/models"
	"github.com/serenemind/portal_backend/repositories"
)

// fakeMailer records sent codes instead of dialing SMTP
type fakeMailer struct {
	sent map[string]string
	fail bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(map[string]string)}
}

func (m *fakeMailer) SendOTP(email, name, code string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent[email] = code
	return nil
}

func newTestService(t *testing.T) (*AccountService, *fakeMailer) {
	t.Helper()
	store := repositories.NewMemoryStore()
	mailer := newFakeMailer()
	svc := NewAccountService(
		repositories.NewMemoryAccountRepository(store),
		repositories.NewMemoryOTPRepository(store),
		repositories.NewMemoryAppointmentRepository(store),
		mailer,
	)
	return svc, mailer
}

func signupPatient(t *testing.T, svc *AccountService, email string) {
	t.Helper()
	err := svc.Signup(context.Background(), models.KindPatient, &models.SignupRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     email,
		Password:  "p",
	})
	require.NoError(t, err)
}

func signupDoctor(t *testing.T, svc *AccountService, email string) {
	t.Helper()
	err := svc.Signup(context.Background(), models.KindDoctor, &models.SignupRequest{
		FirstName:       "Gregory",
		LastName:        "House",
		Email:           email,
		Password:        "vicodin",
		Specialization:  "Diagnostics",
		ExperienceYears: 20,
		ClinicName:      "PPTH",
		RegistrationID:  "MD-221",
	})
	require.NoError(t, err)
}

func TestSignupIssuesSixDigitOTP(t *testing.T) {
	svc, mailer := newTestService(t)

	signupPatient(t, svc, "a@x.com")

	code, ok := mailer.sent["a@x.com"]
	require.True(t, ok, "signup must dispatch an OTP email")
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), code)
}

func TestVerifyOTPHappyPath(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	signupPatient(t, svc, "a@x.com")

	// Wrong code first
	err := svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", "000000")
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// Right code flips the account to verified
	err = svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", mailer.sent["a@x.com"])
	require.NoError(t, err)

	// The code is consumed exactly once
	err = svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", mailer.sent["a@x.com"])
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyOTPUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.VerifyOTP(context.Background(), models.KindPatient, "nobody@x.com", "123456")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestVerifyOTPExpiredCodeIsRemoved(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	signupPatient(t, svc, "a@x.com")
	code := mailer.sent["a@x.com"]

	// Jump past the 10-minute window
	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	err := svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", code)
	assert.ErrorIs(t, err, ErrOTPExpired)

	// The stale record is gone, so even the right code late fails with no-pending
	err = svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", code)
	assert.ErrorIs(t, err, ErrNoPendingCode)
}

func TestReSignupRules(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	signupPatient(t, svc, "a@x.com")

	// Unverified accounts are silently overwritten
	err := svc.Signup(ctx, models.KindPatient, &models.SignupRequest{
		FirstName: "New",
		LastName:  "Name",
		Email:     "a@x.com",
		Password:  "other",
	})
	require.NoError(t, err)

	err = svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", mailer.sent["a@x.com"])
	require.NoError(t, err)

	// Verified accounts reject a later signup
	err = svc.Signup(ctx, models.KindPatient, &models.SignupRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@x.com",
		Password:  "p",
	})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestSignupDeliveryFailureSurfaces(t *testing.T) {
	svc, mailer := newTestService(t)
	mailer.fail = true

	err := svc.Signup(context.Background(), models.KindPatient, &models.SignupRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@x.com",
		Password:  "p",
	})
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestPatientLoginGating(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	// Unknown email
	_, err := svc.PatientLogin(ctx, "a@x.com", "p", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	signupPatient(t, svc, "a@x.com")

	// Unverified collapses to the same error
	_, err = svc.PatientLogin(ctx, "a@x.com", "p", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", mailer.sent["a@x.com"]))

	// Wrong password
	_, err = svc.PatientLogin(ctx, "a@x.com", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	account, err := svc.PatientLogin(ctx, "a@x.com", "p", "")
	require.NoError(t, err)
	assert.Equal(t, "A B", account.FullName())
}

func TestPatientLoginWithOTPConsumesCode(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	signupPatient(t, svc, "a@x.com")
	require.NoError(t, svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", mailer.sent["a@x.com"]))

	// Fresh login code
	require.NoError(t, svc.IssueOTP(ctx, models.KindPatient, "a@x.com"))
	code := mailer.sent["a@x.com"]

	_, err := svc.PatientLogin(ctx, "a@x.com", "p", "999999")
	assert.ErrorIs(t, err, ErrOTPMismatch)

	_, err = svc.PatientLogin(ctx, "a@x.com", "p", code)
	require.NoError(t, err)

	// Consumed on success: the same code cannot be replayed
	_, err = svc.PatientLogin(ctx, "a@x.com", "p", code)
	assert.ErrorIs(t, err, ErrNoPendingCode)
}

func TestDoctorLoginRequiresVerifiedAndApproved(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	signupDoctor(t, svc, "doc@x.com")

	_, err := svc.DoctorLogin(ctx, "doc@x.com", "vicodin")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	require.NoError(t, svc.VerifyOTP(ctx, models.KindDoctor, "doc@x.com", mailer.sent["doc@x.com"]))

	_, err = svc.DoctorLogin(ctx, "doc@x.com", "vicodin")
	assert.ErrorIs(t, err, ErrPendingApproval)

	require.NoError(t, svc.ApproveDoctor(ctx, "doc@x.com"))

	_, err = svc.DoctorLogin(ctx, "doc@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	account, err := svc.DoctorLogin(ctx, "doc@x.com", "vicodin")
	require.NoError(t, err)
	assert.True(t, account.IsApproved)
}

func TestApproveDoctorTransitions(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ApproveDoctor(ctx, "doc@x.com"), ErrAccountNotFound)

	signupDoctor(t, svc, "doc@x.com")
	assert.ErrorIs(t, svc.ApproveDoctor(ctx, "doc@x.com"), ErrNotYetVerified)

	require.NoError(t, svc.VerifyOTP(ctx, models.KindDoctor, "doc@x.com", mailer.sent["doc@x.com"]))

	pending, err := svc.ListPendingDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "doc@x.com", pending[0].Email)

	require.NoError(t, svc.ApproveDoctor(ctx, "doc@x.com"))
	// Idempotent on repeat
	require.NoError(t, svc.ApproveDoctor(ctx, "doc@x.com"))

	pending, err = svc.ListPendingDoctors(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	approved, err := svc.ListApprovedDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
}

func TestRejectDoctorDeletesInAnyState(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.RejectDoctor(ctx, "doc@x.com"), ErrAccountNotFound)

	// Reject an unverified doctor
	signupDoctor(t, svc, "doc@x.com")
	require.NoError(t, svc.RejectDoctor(ctx, "doc@x.com"))

	// Reject an approved doctor
	signupDoctor(t, svc, "doc@x.com")
	require.NoError(t, svc.VerifyOTP(ctx, models.KindDoctor, "doc@x.com", mailer.sent["doc@x.com"]))
	require.NoError(t, svc.ApproveDoctor(ctx, "doc@x.com"))
	require.NoError(t, svc.RejectDoctor(ctx, "doc@x.com"))

	_, err := svc.DoctorLogin(ctx, "doc@x.com", "vicodin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBookAppointmentAndStats(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	signupPatient(t, svc, "a@x.com")
	require.NoError(t, svc.VerifyOTP(ctx, models.KindPatient, "a@x.com", mailer.sent["a@x.com"]))
	signupDoctor(t, svc, "doc@x.com")

	req := &models.AppointmentRequest{
		PatientEmail: "a@x.com",
		DoctorEmail:  "doc@x.com",
		Date:         "2026-09-15",
		Time:         "10:30",
		Reason:       "checkup",
	}

	// Doctor not yet verified
	_, err := svc.BookAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrNotYetVerified)

	require.NoError(t, svc.VerifyOTP(ctx, models.KindDoctor, "doc@x.com", mailer.sent["doc@x.com"]))

	// Doctor not yet approved
	_, err = svc.BookAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrPendingApproval)

	require.NoError(t, svc.ApproveDoctor(ctx, "doc@x.com"))

	appointment, err := svc.BookAppointment(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, appointment.ID)

	byPatient, err := svc.ListAppointments(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, byPatient, 1)

	stats, err := svc.OverviewStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDoctors)
	assert.Equal(t, 0, stats.PendingDoctors)
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 1, stats.TotalAppointments)
}
