package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/serenemind/portal_backend/models"
	"github.com/serenemind/portal_backend/repositories"
	"github.com/serenemind/portal_backend/utils"
)

// Sentinel errors for the verification and approval state machine. Controllers
// map these onto HTTP responses; nothing here is retried server-side.
var (
	ErrAlreadyRegistered  = errors.New("email already registered and verified")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNoPendingCode      = errors.New("no pending OTP for this email")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrOTPMismatch        = errors.New("invalid OTP")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrPendingApproval    = errors.New("account pending admin approval")
	ErrNotYetVerified     = errors.New("doctor has not verified their email")
	ErrDeliveryFailed     = errors.New("failed to send OTP")
)

// AccountService runs signup, OTP verification, login gating, the doctor
// approval workflow, and appointment booking over injected repositories.
type AccountService struct {
	accounts     repositories.AccountRepository
	otps         repositories.OTPRepository
	appointments repositories.AppointmentRepository
	mailer       Mailer
	now          func() time.Time
	logger       *log.Logger
}

// NewAccountService creates the service over the given backends
func NewAccountService(
	accounts repositories.AccountRepository,
	otps repositories.OTPRepository,
	appointments repositories.AppointmentRepository,
	mailer Mailer,
) *AccountService {
	return &AccountService{
		accounts:     accounts,
		otps:         otps,
		appointments: appointments,
		mailer:       mailer,
		now:          time.Now,
		logger:       log.New(os.Stdout, "[accounts] ", log.LstdFlags),
	}
}

// Signup registers a patient or doctor account and emails a verification code.
// A verified account is never overwritten; an unverified one is replaced
// wholesale, which also restarts its verification window.
func (s *AccountService) Signup(ctx context.Context, kind models.AccountKind, req *models.SignupRequest) error {
	existing, err := s.accounts.Get(ctx, kind, req.Email)
	if err != nil && err != repositories.ErrNotFound {
		return err
	}
	if existing != nil && existing.IsVerified {
		return ErrAlreadyRegistered
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	account := &models.Account{
		Email:           req.Email,
		Kind:            kind,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        hashed,
		IsVerified:      false,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		ClinicName:      req.ClinicName,
		RegistrationID:  req.RegistrationID,
		CreatedAt:       s.now(),
	}
	if err := s.accounts.Put(ctx, account); err != nil {
		return err
	}

	s.logger.Printf("new %s registered: %s", kind, req.Email)
	return s.IssueOTP(ctx, kind, req.Email)
}

// IssueOTP generates a fresh code for the account, overwriting any pending
// one, and dispatches it by email. A delivery failure surfaces as
// ErrDeliveryFailed and leaves the account state untouched, so the caller has
// to request a new code.
func (s *AccountService) IssueOTP(ctx context.Context, kind models.AccountKind, email string) error {
	account, err := s.accounts.Get(ctx, kind, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrAccountNotFound
		}
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	otp := &models.PendingOTP{
		Email:     email,
		Kind:      kind,
		Code:      code,
		ExpiresAt: s.now().Add(utils.OTPValidity),
	}
	if err := s.otps.Put(ctx, otp); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(email, account.FullName(), code); err != nil {
		s.logger.Printf("OTP dispatch failed for %s: %v", email, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Printf("OTP sent to %s", email)
	return nil
}

// VerifyOTP consumes the pending code and flips the account to verified.
// The code is deleted on success and on expiry detection, so a late retry
// with the right digits still fails.
func (s *AccountService) VerifyOTP(ctx context.Context, kind models.AccountKind, email, code string) error {
	account, err := s.accounts.Get(ctx, kind, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrAccountNotFound
		}
		return err
	}

	otp, err := s.otps.Get(ctx, kind, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			// A consumed code and a never-issued code look the same in the
			// store; the account state tells the two apart.
			if account.IsVerified {
				return ErrAlreadyVerified
			}
			return ErrNoPendingCode
		}
		return err
	}

	if otp.Expired(s.now()) {
		if err := s.otps.Delete(ctx, kind, email); err != nil {
			return err
		}
		return ErrOTPExpired
	}

	if otp.Code != code {
		return ErrOTPMismatch
	}

	if err := s.otps.Delete(ctx, kind, email); err != nil {
		return err
	}

	account.IsVerified = true
	if err := s.accounts.Put(ctx, account); err != nil {
		return err
	}

	s.logger.Printf("%s verified: %s", kind, email)
	return nil
}

// PatientLogin gates patient access: account presence, verification and
// password mismatch all collapse to ErrInvalidCredentials so the response
// never leaks which check failed. When an OTP is supplied it must match a
// live pending code and is consumed.
func (s *AccountService) PatientLogin(ctx context.Context, email, password, otpCode string) (*models.Account, error) {
	account, err := s.accounts.Get(ctx, models.KindPatient, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !account.IsVerified {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, account.Password) {
		return nil, ErrInvalidCredentials
	}

	if otpCode != "" {
		otp, err := s.otps.Get(ctx, models.KindPatient, email)
		if err != nil {
			if err == repositories.ErrNotFound {
				return nil, ErrNoPendingCode
			}
			return nil, err
		}
		if otp.Expired(s.now()) {
			if err := s.otps.Delete(ctx, models.KindPatient, email); err != nil {
				return nil, err
			}
			return nil, ErrOTPExpired
		}
		if otp.Code != otpCode {
			return nil, ErrOTPMismatch
		}
		if err := s.otps.Delete(ctx, models.KindPatient, email); err != nil {
			return nil, err
		}
	}

	s.logger.Printf("patient logged in: %s", email)
	return account, nil
}

// DoctorLogin distinguishes bad credentials, an unverified email, and an
// account still waiting on admin approval.
func (s *AccountService) DoctorLogin(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accounts.Get(ctx, models.KindDoctor, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, account.Password) {
		return nil, ErrInvalidCredentials
	}
	if !account.IsVerified {
		return nil, ErrEmailNotVerified
	}
	if !account.IsApproved {
		return nil, ErrPendingApproval
	}

	s.logger.Printf("doctor logged in: %s", email)
	return account, nil
}

// ListPendingDoctors returns verified doctors still waiting on approval
func (s *AccountService) ListPendingDoctors(ctx context.Context) ([]models.Account, error) {
	doctors, err := s.accounts.List(ctx, models.KindDoctor)
	if err != nil {
		return nil, err
	}

	pending := []models.Account{}
	for _, doctor := range doctors {
		if doctor.IsVerified && !doctor.IsApproved {
			pending = append(pending, doctor)
		}
	}
	return pending, nil
}

// ListApprovedDoctors returns doctors usable for login and booking
func (s *AccountService) ListApprovedDoctors(ctx context.Context) ([]models.Account, error) {
	doctors, err := s.accounts.List(ctx, models.KindDoctor)
	if err != nil {
		return nil, err
	}

	approved := []models.Account{}
	for _, doctor := range doctors {
		if doctor.IsVerified && doctor.IsApproved {
			approved = append(approved, doctor)
		}
	}
	return approved, nil
}

// ApproveDoctor grants login rights to a verified doctor. Re-approving an
// already-approved doctor is a no-op success.
func (s *AccountService) ApproveDoctor(ctx context.Context, email string) error {
	doctor, err := s.accounts.Get(ctx, models.KindDoctor, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrAccountNotFound
		}
		return err
	}

	if !doctor.IsVerified {
		return ErrNotYetVerified
	}
	if doctor.IsApproved {
		return nil
	}

	doctor.IsApproved = true
	if err := s.accounts.Put(ctx, doctor); err != nil {
		return err
	}

	s.logger.Printf("doctor approved: %s", email)
	return nil
}

// RejectDoctor removes the account outright, in any state. There is no
// terminal rejected state; a rejected doctor can sign up again from scratch.
func (s *AccountService) RejectDoctor(ctx context.Context, email string) error {
	err := s.accounts.Delete(ctx, models.KindDoctor, email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrAccountNotFound
		}
		return err
	}

	// Drop any pending code so a stale OTP can't act on a fresh re-signup
	if err := s.otps.Delete(ctx, models.KindDoctor, email); err != nil {
		s.logger.Printf("failed to drop pending OTP for rejected doctor %s: %v", email, err)
	}

	s.logger.Printf("doctor rejected and removed: %s", email)
	return nil
}

// OverviewStats aggregates the dashboard counters
func (s *AccountService) OverviewStats(ctx context.Context) (*models.OverviewStats, error) {
	totalDoctors, err := s.accounts.Count(ctx, models.KindDoctor)
	if err != nil {
		return nil, err
	}
	totalPatients, err := s.accounts.Count(ctx, models.KindPatient)
	if err != nil {
		return nil, err
	}
	pending, err := s.ListPendingDoctors(ctx)
	if err != nil {
		return nil, err
	}
	totalAppointments, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.OverviewStats{
		TotalDoctors:      totalDoctors,
		PendingDoctors:    len(pending),
		TotalPatients:     totalPatients,
		TotalAppointments: totalAppointments,
	}, nil
}

// BookAppointment records a booking between a verified patient and an
// approved doctor.
func (s *AccountService) BookAppointment(ctx context.Context, req *models.AppointmentRequest) (*models.Appointment, error) {
	patient, err := s.accounts.Get(ctx, models.KindPatient, req.PatientEmail)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if !patient.IsVerified {
		return nil, ErrEmailNotVerified
	}

	doctor, err := s.accounts.Get(ctx, models.KindDoctor, req.DoctorEmail)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if !doctor.IsVerified {
		return nil, ErrNotYetVerified
	}
	if !doctor.IsApproved {
		return nil, ErrPendingApproval
	}

	appointment := &models.Appointment{
		ID:           uuid.New().String(),
		PatientEmail: req.PatientEmail,
		DoctorEmail:  req.DoctorEmail,
		Date:         req.Date,
		TimeSlot:     req.Time,
		Reason:       req.Reason,
		CreatedAt:    s.now(),
	}
	if err := s.appointments.Put(ctx, appointment); err != nil {
		return nil, err
	}

	s.logger.Printf("appointment booked: %s with %s on %s %s", req.PatientEmail, req.DoctorEmail, req.Date, req.Time)
	return appointment, nil
}

// ListAppointments returns appointments, filtered by participant email when given
func (s *AccountService) ListAppointments(ctx context.Context, email string) ([]models.Appointment, error) {
	return s.appointments.ListByEmail(ctx, email)
}
