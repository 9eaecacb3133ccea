// controllers/auth_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/serenemind/portal_backend/middleware"
	"github.com/serenemind/portal_backend/models"
	"github.com/serenemind/portal_backend/services"
	"github.com/serenemind/portal_backend/utils"
)

// AuthController handles signup, OTP verification and login for both
// patients and doctors.
type AuthController struct {
	service *services.AccountService
	logger  *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(service *services.AccountService) *AuthController {
	return &AuthController{
		service: service,
		logger:  log.New(os.Stdout, "[auth] ", log.LstdFlags),
	}
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 10*time.Second)
}

// PatientSignup handler
func (ac *AuthController) PatientSignup(c echo.Context) error {
	return ac.signup(c, models.KindPatient)
}

// DoctorSignup handler
func (ac *AuthController) DoctorSignup(c echo.Context) error {
	return ac.signup(c, models.KindDoctor)
}

func (ac *AuthController) signup(c echo.Context, kind models.AccountKind) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	req.FirstName = utils.SanitizeInput(req.FirstName)
	req.LastName = utils.SanitizeInput(req.LastName)

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "All fields are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}
	req.Email = email

	if kind == models.KindDoctor {
		req.Specialization = utils.SanitizeInput(req.Specialization)
		req.ClinicName = utils.SanitizeInput(req.ClinicName)
		req.RegistrationID = utils.SanitizeInput(req.RegistrationID)

		if req.Specialization == "" || req.ClinicName == "" || req.RegistrationID == "" {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "All fields are required",
			})
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ac.service.Signup(ctx, kind, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyRegistered):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Email already registered and verified. Please login.",
			})
		case errors.Is(err, services.ErrDeliveryFailed):
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to send OTP. Please try again.",
			})
		default:
			ac.logger.Printf("signup failed for %s: %v", req.Email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to create account",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Account created. OTP sent to your email. Please verify.",
	})
}

// PatientVerifyOTP handler
func (ac *AuthController) PatientVerifyOTP(c echo.Context) error {
	return ac.verifyOTP(c, models.KindPatient)
}

// DoctorVerifyOTP handler
func (ac *AuthController) DoctorVerifyOTP(c echo.Context) error {
	return ac.verifyOTP(c, models.KindDoctor)
}

func (ac *AuthController) verifyOTP(c echo.Context, kind models.AccountKind) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email and OTP are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ac.service.VerifyOTP(ctx, kind, email, req.OTP); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "User not found. Please sign up again.",
			})
		case errors.Is(err, services.ErrAlreadyVerified):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Email already verified. Please login.",
			})
		case errors.Is(err, services.ErrNoPendingCode):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "No OTP found. Please sign up again.",
			})
		case errors.Is(err, services.ErrOTPExpired):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "OTP expired. Please sign up again.",
			})
		case errors.Is(err, services.ErrOTPMismatch):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid OTP.",
			})
		default:
			ac.logger.Printf("verify failed for %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to verify OTP",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Email verified successfully! You can now login.",
	})
}

// PatientSendOTP handler
func (ac *AuthController) PatientSendOTP(c echo.Context) error {
	return ac.sendOTP(c, models.KindPatient)
}

// DoctorSendOTP handler
func (ac *AuthController) DoctorSendOTP(c echo.Context) error {
	return ac.sendOTP(c, models.KindDoctor)
}

func (ac *AuthController) sendOTP(c echo.Context, kind models.AccountKind) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email is required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ac.service.IssueOTP(ctx, kind, email); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Email not registered. Please sign up first.",
			})
		case errors.Is(err, services.ErrDeliveryFailed):
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to send OTP. Please try again.",
			})
		default:
			ac.logger.Printf("send-otp failed for %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to send OTP",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP sent to your email!",
	})
}

// PatientLogin handler. The otp field is optional: when present it must match
// a live pending code, which is consumed on success.
func (ac *AuthController) PatientLogin(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := ac.service.PatientLogin(ctx, email, req.Password, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid email or password",
			})
		case errors.Is(err, services.ErrNoPendingCode):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "OTP not found. Please request a new one.",
			})
		case errors.Is(err, services.ErrOTPExpired):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "OTP expired. Please request a new one.",
			})
		case errors.Is(err, services.ErrOTPMismatch):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid OTP",
			})
		default:
			ac.logger.Printf("patient login failed for %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Login failed",
			})
		}
	}

	return ac.loginSuccess(c, account, "patient")
}

// DoctorLogin handler. Unverified, pending-approval and bad-credential
// failures stay distinguishable, unlike the patient path.
func (ac *AuthController) DoctorLogin(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := ac.service.DoctorLogin(ctx, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid email or password",
			})
		case errors.Is(err, services.ErrEmailNotVerified):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Email not verified. Please complete signup.",
			})
		case errors.Is(err, services.ErrPendingApproval):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Your account is pending admin approval.",
			})
		default:
			ac.logger.Printf("doctor login failed for %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Login failed",
			})
		}
	}

	return ac.loginSuccess(c, account, "doctor")
}

func (ac *AuthController) loginSuccess(c echo.Context, account *models.Account, userType string) error {
	token, err := middleware.GenerateJWT(account.Email, account.FullName(), userType)
	if err != nil {
		ac.logger.Printf("token generation failed for %s: %v", account.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
		Name:    account.FullName(),
		Email:   account.Email,
	})
}

// ValidateToken lets clients check whether a session token is still valid
func (ac *AuthController) ValidateToken(c echo.Context) error {
	result := utils.ValidateTokenFromHeader(c.Request().Header.Get("Authorization"))

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnauthorized
	}
	return c.JSON(status, result)
}
