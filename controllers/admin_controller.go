// controllers/admin_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/serenemind/portal_backend/middleware"
	"github.com/serenemind/portal_backend/models"
	"github.com/serenemind/portal_backend/services"
	"github.com/serenemind/portal_backend/utils"
)

// AdminController serves the dashboard feed and the doctor approval workflow
type AdminController struct {
	service *services.AccountService
	admin   *models.Admin
	logger  *log.Logger
}

// NewAdminController seeds the single admin account from environment.
// ADMIN_PASSWORD is hashed at load so nothing plaintext stays in memory.
func NewAdminController(service *services.AccountService) *AdminController {
	admin := &models.Admin{
		AdminID: os.Getenv("ADMIN_ID"),
		Email:   os.Getenv("ADMIN_EMAIL"),
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		hashed, err := utils.HashPassword(pass)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		admin.Password = hashed
	} else {
		log.Println("Warning: ADMIN_PASSWORD not set, admin login disabled")
	}

	return &AdminController{
		service: service,
		admin:   admin,
		logger:  log.New(os.Stdout, "[admin] ", log.LstdFlags),
	}
}

// Login authenticates the seeded admin. Any mismatch yields the same 401.
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.AdminID == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Admin ID, email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil ||
		ac.admin.Password == "" ||
		req.AdminID != ac.admin.AdminID ||
		email != ac.admin.Email ||
		!utils.CheckPasswordHash(req.Password, ac.admin.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid admin credentials",
		})
	}

	token, err := middleware.GenerateJWT(ac.admin.Email, "Administrator", "admin")
	if err != nil {
		ac.logger.Printf("admin token generation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to generate token",
		})
	}

	ac.logger.Printf("admin logged in: %s", ac.admin.Email)
	return c.JSON(http.StatusOK, models.AdminLoginResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
		Email:   ac.admin.Email,
	})
}

// Overview returns the dashboard counters
func (ac *AdminController) Overview(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := ac.service.OverviewStats(ctx)
	if err != nil {
		ac.logger.Printf("overview failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load overview",
		})
	}

	return c.JSON(http.StatusOK, models.OverviewResponse{
		Success: true,
		Stats:   *stats,
	})
}

// PendingDoctors lists verified doctors awaiting approval
func (ac *AdminController) PendingDoctors(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	doctors, err := ac.service.ListPendingDoctors(ctx)
	if err != nil {
		ac.logger.Printf("pending doctors failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load pending doctors",
		})
	}

	return c.JSON(http.StatusOK, models.DoctorListResponse{
		Success: true,
		Doctors: doctors,
	})
}

// ApprovedDoctors lists doctors cleared for login and booking
func (ac *AdminController) ApprovedDoctors(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	doctors, err := ac.service.ListApprovedDoctors(ctx)
	if err != nil {
		ac.logger.Printf("approved doctors failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load approved doctors",
		})
	}

	return c.JSON(http.StatusOK, models.DoctorListResponse{
		Success: true,
		Doctors: doctors,
	})
}

// ApproveDoctor flips a verified doctor to approved; repeats are no-ops
func (ac *AdminController) ApproveDoctor(c echo.Context) error {
	email, ok := ac.bindEmail(c)
	if !ok {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ac.service.ApproveDoctor(ctx, email); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Doctor not found",
			})
		case errors.Is(err, services.ErrNotYetVerified):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Doctor has not verified their email yet",
			})
		default:
			ac.logger.Printf("approve failed for %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to approve doctor",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Doctor approved",
	})
}

// RejectDoctor deletes the doctor account in any state
func (ac *AdminController) RejectDoctor(c echo.Context) error {
	email, ok := ac.bindEmail(c)
	if !ok {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ac.service.RejectDoctor(ctx, email); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Doctor not found",
			})
		default:
			ac.logger.Printf("reject failed for %s: %v", email, err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to reject doctor",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Doctor rejected and removed",
	})
}

// bindEmail parses the {email} body shared by approve/reject. It writes the
// error response itself and reports whether the caller should continue.
func (ac *AdminController) bindEmail(c echo.Context) (string, bool) {
	var req models.AdminEmailRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
		return "", false
	}

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email is required",
		})
		return "", false
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
		return "", false
	}

	return email, true
}
