// controllers/appointment_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/serenemind/portal_backend/models"
	"github.com/serenemind/portal_backend/services"
	"github.com/serenemind/portal_backend/utils"
)

// AppointmentController handles booking and listing appointments
type AppointmentController struct {
	service *services.AccountService
	logger  *log.Logger
}

func NewAppointmentController(service *services.AccountService) *AppointmentController {
	return &AppointmentController{
		service: service,
		logger:  log.New(os.Stdout, "[appointments] ", log.LstdFlags),
	}
}

// Book records an appointment between a verified patient and an approved doctor
func (ac *AppointmentController) Book(c echo.Context) error {
	var req models.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Patient email, doctor email, date and time are required",
		})
	}

	patientEmail, err := utils.SanitizeEmail(req.PatientEmail)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid patient email format",
		})
	}
	doctorEmail, err := utils.SanitizeEmail(req.DoctorEmail)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid doctor email format",
		})
	}
	req.PatientEmail = patientEmail
	req.DoctorEmail = doctorEmail
	req.Date = utils.SanitizeInput(req.Date)
	req.Time = utils.SanitizeInput(req.Time)
	req.Reason = utils.SanitizeInput(req.Reason)

	ctx, cancel := requestContext(c)
	defer cancel()

	appointment, err := ac.service.BookAppointment(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Patient or doctor not found",
			})
		case errors.Is(err, services.ErrEmailNotVerified):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Patient email is not verified",
			})
		case errors.Is(err, services.ErrNotYetVerified), errors.Is(err, services.ErrPendingApproval):
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Doctor is not available for booking",
			})
		default:
			ac.logger.Printf("booking failed: %v", err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to book appointment",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Appointment booked successfully!",
		Data:    appointment,
	})
}

// List returns appointments, filtered by ?email= when present
func (ac *AppointmentController) List(c echo.Context) error {
	email := c.QueryParam("email")
	if email != "" {
		sanitized, err := utils.SanitizeEmail(email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid email format",
			})
		}
		email = sanitized
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	appointments, err := ac.service.ListAppointments(ctx, email)
	if err != nil {
		ac.logger.Printf("listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to load appointments",
		})
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	return c.JSON(http.StatusOK, models.AppointmentListResponse{
		Success:      true,
		Appointments: appointments,
	})
}
