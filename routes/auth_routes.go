package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/serenemind/portal_backend/controllers"
)

// RegisterAuthRoutes sets up the patient and doctor signup/verification/login routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	// Patient flow
	e.POST("/api/patient/signup", authController.PatientSignup)
	e.POST("/api/patient/verify-signup-otp", authController.PatientVerifyOTP)
	e.POST("/api/patient/send-otp", authController.PatientSendOTP)
	e.POST("/api/patient/login", authController.PatientLogin)

	// Doctor flow
	e.POST("/api/doctor/signup", authController.DoctorSignup)
	e.POST("/api/doctor/verify-signup-otp", authController.DoctorVerifyOTP)
	e.POST("/api/doctor/send-otp", authController.DoctorSendOTP)
	e.POST("/api/doctor/login", authController.DoctorLogin)

	// Session token check (no server-side session exists; this just verifies the signature)
	e.POST("/api/auth/validate-token", authController.ValidateToken)
}
