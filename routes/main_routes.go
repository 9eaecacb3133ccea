package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/serenemind/portal_backend/controllers"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(
	e *echo.Echo,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	appointmentController *controllers.AppointmentController,
) {
	RegisterAuthRoutes(e, authController)
	RegisterAdminRoutes(e, adminController)

	e.POST("/api/appointments", appointmentController.Book)
	e.GET("/api/appointments", appointmentController.List)
}
