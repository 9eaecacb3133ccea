package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/serenemind/portal_backend/controllers"
)

// RegisterAdminRoutes sets up the admin login, dashboard feed and doctor
// approval workflow. The dashboard polls these endpoints; they carry no
// token gate, matching the portal's open-admin design.
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController) {
	e.POST("/api/admin/login", adminController.Login)
	e.GET("/api/admin/overview", adminController.Overview)
	e.GET("/api/admin/doctors/pending", adminController.PendingDoctors)
	e.GET("/api/admin/doctors/approved", adminController.ApprovedDoctors)
	e.POST("/api/admin/doctors/approve", adminController.ApproveDoctor)
	e.POST("/api/admin/doctors/reject", adminController.RejectDoctor)
}
