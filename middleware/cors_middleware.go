package middleware

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// corsOrigins builds the allowed-origin list. The admin dashboard is a static
// page served separately, so the local dev origins are always allowed; extra
// origins come from CORS_ALLOWED_ORIGINS (comma-separated).
func corsOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5000",
		"http://localhost:5500",
		"http://127.0.0.1:5500",
	}

	if envOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); envOrigins != "" {
		for _, origin := range strings.Split(envOrigins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}

// GlobalCORS creates the portal's CORS middleware
func GlobalCORS() echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		MaxAge:           86400,
	})
}
