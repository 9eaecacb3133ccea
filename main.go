package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/serenemind/portal_backend/config"
	"github.com/serenemind/portal_backend/controllers"
	"github.com/serenemind/portal_backend/middleware"
	"github.com/serenemind/portal_backend/repositories"
	"github.com/serenemind/portal_backend/routes"
	"github.com/serenemind/portal_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	accountRepo, otpRepo, appointmentRepo := buildRepositories()

	service := services.NewAccountService(accountRepo, otpRepo, appointmentRepo, services.NewSMTPMailer())

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "SereneMind Portal Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	// Initialize controllers
	authController := controllers.NewAuthController(service)
	adminController := controllers.NewAdminController(service)
	appointmentController := controllers.NewAppointmentController(service)

	routes.SetupRoutes(e, authController, adminController, appointmentController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

// buildRepositories selects the storage backends. The default is the
// in-process store; STORE_BACKEND=mongo moves accounts and appointments to
// MongoDB, and OTP_BACKEND=redis moves the ephemeral codes to Redis.
func buildRepositories() (repositories.AccountRepository, repositories.OTPRepository, repositories.AppointmentRepository) {
	memStore := repositories.NewMemoryStore()

	var accountRepo repositories.AccountRepository = repositories.NewMemoryAccountRepository(memStore)
	var otpRepo repositories.OTPRepository = repositories.NewMemoryOTPRepository(memStore)
	var appointmentRepo repositories.AppointmentRepository = repositories.NewMemoryAppointmentRepository(memStore)

	if os.Getenv("STORE_BACKEND") == "mongo" {
		client := config.ConnectDB()
		db := config.GetDatabase(client)
		accountRepo = repositories.NewMongoAccountRepository(db)
		otpRepo = repositories.NewMongoOTPRepository(db)
		appointmentRepo = repositories.NewMongoAppointmentRepository(db)
	}

	if os.Getenv("OTP_BACKEND") == "redis" {
		if redisClient := config.ConnectRedis(); redisClient != nil {
			otpRepo = repositories.NewRedisOTPRepository(redisClient)
		}
	}

	return accountRepo, otpRepo, appointmentRepo
}
