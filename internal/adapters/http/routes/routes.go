package routes

import (
	"time"

	"clinicdesk/internal/adapters/http/handlers"
	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

const departmentsMaxAge = 5 * time.Minute

// Services holds the application services shared by the router and the
// background jobs
type Services struct {
	Auth         *services.AuthService
	Directory    *services.DirectoryService
	Availability *services.AvailabilityService
	Booking      *services.BookingService
	Dashboard    *services.DashboardService
	Maintenance  *services.MaintenanceService
	Cron         *services.CronService
}

// NewServices wires repositories and services on top of db
func NewServices(db *gorm.DB, cfg *config.Config, notifier services.Notifier) *Services {
	store := repositories.NewStore(db)
	resets := services.NewResetTokenStore(time.Duration(cfg.Clinic.ResetTokenTTLMinutes) * time.Minute)
	seeder := config.NewSeeder(cfg.Clinic)

	return &Services{
		Auth:         services.NewAuthService(store, resets, notifier, cfg),
		Directory:    services.NewDirectoryService(store, cfg),
		Availability: services.NewAvailabilityService(store),
		Booking:      services.NewBookingService(store),
		Dashboard:    services.NewDashboardService(store),
		Maintenance:  services.NewMaintenanceService(db, seeder),
		Cron:         services.NewCronService(store, resets, notifier),
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config, checkDB func() error) {
	sessions := session.New(session.Config{
		KeyLookup:      "cookie:clinic_session",
		Expiration:     time.Duration(cfg.JWT.SessionHours) * time.Hour,
		CookieSecure:   cfg.Cookie.Secure,
		CookieHTTPOnly: true,
		CookieSameSite: cfg.Cookie.SameSite,
		CookieDomain:   cfg.Cookie.Domain,
	})
	flashes := flash.NewStore(sessions)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, checkDB)
	authHandler := handlers.NewAuthHandler(svc.Auth, flashes, cfg)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, flashes)
	adminHandler := handlers.NewAdminHandler(svc.Directory, svc.Dashboard, svc.Maintenance, flashes, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(svc.Availability)
	directoryHandler := handlers.NewDirectoryHandler(svc.Directory)
	appointmentHandler := handlers.NewAppointmentHandler(svc.Booking, flashes)

	// Public routes
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/departments", middleware.PublicCache(departmentsMaxAge), directoryHandler.Departments)

	// Everything below knows who the caller is
	app.Use(middleware.LoadPrincipal(svc.Auth))

	app.Get("/", authHandler.Index)
	setupAuthRoutes(app, authHandler, flashes, cfg)

	// Admin routes
	admin := app.Group("/admin", middleware.NoCacheHeaders())
	setupAdminRoutes(admin, adminHandler, dashboardHandler, flashes)

	// Doctor routes
	doctor := app.Group("/doctor", middleware.NoCacheHeaders())
	setupDoctorRoutes(doctor, availabilityHandler, dashboardHandler, flashes)

	// Patient routes
	app.Get("/patient/dashboard",
		middleware.NoCacheHeaders(),
		middleware.RequirePage(flashes, domain.RolePatient),
		dashboardHandler.PatientDashboard,
	)

	setupAppointmentRoutes(app, appointmentHandler, directoryHandler, flashes)
}

// setupAuthRoutes configures login, registration and password reset
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, flashes *flash.Store, cfg *config.Config) {
	router.Get("/login", handler.LoginPage)
	router.Post("/login", middleware.AuthRateLimiter(cfg), handler.Login)
	router.Get("/logout", middleware.RequirePage(flashes), handler.Logout)

	router.Get("/register/patient", handler.RegisterPage)
	router.Post("/register/patient", middleware.AuthRateLimiter(cfg), handler.RegisterPatient)

	// Password reset (3 req/min/IP)
	router.Get("/forgot-password", handler.ForgotPasswordPage)
	router.Post("/forgot-password", middleware.StrictRateLimiter(cfg), handler.ForgotPassword)
	router.Get("/reset-password/:token", handler.ResetPasswordPage)
	router.Post("/reset-password/:token", middleware.StrictRateLimiter(cfg), handler.ResetPassword)
}

// setupAdminRoutes configures admin routes (Admin only)
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, dashboard *handlers.DashboardHandler, flashes *flash.Store) {
	page := middleware.RequirePage(flashes, domain.RoleAdmin)
	api := middleware.RequireAPI(domain.RoleAdmin)

	router.Get("/dashboard", page, dashboard.AdminDashboard)
	router.Get("/doctors", page, handler.Doctors)
	router.Post("/doctors/:id/active", page, handler.SetDoctorActive)
	router.Post("/reset_database", page, handler.ResetDatabase)

	router.Get("/appointments", api, handler.Appointments)
	router.Post("/add_doctor", api, handler.AddDoctor)
}

// setupDoctorRoutes configures doctor routes (Doctor only)
func setupDoctorRoutes(router fiber.Router, handler *handlers.AvailabilityHandler, dashboard *handlers.DashboardHandler, flashes *flash.Store) {
	router.Get("/dashboard", middleware.RequirePage(flashes, domain.RoleDoctor), dashboard.DoctorDashboard)

	api := middleware.RequireAPI(domain.RoleDoctor)
	router.Get("/availability", api, handler.List)
	router.Post("/availability", api, handler.Declare)
	router.Post("/availability/:id/toggle", api, handler.Toggle)
}

// setupAppointmentRoutes configures search and the appointment lifecycle
func setupAppointmentRoutes(router fiber.Router, handler *handlers.AppointmentHandler, directory *handlers.DirectoryHandler, flashes *flash.Store) {
	router.Get("/search_doctors", middleware.RequireAPI(), directory.SearchDoctors)
	router.Post("/book_appointment", middleware.RequireAPI(domain.RolePatient), handler.Book)

	// ownership is checked per appointment
	router.Post("/cancel_appointment/:id", middleware.RequirePage(flashes), handler.Cancel)
	router.Post("/complete_appointment/:id", middleware.RequirePage(flashes, domain.RoleDoctor), handler.Complete)
}
