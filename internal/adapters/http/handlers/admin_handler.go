package handlers

import (
	"errors"
	"strconv"
	"strings"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/flash"
	"clinicdesk/internal/pkg/pagination"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles doctor management and maintenance
type AdminHandler struct {
	directoryService   *services.DirectoryService
	dashboardService   *services.DashboardService
	maintenanceService *services.MaintenanceService
	flashes            *flash.Store
	cfg                *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	directoryService *services.DirectoryService,
	dashboardService *services.DashboardService,
	maintenanceService *services.MaintenanceService,
	flashes *flash.Store,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		directoryService:   directoryService,
		dashboardService:   dashboardService,
		maintenanceService: maintenanceService,
		flashes:            flashes,
		cfg:                cfg,
	}
}

// AddDoctorRequest represents the add doctor form
type AddDoctorRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Specialization  string `json:"specialization" form:"specialization"`
	DepartmentID    string `json:"department_id" form:"department_id"`
	LicenseNumber   string `json:"license_number" form:"license_number"`
	Experience      string `json:"experience" form:"experience"`
	ConsultationFee string `json:"consultation_fee" form:"consultation_fee"`
}

// Doctors lists doctor profiles and departments
// @Summary List doctors
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Page
// @Router /admin/doctors [get]
func (h *AdminHandler) Doctors(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	doctors, err := h.directoryService.ListDoctors(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	departments, err := h.directoryService.ListDepartments(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return response.Render(c, "admin/doctors", h.flashes.Pop(c), fiber.Map{
		"doctors":     doctors,
		"departments": departments,
	})
}

// Appointments returns the paginated appointment log
// @Summary Appointment log
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Response
// @Failure 403 {object} response.Response
// @Router /admin/appointments [get]
func (h *AdminHandler) Appointments(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	page, err := h.dashboardService.AppointmentLog(c.UserContext(), p, pagination.GetParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// AddDoctor creates a doctor account with the default password
// @Summary Add doctor
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param specialization formData string true "Specialization"
// @Param department_id formData int true "Department"
// @Param license_number formData string false "License number"
// @Param experience formData int false "Years of experience"
// @Param consultation_fee formData number false "Consultation fee"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/add_doctor [post]
func (h *AdminHandler) AddDoctor(c *fiber.Ctx) error {
	var req AddDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.AddDoctorInput{
		Username:       req.Username,
		Email:          req.Email,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	}

	departmentID, err := strconv.ParseUint(strings.TrimSpace(req.DepartmentID), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Department is required")
	}
	input.DepartmentID = uint(departmentID)

	if v := strings.TrimSpace(req.Experience); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil {
			return response.BadRequest(c, "Experience must be a whole number of years")
		}
		input.Experience = &years
	}
	if v := strings.TrimSpace(req.ConsultationFee); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.BadRequest(c, "Consultation fee must be a number")
		}
		input.ConsultationFee = fee
	}

	p, _ := middleware.Principal(c)
	doctor, err := h.directoryService.AddDoctor(c.UserContext(), p, input)
	if err != nil {
		return respondError(c, err)
	}

	msg := "Doctor added successfully! Default password: " + h.cfg.Clinic.DefaultDoctorPassword
	_ = h.flashes.Add(c, flash.Success, msg)
	return response.Created(c, msg, doctor.ToSummary())
}

// SetDoctorActive activates or deactivates a doctor
// @Summary Set doctor active flag
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Param id path int true "Doctor ID"
// @Param active formData bool true "Accept bookings"
// @Success 302
// @Router /admin/doctors/{id}/active [post]
func (h *AdminHandler) SetDoctorActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = h.flashes.Add(c, flash.Danger, "Invalid doctor ID")
		return c.Redirect("/admin/doctors", fiber.StatusFound)
	}
	active, err := strconv.ParseBool(c.FormValue("active"))
	if err != nil {
		_ = h.flashes.Add(c, flash.Danger, "Active must be true or false")
		return c.Redirect("/admin/doctors", fiber.StatusFound)
	}

	p, _ := middleware.Principal(c)
	if err := h.directoryService.SetDoctorActive(c.UserContext(), p, uint(id), active); err != nil {
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect("/admin/doctors", fiber.StatusFound)
	}

	if active {
		_ = h.flashes.Add(c, flash.Success, "Doctor activated")
	} else {
		_ = h.flashes.Add(c, flash.Warning, "Doctor deactivated")
	}
	return c.Redirect("/admin/doctors", fiber.StatusFound)
}

// ResetDatabase wipes and reseeds the database
// @Summary Reset database
// @Description Drops all data and recreates the default admin and departments. Requires confirm_code=RESET.
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Param confirm_code formData string true "Type RESET to confirm"
// @Success 302
// @Router /admin/reset_database [post]
func (h *AdminHandler) ResetDatabase(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	if err := h.maintenanceService.ResetDatabase(c.UserContext(), p, c.FormValue("confirm_code")); err != nil {
		_ = h.flashes.Add(c, resetFlashCategory(err), errorMessage(err))
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	}

	_ = h.flashes.Add(c, flash.Success, "Database reset successfully! All data has been cleared and default data recreated.")
	return c.Redirect("/admin/dashboard", fiber.StatusFound)
}

// resetFlashCategory warns on a missing confirmation and reports anything else as a failure
func resetFlashCategory(err error) string {
	if errors.Is(err, domain.ErrResetNotConfirmed) {
		return flash.Warning
	}
	return flash.Danger
}
