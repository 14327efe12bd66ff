package handlers

import (
	"errors"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/flash"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the role dashboards
type DashboardHandler struct {
	dashboardService *services.DashboardService
	flashes          *flash.Store
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, flashes *flash.Store) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		flashes:          flashes,
	}
}

// AdminDashboard returns admin dashboard data
// @Summary Admin Dashboard
// @Description Clinic totals, today's figures and the latest appointments (Admin only)
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Page
// @Success 302
// @Router /admin/dashboard [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	data, err := h.dashboardService.Admin(c.UserContext(), p)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Render(c, "admin/dashboard", h.flashes.Pop(c), data)
}

// DoctorDashboard returns doctor dashboard data
// @Summary Doctor Dashboard
// @Description Today's appointments and the coming week (Doctor only)
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Page
// @Success 302
// @Router /doctor/dashboard [get]
func (h *DashboardHandler) DoctorDashboard(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	data, err := h.dashboardService.Doctor(c.UserContext(), p)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Render(c, "doctor/dashboard", h.flashes.Pop(c), data)
}

// PatientDashboard returns patient dashboard data
// @Summary Patient Dashboard
// @Description Upcoming and past appointments plus departments (Patient only)
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Page
// @Success 302
// @Router /patient/dashboard [get]
func (h *DashboardHandler) PatientDashboard(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	data, err := h.dashboardService.Patient(c.UserContext(), p)
	if err != nil {
		return h.fail(c, err)
	}
	return response.Render(c, "patient/dashboard", h.flashes.Pop(c), data)
}

// a signed-in user without a profile is logged out
func (h *DashboardHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		_ = h.flashes.Add(c, flash.Danger, errorMessage(err))
		return c.Redirect("/logout", fiber.StatusFound)
	}
	return respondError(c, err)
}
