package handlers

import (
	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler handles doctor search and the department list
type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// SearchDoctors finds active doctors
// @Summary Search doctors
// @Description Active doctors filtered by specialization substring and, when a valid date is given, an open availability window on that date
// @Tags Directory
// @Produce json
// @Param specialization query string false "Specialization contains"
// @Param date query string false "Available on (YYYY-MM-DD)"
// @Success 200 {array} models.DoctorSummary
// @Failure 401 {object} response.Response
// @Router /search_doctors [get]
func (h *DirectoryHandler) SearchDoctors(c *fiber.Ctx) error {
	var filter services.SearchFilter
	if err := c.QueryParser(&filter); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	p, _ := middleware.Principal(c)
	doctors, err := h.directoryService.SearchDoctors(c.UserContext(), p, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doctors)
}

// Departments lists all departments
// @Summary List departments
// @Tags Directory
// @Produce json
// @Success 200 {array} models.Department
// @Router /departments [get]
func (h *DirectoryHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.directoryService.ListDepartments(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(departments)
}
