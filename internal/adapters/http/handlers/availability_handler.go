package handlers

import (
	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AvailabilityHandler handles a doctor's own availability windows
type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availabilityService *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
	}
}

// List returns the calling doctor's windows
// @Summary List availability
// @Tags Doctor
// @Produce json
// @Param date query string false "Only this date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /doctor/availability [get]
func (h *AvailabilityHandler) List(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)

	slots, err := h.availabilityService.ListOwn(c.UserContext(), p, c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Availability retrieved successfully", slots)
}

// Declare adds a window to the calling doctor's schedule
// @Summary Declare availability
// @Tags Doctor
// @Accept x-www-form-urlencoded
// @Produce json
// @Param date formData string true "Date (YYYY-MM-DD)"
// @Param start_time formData string true "Start (HH:MM)"
// @Param end_time formData string true "End (HH:MM)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/availability [post]
func (h *AvailabilityHandler) Declare(c *fiber.Ctx) error {
	var input services.DeclareInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	p, _ := middleware.Principal(c)
	slot, err := h.availabilityService.Declare(c.UserContext(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Availability added", slot)
}

// Toggle opens or closes a window
// @Summary Toggle availability
// @Tags Doctor
// @Produce json
// @Param id path int true "Availability ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/availability/{id}/toggle [post]
func (h *AvailabilityHandler) Toggle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid availability ID")
	}

	p, _ := middleware.Principal(c)
	slot, err := h.availabilityService.Toggle(c.UserContext(), p, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Availability updated", slot)
}
