package handlers

import (
	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/flash"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles booking, cancelling and completing appointments
type AppointmentHandler struct {
	bookingService *services.BookingService
	flashes        *flash.Store
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(bookingService *services.BookingService, flashes *flash.Store) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService: bookingService,
		flashes:        flashes,
	}
}

// Book reserves a slot for the calling patient
// @Summary Book appointment
// @Tags Appointments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param doctor_id formData int true "Doctor ID"
// @Param date formData string true "Date (YYYY-MM-DD)"
// @Param time formData string true "Time (HH:MM)"
// @Param symptoms formData string false "Symptoms"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /book_appointment [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var input services.BookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	p, _ := middleware.Principal(c)
	appt, err := h.bookingService.Book(c.UserContext(), p, input)
	if err != nil {
		return respondError(c, err)
	}

	_ = h.flashes.Add(c, flash.Success, "Appointment booked successfully!")
	return response.Created(c, "Appointment booked successfully!", appt.ToResponse())
}

// Cancel cancels a booked appointment
// @Summary Cancel appointment
// @Tags Appointments
// @Param id path int true "Appointment ID"
// @Success 302
// @Router /cancel_appointment/{id} [post]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	p, _ := middleware.Principal(c)
	back := dashboardPath(p.Role)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = h.flashes.Add(c, flash.Danger, "Invalid appointment ID")
		return c.Redirect(back, fiber.StatusFound)
	}

	if _, err := h.bookingService.Cancel(c.UserContext(), p, uint(id)); err != nil {
		_ = h.flashes.Add(c, flash.Danger, cancelMessage(p.Role, err))
		return c.Redirect(back, fiber.StatusFound)
	}

	_ = h.flashes.Add(c, flash.Success, "Appointment cancelled successfully!")
	return c.Redirect(back, fiber.StatusFound)
}

// Complete records a treatment and completes the appointment
// @Summary Complete appointment
// @Tags Appointments
// @Accept x-www-form-urlencoded
// @Param id path int true "Appointment ID"
// @Param diagnosis formData string true "Diagnosis"
// @Param prescription formData string true "Prescription"
// @Param notes formData string false "Notes"
// @Success 302
// @Router /complete_appointment/{id} [post]
func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	const back = "/doctor/dashboard"

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = h.flashes.Add(c, flash.Danger, "Invalid appointment ID")
		return c.Redirect(back, fiber.StatusFound)
	}

	var input services.CompleteInput
	if err := c.BodyParser(&input); err != nil {
		_ = h.flashes.Add(c, flash.Danger, "Invalid request body")
		return c.Redirect(back, fiber.StatusFound)
	}

	p, _ := middleware.Principal(c)
	if _, err := h.bookingService.Complete(c.UserContext(), p, uint(id), input); err != nil {
		msg := errorMessage(err)
		if statusFor(err) == fiber.StatusForbidden {
			msg = "You can only complete appointments assigned to you"
		}
		_ = h.flashes.Add(c, flash.Danger, msg)
		return c.Redirect(back, fiber.StatusFound)
	}

	_ = h.flashes.Add(c, flash.Success, "Appointment marked as completed! Treatment details saved.")
	return c.Redirect(back, fiber.StatusFound)
}

func cancelMessage(role domain.Role, err error) string {
	if statusFor(err) != fiber.StatusForbidden {
		return errorMessage(err)
	}
	switch role {
	case domain.RolePatient:
		return "You can only cancel your own appointments"
	case domain.RoleDoctor:
		return "You can only cancel appointments assigned to you"
	default:
		return errorMessage(err)
	}
}
