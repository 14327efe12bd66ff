package handlers

import (
	"errors"
	"strings"

	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps a service error kind to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrSlotConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// errorMessage returns the user-facing text of a service error.
// Storage failures never leak their cause.
func errorMessage(err error) string {
	for _, kind := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrAccessDenied,
		domain.ErrSlotConflict,
	} {
		if errors.Is(err, kind) {
			msg := strings.TrimPrefix(err.Error(), kind.Error()+": ")
			if errors.Is(err, domain.ErrNotFound) && msg != err.Error() && !strings.Contains(msg, "found") {
				return capitalize(msg) + " not found"
			}
			return capitalize(msg)
		}
	}
	return "Something went wrong, please try again"
}

// respondError writes a JSON error envelope for a service error
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		config.Log.Error("Request failed",
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err),
		)
	}
	return response.Error(c, status, errorMessage(err))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// dashboardPath is the landing page of a role
func dashboardPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin/dashboard"
	case domain.RoleDoctor:
		return "/doctor/dashboard"
	case domain.RolePatient:
		return "/patient/dashboard"
	default:
		return "/"
	}
}
