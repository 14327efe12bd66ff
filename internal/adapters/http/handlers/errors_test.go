package handlers

import (
	"errors"
	"testing"

	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
)

func TestStatusAndMessageForServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrSlotConflict, fiber.StatusConflict, "Slot already booked"},
		{domain.ErrAccessDenied, fiber.StatusForbidden, "Access denied"},
		{domain.ErrDoctorNotFound, fiber.StatusNotFound, "Doctor not found"},
		{domain.ErrAvailabilityNotFound, fiber.StatusNotFound, "Availability slot not found"},
		{domain.ErrEmailNotFound, fiber.StatusNotFound, "No account found with that email address"},
		{domain.ErrUsernameTaken, fiber.StatusBadRequest, "Username already exists"},
		{domain.ErrResetNotConfirmed, fiber.StatusBadRequest, "Reset cancelled, type RESET to confirm"},
		{domain.Persistence("create appointment", errors.New("disk full")), fiber.StatusInternalServerError, "Something went wrong, please try again"},
	}

	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, got)
		}
		if got := errorMessage(tc.err); got != tc.msg {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.msg, got)
		}
	}
}

func TestDashboardPath(t *testing.T) {
	if dashboardPath(domain.RoleDoctor) != "/doctor/dashboard" || dashboardPath(domain.Role("nurse")) != "/" {
		t.Fatalf("unexpected dashboard paths")
	}
}

func TestResetFlashCategory(t *testing.T) {
	if got := resetFlashCategory(domain.ErrResetNotConfirmed); got != flash.Warning {
		t.Fatalf("expected warning for unconfirmed reset, got %q", got)
	}
	if got := resetFlashCategory(domain.Persistence("drop tables", errors.New("locked"))); got != flash.Danger {
		t.Fatalf("expected danger for a failed reset, got %q", got)
	}
}
