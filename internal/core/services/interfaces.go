package services

import (
	"context"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
)

// Notifier delivers messages to clinic users
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, resetLink string) error
	SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
