package services

import (
	"context"

	"clinicdesk/internal/adapters/persistence/models"

	"go.uber.org/zap"
)

// NotificationService delivers clinic notifications.
// Email delivery is not configured, so messages go to the log.
type NotificationService struct {
	log *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(log *zap.Logger) *NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationService{log: log.Named("notify")}
}

// SendPasswordReset sends the reset link to email
func (s *NotificationService) SendPasswordReset(ctx context.Context, email, resetLink string) error {
	s.log.Info("Password reset link issued",
		zap.String("email", email),
		zap.String("link", resetLink),
	)
	return nil
}

// SendAppointmentReminder reminds the patient of an upcoming appointment
func (s *NotificationService) SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	resp := appt.ToResponse()
	s.log.Info("Appointment reminder",
		zap.Uint("appointment_id", resp.ID),
		zap.String("patient", resp.PatientName),
		zap.String("doctor", resp.DoctorName),
		zap.String("date", resp.AppointmentDate),
		zap.String("time", resp.AppointmentTime),
	)
	return nil
}
