package services

import (
	"context"
	"strings"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"

	"go.uber.org/zap"
)

// BookingService books appointments and moves them through their lifecycle
type BookingService struct {
	store *repositories.Store
	clock Clock
}

// NewBookingService creates a new booking service
func NewBookingService(store *repositories.Store) *BookingService {
	return &BookingService{store: store}
}

// SetClock replaces the time source
func (s *BookingService) SetClock(clock Clock) {
	s.clock = clock
}

// BookInput represents a booking request
type BookInput struct {
	DoctorID uint   `json:"doctor_id" form:"doctor_id"`
	Date     string `json:"date" form:"date"`
	Time     string `json:"time" form:"time"`
	Symptoms string `json:"symptoms" form:"symptoms"`
}

// CompleteInput represents the treatment recorded on completion
type CompleteInput struct {
	Diagnosis    string `json:"diagnosis" form:"diagnosis"`
	Prescription string `json:"prescription" form:"prescription"`
	Notes        string `json:"notes" form:"notes"`
}

// Book reserves a (doctor, date, time) slot for the calling patient.
// The conflict check and insert share one transaction and the active_slot
// unique index rejects a concurrent duplicate.
func (s *BookingService) Book(ctx context.Context, p domain.Principal, input BookInput) (*models.Appointment, error) {
	if err := domain.Authorize(p, domain.ActionBookAppointment, domain.Resource{PatientUserID: p.UserID}); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(strings.TrimSpace(input.Date))
	if err != nil {
		return nil, err
	}
	timeOfDay, err := domain.ParseTimeOfDay(strings.TrimSpace(input.Time))
	if err != nil {
		return nil, err
	}

	var appt *models.Appointment
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		patient, err := tx.Patients.GetByUserID(ctx, p.UserID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return domain.ErrPatientNotFound
			}
			return domain.Persistence("load patient", err)
		}
		if !patient.IsActive {
			return domain.ErrPatientInactive
		}

		doctor, err := tx.Doctors.GetByID(ctx, input.DoctorID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return domain.ErrDoctorNotFound
			}
			return domain.Persistence("load doctor", err)
		}
		if !doctor.IsActive {
			return domain.ErrDoctorInactive
		}

		booked, err := tx.Appointments.ExistsBooked(ctx, doctor.ID, date, timeOfDay)
		if err != nil {
			return domain.Persistence("check slot", err)
		}
		if booked {
			return domain.ErrSlotConflict
		}

		slot := domain.SlotKey(doctor.ID, date, timeOfDay)
		appt = &models.Appointment{
			PatientID:       patient.ID,
			DoctorID:        doctor.ID,
			AppointmentDate: date,
			AppointmentTime: timeOfDay,
			Status:          string(domain.StatusBooked),
			Symptoms:        strings.TrimSpace(input.Symptoms),
			ActiveSlot:      &slot,
			CreatedAt:       s.clock.now(),
		}
		if err := tx.Appointments.Create(ctx, appt); err != nil {
			if repositories.IsDuplicateKey(err) {
				return domain.ErrSlotConflict
			}
			return domain.Persistence("create appointment", err)
		}
		appt.Patient = patient
		appt.Doctor = doctor
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("Appointment booked",
		zap.Uint("appointment_id", appt.ID),
		zap.Uint("doctor_id", appt.DoctorID),
		zap.Uint("patient_id", appt.PatientID),
		zap.String("date", appt.AppointmentDate),
		zap.String("time", appt.AppointmentTime),
	)
	return appt, nil
}

// Cancel moves a Booked appointment to Cancelled.
// The owning patient, the assigned doctor and admins may cancel.
func (s *BookingService) Cancel(ctx context.Context, p domain.Principal, appointmentID uint) (*models.Appointment, error) {
	var appt *models.Appointment
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		appt, err = loadAppointment(ctx, tx, appointmentID)
		if err != nil {
			return err
		}
		if err := domain.Authorize(p, domain.ActionCancelAppointment, ownersOf(appt)); err != nil {
			return err
		}

		moved, err := tx.Appointments.Transition(ctx, appt.ID, string(domain.StatusBooked), string(domain.StatusCancelled))
		if err != nil {
			return domain.Persistence("cancel appointment", err)
		}
		if !moved {
			return domain.ErrInvalidTransition
		}
		appt.Status = string(domain.StatusCancelled)
		appt.ActiveSlot = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("Appointment cancelled",
		zap.Uint("appointment_id", appt.ID),
		zap.String("by", p.Username),
		zap.String("role", string(p.Role)),
	)
	return appt, nil
}

// Complete moves a Booked appointment to Completed and records its treatment.
// Only the assigned doctor may complete.
func (s *BookingService) Complete(ctx context.Context, p domain.Principal, appointmentID uint, input CompleteInput) (*models.Treatment, error) {
	diagnosis := strings.TrimSpace(input.Diagnosis)
	prescription := strings.TrimSpace(input.Prescription)

	var treatment *models.Treatment
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		appt, err := loadAppointment(ctx, tx, appointmentID)
		if err != nil {
			return err
		}
		if err := domain.Authorize(p, domain.ActionCompleteAppointment, ownersOf(appt)); err != nil {
			return err
		}
		if domain.AppointmentStatus(appt.Status).IsTerminal() {
			return domain.ErrInvalidTransition
		}
		if diagnosis == "" || prescription == "" {
			return domain.ErrTreatmentIncomplete
		}

		moved, err := tx.Appointments.Transition(ctx, appt.ID, string(domain.StatusBooked), string(domain.StatusCompleted))
		if err != nil {
			return domain.Persistence("complete appointment", err)
		}
		if !moved {
			return domain.ErrInvalidTransition
		}

		treatment = &models.Treatment{
			AppointmentID: appt.ID,
			Diagnosis:     diagnosis,
			Prescription:  prescription,
			Notes:         strings.TrimSpace(input.Notes),
			TreatmentDate: s.clock.now(),
		}
		if err := tx.Treatments.Create(ctx, treatment); err != nil {
			if repositories.IsDuplicateKey(err) {
				return domain.ErrInvalidTransition
			}
			return domain.Persistence("create treatment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("Appointment completed",
		zap.Uint("appointment_id", appointmentID),
		zap.String("doctor", p.Username),
	)
	return treatment, nil
}

func loadAppointment(ctx context.Context, tx *repositories.Store, id uint) (*models.Appointment, error) {
	appt, err := tx.Appointments.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, domain.Persistence("load appointment", err)
	}
	return appt, nil
}

// ownersOf returns the users that own an appointment for policy checks
func ownersOf(appt *models.Appointment) domain.Resource {
	var r domain.Resource
	if appt.Patient != nil {
		r.PatientUserID = appt.Patient.UserID
	}
	if appt.Doctor != nil {
		r.DoctorUserID = appt.Doctor.UserID
	}
	return r
}
