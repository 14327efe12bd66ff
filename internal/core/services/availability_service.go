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

// AvailabilityService manages the windows in which doctors accept bookings
type AvailabilityService struct {
	store *repositories.Store
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(store *repositories.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// DeclareInput represents a new availability window
type DeclareInput struct {
	Date      string `json:"date" form:"date"`
	StartTime string `json:"start_time" form:"start_time"`
	EndTime   string `json:"end_time" form:"end_time"`
}

// Declare adds an availability window to the calling doctor's schedule
func (s *AvailabilityService) Declare(ctx context.Context, p domain.Principal, input DeclareInput) (*models.Availability, error) {
	if err := domain.Authorize(p, domain.ActionManageAvailability, domain.Resource{DoctorUserID: p.UserID}); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(strings.TrimSpace(input.Date))
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseTimeOfDay(strings.TrimSpace(input.StartTime))
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseTimeOfDay(strings.TrimSpace(input.EndTime))
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, domain.ErrInvalidWindow
	}

	doctor, err := s.doctorFor(ctx, p)
	if err != nil {
		return nil, err
	}

	slot := &models.Availability{
		DoctorID:    doctor.ID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
	if err := s.store.Availability.Create(ctx, slot); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.ErrDuplicateSlot
		}
		return nil, domain.Persistence("create availability", err)
	}

	config.Log.Info("Availability declared",
		zap.Uint("doctor_id", doctor.ID),
		zap.String("date", date),
		zap.String("start", start),
		zap.String("end", end),
	)
	return slot, nil
}

// ListForDoctor lists a doctor's windows, optionally for one date
func (s *AvailabilityService) ListForDoctor(ctx context.Context, doctorID uint, date string) ([]*models.Availability, error) {
	if date != "" {
		d, err := domain.ParseDate(strings.TrimSpace(date))
		if err != nil {
			return nil, err
		}
		date = d
	}

	slots, err := s.store.Availability.ListForDoctor(ctx, doctorID, date)
	if err != nil {
		return nil, domain.Persistence("list availability", err)
	}
	return slots, nil
}

// ListOwn lists the calling doctor's windows
func (s *AvailabilityService) ListOwn(ctx context.Context, p domain.Principal, date string) ([]*models.Availability, error) {
	if err := domain.Authorize(p, domain.ActionManageAvailability, domain.Resource{DoctorUserID: p.UserID}); err != nil {
		return nil, err
	}
	doctor, err := s.doctorFor(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.ListForDoctor(ctx, doctor.ID, date)
}

// SetAvailable opens or closes a window owned by the calling doctor
func (s *AvailabilityService) SetAvailable(ctx context.Context, p domain.Principal, slotID uint, available bool) (*models.Availability, error) {
	slot, err := s.ownedSlot(ctx, p, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Availability.SetAvailable(ctx, slot.ID, available); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAvailabilityNotFound
		}
		return nil, domain.Persistence("update availability", err)
	}
	slot.IsAvailable = available
	return slot, nil
}

// Toggle flips a window between open and closed
func (s *AvailabilityService) Toggle(ctx context.Context, p domain.Principal, slotID uint) (*models.Availability, error) {
	slot, err := s.ownedSlot(ctx, p, slotID)
	if err != nil {
		return nil, err
	}
	return s.SetAvailable(ctx, p, slot.ID, !slot.IsAvailable)
}

func (s *AvailabilityService) ownedSlot(ctx context.Context, p domain.Principal, slotID uint) (*models.Availability, error) {
	if !domain.Allowed(p, domain.ActionManageAvailability) {
		return nil, domain.ErrAccessDenied
	}

	slot, err := s.store.Availability.GetByID(ctx, slotID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAvailabilityNotFound
		}
		return nil, domain.Persistence("load availability", err)
	}

	owner, err := s.store.Doctors.GetByID(ctx, slot.DoctorID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, domain.Persistence("load doctor", err)
	}
	if err := domain.Authorize(p, domain.ActionManageAvailability, domain.Resource{DoctorUserID: owner.UserID}); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *AvailabilityService) doctorFor(ctx context.Context, p domain.Principal) (*models.Doctor, error) {
	doctor, err := s.store.Doctors.GetByUserID(ctx, p.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, domain.Persistence("load doctor", err)
	}
	return doctor, nil
}
