package services

import (
	"context"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/pagination"
)

const (
	recentAppointmentsLimit = 5
	doctorUpcomingDays      = 7
)

// DashboardService builds the per-role dashboard view models
type DashboardService struct {
	store *repositories.Store
	clock Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *repositories.Store) *DashboardService {
	return &DashboardService{store: store}
}

// SetClock replaces the time source
func (s *DashboardService) SetClock(clock Clock) {
	s.clock = clock
}

// AdminStats are the clinic-wide totals
type AdminStats struct {
	Doctors      int64 `json:"doctors"`
	Patients     int64 `json:"patients"`
	Appointments int64 `json:"appointments"`
	Departments  int64 `json:"departments"`
}

// TodayStats are the totals for the current day
type TodayStats struct {
	NewPatients           int64 `json:"new_patients"`
	TodaysAppointments    int64 `json:"todays_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
}

// AdminDashboard is the admin landing page
type AdminDashboard struct {
	Stats        AdminStats                    `json:"stats"`
	TodayStats   TodayStats                    `json:"today_stats"`
	Appointments []*models.AppointmentResponse `json:"appointments"`
}

// DoctorDashboard is the doctor landing page
type DoctorDashboard struct {
	Doctor               *models.Doctor                `json:"doctor"`
	TodaysAppointments   []*models.AppointmentResponse `json:"todays_appointments"`
	UpcomingAppointments []*models.AppointmentResponse `json:"upcoming_appointments"`
}

// PatientDashboard is the patient landing page
type PatientDashboard struct {
	Patient              *models.Patient               `json:"patient"`
	UpcomingAppointments []*models.AppointmentResponse `json:"upcoming_appointments"`
	PastAppointments     []*models.AppointmentResponse `json:"past_appointments"`
	Departments          []*models.Department          `json:"departments"`
}

// Admin returns clinic totals, today's totals and the latest bookings
func (s *DashboardService) Admin(ctx context.Context, p domain.Principal) (*AdminDashboard, error) {
	if err := domain.Authorize(p, domain.ActionViewAdminDashboard, domain.Resource{}); err != nil {
		return nil, err
	}

	var (
		d   AdminDashboard
		err error
	)
	if d.Stats.Doctors, err = s.store.Doctors.CountActive(ctx); err != nil {
		return nil, domain.Persistence("count doctors", err)
	}
	if d.Stats.Patients, err = s.store.Patients.CountActive(ctx); err != nil {
		return nil, domain.Persistence("count patients", err)
	}
	if d.Stats.Appointments, err = s.store.Appointments.Count(ctx); err != nil {
		return nil, domain.Persistence("count appointments", err)
	}
	if d.Stats.Departments, err = s.store.Departments.Count(ctx); err != nil {
		return nil, domain.Persistence("count departments", err)
	}

	now := s.clock.now()
	today := now.Format(domain.DateLayout)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if d.TodayStats.NewPatients, err = s.store.Patients.CountRegisteredSince(ctx, midnight); err != nil {
		return nil, domain.Persistence("count new patients", err)
	}
	if d.TodayStats.TodaysAppointments, err = s.store.Appointments.CountOnDate(ctx, today, ""); err != nil {
		return nil, domain.Persistence("count today's appointments", err)
	}
	if d.TodayStats.CompletedAppointments, err = s.store.Appointments.CountOnDate(ctx, today, string(domain.StatusCompleted)); err != nil {
		return nil, domain.Persistence("count completed appointments", err)
	}

	recent, err := s.store.Appointments.ListRecent(ctx, recentAppointmentsLimit)
	if err != nil {
		return nil, domain.Persistence("list recent appointments", err)
	}
	d.Appointments = models.ToResponses(recent)

	return &d, nil
}

// Doctor returns the calling doctor's schedule for today and the coming week
func (s *DashboardService) Doctor(ctx context.Context, p domain.Principal) (*DoctorDashboard, error) {
	if err := domain.Authorize(p, domain.ActionViewDoctorDashboard, domain.Resource{DoctorUserID: p.UserID}); err != nil {
		return nil, err
	}

	doctor, err := s.store.Doctors.GetByUserID(ctx, p.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, domain.Persistence("load doctor", err)
	}

	now := s.clock.now()
	today := now.Format(domain.DateLayout)
	nextWeek := now.AddDate(0, 0, doctorUpcomingDays).Format(domain.DateLayout)

	todays, err := s.store.Appointments.ListForDoctorOnDate(ctx, doctor.ID, today)
	if err != nil {
		return nil, domain.Persistence("list today's appointments", err)
	}
	upcoming, err := s.store.Appointments.ListBookedForDoctorBetween(ctx, doctor.ID, today, nextWeek)
	if err != nil {
		return nil, domain.Persistence("list upcoming appointments", err)
	}

	return &DoctorDashboard{
		Doctor:               doctor,
		TodaysAppointments:   models.ToResponses(todays),
		UpcomingAppointments: models.ToResponses(upcoming),
	}, nil
}

// Patient returns the calling patient's booked and past appointments
func (s *DashboardService) Patient(ctx context.Context, p domain.Principal) (*PatientDashboard, error) {
	if err := domain.Authorize(p, domain.ActionViewPatientDashboard, domain.Resource{PatientUserID: p.UserID}); err != nil {
		return nil, err
	}

	patient, err := s.store.Patients.GetByUserID(ctx, p.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, domain.Persistence("load patient", err)
	}

	upcoming, err := s.store.Appointments.ListForPatient(ctx, patient.ID,
		[]string{string(domain.StatusBooked)}, false)
	if err != nil {
		return nil, domain.Persistence("list upcoming appointments", err)
	}
	past, err := s.store.Appointments.ListForPatient(ctx, patient.ID,
		[]string{string(domain.StatusCompleted), string(domain.StatusCancelled)}, true)
	if err != nil {
		return nil, domain.Persistence("list past appointments", err)
	}
	depts, err := s.store.Departments.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list departments", err)
	}

	return &PatientDashboard{
		Patient:              patient,
		UpcomingAppointments: models.ToResponses(upcoming),
		PastAppointments:     models.ToResponses(past),
		Departments:          depts,
	}, nil
}

// AppointmentLog returns one page of every appointment for admins
func (s *DashboardService) AppointmentLog(ctx context.Context, p domain.Principal, params *pagination.Params) (*pagination.Response, error) {
	if err := domain.Authorize(p, domain.ActionViewAppointmentLog, domain.Resource{}); err != nil {
		return nil, err
	}

	list, total, err := s.store.Appointments.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, domain.Persistence("list appointments", err)
	}
	return pagination.NewResponse(models.ToResponses(list), params, total), nil
}
