package repositories

import (
	"context"

	"clinicdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Availability
// ============================================================

type availabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Create(ctx context.Context, slot *models.Availability) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *availabilityRepository) GetByID(ctx context.Context, id uint) (*models.Availability, error) {
	var slot models.Availability
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListForDoctor returns a doctor's windows; an empty date lists every date
func (r *availabilityRepository) ListForDoctor(ctx context.Context, doctorID uint, date string) ([]*models.Availability, error) {
	query := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if date != "" {
		query = query.Where("date = ?", date)
	}

	var slots []*models.Availability
	err := query.Order("date ASC, start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *availabilityRepository) SetAvailable(ctx context.Context, id uint, available bool) error {
	return updateColumn(ctx, r.db, &models.Availability{}, id, "is_available", available)
}

// ============================================================
// Appointments
// ============================================================

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Preload("Treatment")
}

func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.withRelations(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// ExistsBooked reports whether the slot is held by a Booked appointment
func (r *appointmentRepository) ExistsBooked(ctx context.Context, doctorID uint, date, timeOfDay string) (bool, error) {
	count, err := r.CountBookedForSlot(ctx, doctorID, date, timeOfDay)
	return count > 0, err
}

// Transition moves an appointment from one status to another and releases
// its slot. It reports false when the appointment was not in the from status.
func (r *appointmentRepository) Transition(ctx context.Context, id uint, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":      to,
			"active_slot": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *appointmentRepository) ListForDoctorOnDate(ctx context.Context, doctorID uint, date string) ([]*models.Appointment, error) {
	var list []*models.Appointment
	err := r.withRelations(ctx).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date).
		Order("appointment_time ASC").
		Find(&list).Error
	return list, err
}

// ListBookedForDoctorBetween lists Booked appointments dated from..to inclusive
func (r *appointmentRepository) ListBookedForDoctorBetween(ctx context.Context, doctorID uint, from, to string) ([]*models.Appointment, error) {
	var list []*models.Appointment
	err := r.withRelations(ctx).
		Where("doctor_id = ? AND status = ?", doctorID, "Booked").
		Where("appointment_date >= ? AND appointment_date <= ?", from, to).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&list).Error
	return list, err
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uint, statuses []string, newestFirst bool) ([]*models.Appointment, error) {
	query := r.withRelations(ctx).Where("patient_id = ?", patientID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if newestFirst {
		query = query.Order("appointment_date DESC, appointment_time DESC")
	} else {
		query = query.Order("appointment_date ASC, appointment_time ASC")
	}

	var list []*models.Appointment
	err := query.Find(&list).Error
	return list, err
}

func (r *appointmentRepository) ListBookedOnDate(ctx context.Context, date string) ([]*models.Appointment, error) {
	var list []*models.Appointment
	err := r.withRelations(ctx).
		Where("appointment_date = ? AND status = ?", date, "Booked").
		Order("appointment_time ASC").
		Find(&list).Error
	return list, err
}

func (r *appointmentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Appointment, error) {
	var list []*models.Appointment
	err := r.withRelations(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// List returns one page of appointments, newest first, with the total count
func (r *appointmentRepository) List(ctx context.Context, offset, limit int) ([]*models.Appointment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []*models.Appointment
	err := r.withRelations(ctx).
		Order("appointment_date DESC, appointment_time DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

// CountOnDate counts appointments on a date; an empty status counts all
func (r *appointmentRepository) CountOnDate(ctx context.Context, date, status string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("appointment_date = ?", date)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountBookedForSlot(ctx context.Context, doctorID uint, date, timeOfDay string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			doctorID, date, timeOfDay, "Booked").
		Count(&count).Error
	return count, err
}

// ============================================================
// Treatments
// ============================================================

type treatmentRepository struct {
	db *gorm.DB
}

// NewTreatmentRepository creates a new treatment repository
func NewTreatmentRepository(db *gorm.DB) TreatmentRepository {
	return &treatmentRepository{db: db}
}

func (r *treatmentRepository) Create(ctx context.Context, treatment *models.Treatment) error {
	return r.db.WithContext(ctx).Create(treatment).Error
}

func (r *treatmentRepository) GetByAppointmentID(ctx context.Context, appointmentID uint) (*models.Treatment, error) {
	var treatment models.Treatment
	if err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&treatment).Error; err != nil {
		return nil, err
	}
	return &treatment, nil
}

func (r *treatmentRepository) CountByAppointmentID(ctx context.Context, appointmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Treatment{}).Where("appointment_id = ?", appointmentID).Count(&count).Error
	return count, err
}
