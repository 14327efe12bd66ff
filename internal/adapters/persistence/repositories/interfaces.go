package repositories

import (
	"context"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// DepartmentRepository defines department repository interface
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)
	Count(ctx context.Context) (int64, error)
}

// DoctorSearch filters active doctors
type DoctorSearch struct {
	Specialization string
	Date           string // YYYY-MM-DD, empty for any date
}

// DoctorRepository defines doctor profile repository interface
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error)
	List(ctx context.Context) ([]*models.Doctor, error)
	Search(ctx context.Context, filter DoctorSearch) ([]*models.Doctor, error)
	SetActive(ctx context.Context, id uint, active bool) error
	ExistsByLicense(ctx context.Context, license string) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

// PatientRepository defines patient profile repository interface
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Patient, error)
	CountActive(ctx context.Context) (int64, error)
	CountRegisteredSince(ctx context.Context, since time.Time) (int64, error)
}

// AvailabilityRepository defines the availability ledger interface
type AvailabilityRepository interface {
	Create(ctx context.Context, slot *models.Availability) error
	GetByID(ctx context.Context, id uint) (*models.Availability, error)
	ListForDoctor(ctx context.Context, doctorID uint, date string) ([]*models.Availability, error)
	SetAvailable(ctx context.Context, id uint, available bool) error
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	ExistsBooked(ctx context.Context, doctorID uint, date, timeOfDay string) (bool, error)
	Transition(ctx context.Context, id uint, from, to string) (bool, error)
	ListForDoctorOnDate(ctx context.Context, doctorID uint, date string) ([]*models.Appointment, error)
	ListBookedForDoctorBetween(ctx context.Context, doctorID uint, from, to string) ([]*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID uint, statuses []string, newestFirst bool) ([]*models.Appointment, error)
	ListBookedOnDate(ctx context.Context, date string) ([]*models.Appointment, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Appointment, error)
	List(ctx context.Context, offset, limit int) ([]*models.Appointment, int64, error)
	Count(ctx context.Context) (int64, error)
	CountOnDate(ctx context.Context, date, status string) (int64, error)
	CountBookedForSlot(ctx context.Context, doctorID uint, date, timeOfDay string) (int64, error)
}

// TreatmentRepository defines treatment repository interface
type TreatmentRepository interface {
	Create(ctx context.Context, treatment *models.Treatment) error
	GetByAppointmentID(ctx context.Context, appointmentID uint) (*models.Treatment, error)
	CountByAppointmentID(ctx context.Context, appointmentID uint) (int64, error)
}
