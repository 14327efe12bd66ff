package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Store groups the repositories that share one *gorm.DB
type Store struct {
	db *gorm.DB

	Users        UserRepository
	Departments  DepartmentRepository
	Doctors      DoctorRepository
	Patients     PatientRepository
	Availability AvailabilityRepository
	Appointments AppointmentRepository
	Treatments   TreatmentRepository
}

// NewStore creates repositories bound to db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Users:        NewUserRepository(db),
		Departments:  NewDepartmentRepository(db),
		Doctors:      NewDoctorRepository(db),
		Patients:     NewPatientRepository(db),
		Availability: NewAvailabilityRepository(db),
		Appointments: NewAppointmentRepository(db),
		Treatments:   NewTreatmentRepository(db),
	}
}

// DB returns the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// IsNotFound reports whether err means no matching row
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique constraint violation
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}

// updateColumn sets one column on the row with the given id.
// It returns gorm.ErrRecordNotFound when no such row exists.
func updateColumn(ctx context.Context, db *gorm.DB, model interface{}, id uint, column string, value interface{}) error {
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the value is unchanged
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
