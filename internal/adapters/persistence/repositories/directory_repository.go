package repositories

import (
	"context"
	"strings"
	"time"

	"clinicdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Departments
// ============================================================

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	var depts []*models.Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&depts).Error
	return depts, err
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Count(&count).Error
	return count, err
}

// ============================================================
// Doctors
// ============================================================

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) withProfile(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Department")
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.withProfile(ctx).Where("id = ?", id).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.withProfile(ctx).Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*models.Doctor, error) {
	var doctors []*models.Doctor
	err := r.withProfile(ctx).Order("id ASC").Find(&doctors).Error
	return doctors, err
}

// Search returns active doctors matching the filter, ordered by id
func (r *doctorRepository) Search(ctx context.Context, filter DoctorSearch) ([]*models.Doctor, error) {
	query := r.withProfile(ctx).Where("doctors.is_active = ?", true)

	if filter.Specialization != "" {
		query = query.Where("LOWER(doctors.specialization) LIKE ?", "%"+strings.ToLower(filter.Specialization)+"%")
	}

	if filter.Date != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM doctor_availability da WHERE da.doctor_id = doctors.id AND da.date = ? AND da.is_available = ?)",
			filter.Date, true,
		)
	}

	var doctors []*models.Doctor
	err := query.Order("doctors.id ASC").Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return updateColumn(ctx, r.db, &models.Doctor{}, id, "is_active", active)
}

func (r *doctorRepository) ExistsByLicense(ctx context.Context, license string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("license_number = ?", license).Count(&count).Error
	return count > 0, err
}

func (r *doctorRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ============================================================
// Patients
// ============================================================

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountRegisteredSince counts patients whose account was created at or after since
func (r *patientRepository) CountRegisteredSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Joins("JOIN users ON users.id = patients.user_id").
		Where("users.created_at >= ?", since).
		Count(&count).Error
	return count, err
}
