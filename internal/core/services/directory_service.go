package services

import (
	"context"
	"fmt"
	"strings"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/password"

	"go.uber.org/zap"
)

// DirectoryService manages departments and doctor profiles
type DirectoryService struct {
	store *repositories.Store
	cfg   *config.Config
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(store *repositories.Store, cfg *config.Config) *DirectoryService {
	return &DirectoryService{store: store, cfg: cfg}
}

// SearchFilter narrows a doctor search
type SearchFilter struct {
	Specialization string `query:"specialization"`
	Date           string `query:"date"`
}

// AddDoctorInput represents the admin "add doctor" form
type AddDoctorInput struct {
	Username        string
	Email           string
	Specialization  string
	DepartmentID    uint
	LicenseNumber   string
	Experience      *int
	ConsultationFee float64
}

// SearchDoctors lists active doctors matching the filter
func (s *DirectoryService) SearchDoctors(ctx context.Context, p domain.Principal, filter SearchFilter) ([]models.DoctorSummary, error) {
	if err := domain.Authorize(p, domain.ActionSearchDoctors, domain.Resource{}); err != nil {
		return nil, err
	}

	search := repositories.DoctorSearch{Specialization: strings.TrimSpace(filter.Specialization)}
	// an unparsable date filter is ignored
	if d, err := domain.ParseDate(strings.TrimSpace(filter.Date)); err == nil {
		search.Date = d
	}

	doctors, err := s.store.Doctors.Search(ctx, search)
	if err != nil {
		return nil, domain.Persistence("search doctors", err)
	}

	results := make([]models.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		results = append(results, d.ToSummary())
	}
	return results, nil
}

// AddDoctor creates a doctor account with the default password
func (s *DirectoryService) AddDoctor(ctx context.Context, p domain.Principal, input AddDoctorInput) (*models.Doctor, error) {
	if err := domain.Authorize(p, domain.ActionManageDoctors, domain.Resource{}); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	specialization := strings.TrimSpace(input.Specialization)
	if username == "" || email == "" || specialization == "" || input.DepartmentID == 0 {
		return nil, fmt.Errorf("%w: username, email, specialization and department are required", domain.ErrValidation)
	}
	if input.Experience != nil && *input.Experience < 0 {
		return nil, fmt.Errorf("%w: experience cannot be negative", domain.ErrValidation)
	}
	if input.ConsultationFee < 0 {
		return nil, fmt.Errorf("%w: consultation fee cannot be negative", domain.ErrValidation)
	}

	// an empty license number is stored as NULL so it never collides
	var license *string
	if l := strings.TrimSpace(input.LicenseNumber); l != "" {
		license = &l
	}

	hashedPassword, err := password.Hash(s.cfg.Clinic.DefaultDoctorPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var doctor *models.Doctor
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Departments.GetByID(ctx, input.DepartmentID); err != nil {
			if repositories.IsNotFound(err) {
				return domain.ErrDepartmentNotFound
			}
			return domain.Persistence("load department", err)
		}
		if err := ensureIdentityFree(ctx, tx, username, email); err != nil {
			return err
		}
		if license != nil {
			taken, err := tx.Doctors.ExistsByLicense(ctx, *license)
			if err != nil {
				return domain.Persistence("check license", err)
			}
			if taken {
				return domain.ErrLicenseTaken
			}
		}

		user := &models.User{
			Username: username,
			Email:    email,
			Password: hashedPassword,
			Role:     string(domain.RoleDoctor),
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return identityCreateError(err)
		}

		doctor = &models.Doctor{
			UserID:          user.ID,
			DepartmentID:    input.DepartmentID,
			Specialization:  specialization,
			LicenseNumber:   license,
			Experience:      input.Experience,
			ConsultationFee: input.ConsultationFee,
			IsActive:        true,
		}
		if err := tx.Doctors.Create(ctx, doctor); err != nil {
			if repositories.IsDuplicateKey(err) {
				return domain.ErrLicenseTaken
			}
			return domain.Persistence("create doctor", err)
		}
		doctor.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("Doctor added",
		zap.Uint("doctor_id", doctor.ID),
		zap.String("username", username),
		zap.String("added_by", p.Username),
	)
	return doctor, nil
}

// ListDoctors lists every doctor profile for administration
func (s *DirectoryService) ListDoctors(ctx context.Context, p domain.Principal) ([]*models.Doctor, error) {
	if err := domain.Authorize(p, domain.ActionManageDoctors, domain.Resource{}); err != nil {
		return nil, err
	}
	doctors, err := s.store.Doctors.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list doctors", err)
	}
	return doctors, nil
}

// ListDepartments lists all departments
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	depts, err := s.store.Departments.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list departments", err)
	}
	return depts, nil
}

// SetDoctorActive switches whether a doctor accepts bookings
func (s *DirectoryService) SetDoctorActive(ctx context.Context, p domain.Principal, doctorID uint, active bool) error {
	if err := domain.Authorize(p, domain.ActionManageDoctors, domain.Resource{}); err != nil {
		return err
	}
	if err := s.store.Doctors.SetActive(ctx, doctorID, active); err != nil {
		if repositories.IsNotFound(err) {
			return domain.ErrDoctorNotFound
		}
		return domain.Persistence("update doctor", err)
	}

	config.Log.Info("Doctor status changed", zap.Uint("doctor_id", doctorID), zap.Bool("active", active))
	return nil
}
