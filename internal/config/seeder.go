package config

import (
	"context"
	"errors"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultDepartments is the department catalogue created on first start
var DefaultDepartments = []models.Department{
	{Name: "Cardiology", Description: "Heart and cardiovascular diseases"},
	{Name: "Neurology", Description: "Brain and nervous system disorders"},
	{Name: "Pediatrics", Description: "Child healthcare"},
	{Name: "Orthopedics", Description: "Bone and joint diseases"},
	{Name: "Dermatology", Description: "Skin diseases and treatments"},
	{Name: "General Medicine", Description: "General health issues and common diseases"},
}

// Seeder handles database seeding
type Seeder struct {
	clinic ClinicConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(clinic ClinicConfig) *Seeder {
	if clinic.AdminUsername == "" {
		clinic = loadClinicConfig()
	}
	return &Seeder{clinic: clinic}
}

// Run executes all seeders against db, which may be a transaction
func (s *Seeder) Run(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	SLog.Info("🌱 Running database seeders...")

	if err := s.seedAdminUser(db); err != nil {
		return err
	}
	if err := s.seedDepartments(db); err != nil {
		return err
	}

	SLog.Info("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the default administrator when none exists
func (s *Seeder) seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.clinic.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: s.clinic.AdminUsername,
		Email:    s.clinic.AdminEmail,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	Log.Info("Admin user created", zap.String("username", admin.Username))
	return nil
}

func (s *Seeder) seedDepartments(db *gorm.DB) error {
	for _, d := range DefaultDepartments {
		var existing models.Department
		err := db.Where("name = ?", d.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		dept := d
		if err := db.Create(&dept).Error; err != nil {
			return err
		}
		SLog.Infof("   Created department: %s", dept.Name)
	}
	return nil
}
