package services

import (
	"context"
	"strings"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetConfirmCode must be typed to confirm a database reset
const ResetConfirmCode = "RESET"

// MaintenanceService runs destructive administrative operations
type MaintenanceService struct {
	db     *gorm.DB
	seeder *config.Seeder
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(db *gorm.DB, seeder *config.Seeder) *MaintenanceService {
	return &MaintenanceService{db: db, seeder: seeder}
}

// ResetDatabase drops every table, recreates the schema and reseeds the
// default admin and departments. Nothing changes unless confirmCode is RESET.
func (s *MaintenanceService) ResetDatabase(ctx context.Context, p domain.Principal, confirmCode string) error {
	if err := domain.Authorize(p, domain.ActionResetDatabase, domain.Resource{}); err != nil {
		return err
	}
	if strings.TrimSpace(confirmCode) != ResetConfirmCode {
		return domain.ErrResetNotConfirmed
	}

	config.Log.Warn("Database reset requested", zap.String("by", p.Username))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := models.DropAll(tx); err != nil {
			return err
		}
		if err := models.AutoMigrate(tx); err != nil {
			return err
		}
		return s.seeder.Run(ctx, tx)
	})
	if err != nil {
		config.Log.Error("Database reset failed", zap.Error(err))
		return domain.Persistence("reset database", err)
	}

	config.Log.Info("Database reset completed", zap.String("by", p.Username))
	return nil
}
