package services

import (
	"context"

	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job schedules
const (
	TokenPurgeSchedule = "@every 10m"
	ReminderSchedule   = "0 18 * * *" // daily at 18:00
)

// CronService runs the scheduled background jobs
type CronService struct {
	cron     *cron.Cron
	store    *repositories.Store
	resets   *ResetTokenStore
	notifier Notifier
	clock    Clock
}

// NewCronService creates a new cron service
func NewCronService(store *repositories.Store, resets *ResetTokenStore, notifier Notifier) *CronService {
	return &CronService{
		cron:     cron.New(),
		store:    store,
		resets:   resets,
		notifier: notifier,
	}
}

// SetClock replaces the time source
func (s *CronService) SetClock(clock Clock) {
	s.clock = clock
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(TokenPurgeSchedule, s.PurgeResetTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(ReminderSchedule, func() {
		if _, err := s.SendTomorrowReminders(context.Background()); err != nil {
			config.Log.Error("Reminder job failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	config.Log.Info("🚀 CronService started")
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	config.Log.Info("🛑 CronService stopped")
}

// PurgeResetTokens removes expired password reset tokens
func (s *CronService) PurgeResetTokens() {
	if n := s.resets.PurgeExpired(); n > 0 {
		config.Log.Info("Purged expired reset tokens", zap.Int("count", n))
	}
}

// SendTomorrowReminders notifies patients booked for tomorrow and returns
// how many reminders were sent
func (s *CronService) SendTomorrowReminders(ctx context.Context) (int, error) {
	tomorrow := s.clock.now().AddDate(0, 0, 1).Format(domain.DateLayout)

	appts, err := s.store.Appointments.ListBookedOnDate(ctx, tomorrow)
	if err != nil {
		return 0, domain.Persistence("list tomorrow's appointments", err)
	}

	sent := 0
	for _, appt := range appts {
		if err := s.notifier.SendAppointmentReminder(ctx, appt); err != nil {
			config.Log.Warn("Reminder not sent", zap.Uint("appointment_id", appt.ID), zap.Error(err))
			continue
		}
		sent++
	}

	if sent > 0 {
		config.Log.Info("Sent appointment reminders", zap.Int("count", sent), zap.String("date", tomorrow))
	}
	return sent, nil
}
