package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/pagination"
)

func TestDashboards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Now()
	env.dashboard.SetClock(fixedClock(now))
	today := now.Format(domain.DateLayout)
	in3Days := now.AddDate(0, 0, 3).Format(domain.DateLayout)
	in30Days := now.AddDate(0, 0, 30).Format(domain.DateLayout)
	lastWeek := now.AddDate(0, 0, -7).Format(domain.DateLayout)

	doctor, drPrincipal := env.addDoctor(t, "drsmith", "Cardiology")
	alice := env.addPatient(t, "alice")

	book := func(date, tm string) uint {
		t.Helper()
		appt, err := env.booking.Book(ctx, alice, BookInput{DoctorID: doctor.ID, Date: date, Time: tm})
		if err != nil {
			t.Fatalf("book %s %s: %v", date, tm, err)
		}
		return appt.ID
	}

	todayLate := book(today, "15:00")
	todayEarly := book(today, "09:00")
	book(in3Days, "10:00")
	book(in30Days, "10:00")
	past := book(lastWeek, "10:00")
	if _, err := env.booking.Complete(ctx, drPrincipal, todayEarly, CompleteInput{Diagnosis: "flu", Prescription: "rest"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := env.booking.Cancel(ctx, alice, past); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	admin, err := env.dashboard.Admin(ctx, env.admin(t))
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	if admin.Stats.Doctors != 1 || admin.Stats.Patients != 1 || admin.Stats.Appointments != 5 || admin.Stats.Departments != 6 {
		t.Fatalf("unexpected stats: %+v", admin.Stats)
	}
	if admin.TodayStats.NewPatients != 1 || admin.TodayStats.TodaysAppointments != 2 || admin.TodayStats.CompletedAppointments != 1 {
		t.Fatalf("unexpected today stats: %+v", admin.TodayStats)
	}
	if len(admin.Appointments) != 5 {
		t.Fatalf("expected 5 recent appointments, got %d", len(admin.Appointments))
	}

	doc, err := env.dashboard.Doctor(ctx, drPrincipal)
	if err != nil {
		t.Fatalf("doctor dashboard: %v", err)
	}
	if len(doc.TodaysAppointments) != 2 || doc.TodaysAppointments[0].ID != todayEarly || doc.TodaysAppointments[1].ID != todayLate {
		t.Fatalf("expected today's appointments ordered by time")
	}
	// booked within the next 7 days, today included
	if len(doc.UpcomingAppointments) != 2 {
		t.Fatalf("expected 2 upcoming booked appointments, got %d", len(doc.UpcomingAppointments))
	}

	pat, err := env.dashboard.Patient(ctx, alice)
	if err != nil {
		t.Fatalf("patient dashboard: %v", err)
	}
	if len(pat.UpcomingAppointments) != 3 || pat.UpcomingAppointments[0].ID != todayLate {
		t.Fatalf("expected 3 booked appointments ordered by date, got %d", len(pat.UpcomingAppointments))
	}
	if len(pat.PastAppointments) != 2 || pat.PastAppointments[0].ID != todayEarly {
		t.Fatalf("expected past appointments newest first")
	}
	if len(pat.Departments) != 6 {
		t.Fatalf("expected departments on patient dashboard")
	}

	if _, err := env.dashboard.Admin(ctx, alice); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected patient denied admin dashboard, got %v", err)
	}
	if _, err := env.dashboard.Patient(ctx, drPrincipal); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected doctor denied patient dashboard, got %v", err)
	}

	page, err := env.dashboard.AppointmentLog(ctx, env.admin(t), pagination.NewParams(2, 2))
	if err != nil {
		t.Fatalf("appointment log: %v", err)
	}
	if page.Meta.Total != 5 || page.Meta.TotalPages != 3 || !page.Meta.HasNext || !page.Meta.HasPrev {
		t.Fatalf("unexpected meta: %+v", page.Meta)
	}
}
