package services

import (
	"context"
	"errors"
	"testing"

	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/password"
)

func TestAddDoctor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	depts, _ := env.directory.ListDepartments(ctx)
	if len(depts) != 6 {
		t.Fatalf("expected 6 seeded departments, got %d", len(depts))
	}

	exp := 12
	doctor, err := env.directory.AddDoctor(ctx, admin, AddDoctorInput{
		Username:        "drsmith",
		Email:           "smith@hospital.com",
		Specialization:  "Cardiology",
		DepartmentID:    depts[0].ID,
		Experience:      &exp,
		ConsultationFee: 50,
	})
	if err != nil {
		t.Fatalf("add doctor: %v", err)
	}
	if doctor.LicenseNumber != nil {
		t.Fatalf("expected empty license stored as NULL")
	}
	if !password.Verify("doctor123", doctor.User.Password) {
		t.Fatalf("expected default doctor password")
	}

	// a second doctor without a license must not collide on NULL
	if _, err := env.directory.AddDoctor(ctx, admin, AddDoctorInput{
		Username: "drjones", Email: "jones@hospital.com", Specialization: "Neurology",
		DepartmentID: depts[1].ID, LicenseNumber: "  ",
	}); err != nil {
		t.Fatalf("add second doctor: %v", err)
	}

	if _, err := env.directory.AddDoctor(ctx, admin, AddDoctorInput{
		Username: "drlee", Email: "lee@hospital.com", Specialization: "Pediatrics",
		DepartmentID: depts[2].ID, LicenseNumber: "LIC-1",
	}); err != nil {
		t.Fatalf("add licensed doctor: %v", err)
	}

	cases := []struct {
		name string
		p    domain.Principal
		in   AddDoctorInput
		want error
	}{
		{"not admin", domain.Principal{UserID: doctor.UserID, Role: domain.RoleDoctor},
			AddDoctorInput{Username: "x", Email: "x@h.com", Specialization: "x", DepartmentID: depts[0].ID}, domain.ErrAccessDenied},
		{"username taken", admin,
			AddDoctorInput{Username: "drsmith", Email: "new@h.com", Specialization: "x", DepartmentID: depts[0].ID}, domain.ErrUsernameTaken},
		{"email taken", admin,
			AddDoctorInput{Username: "drnew", Email: "smith@hospital.com", Specialization: "x", DepartmentID: depts[0].ID}, domain.ErrEmailTaken},
		{"license taken", admin,
			AddDoctorInput{Username: "drnew", Email: "new@h.com", Specialization: "x", DepartmentID: depts[0].ID, LicenseNumber: "LIC-1"}, domain.ErrLicenseTaken},
		{"unknown department", admin,
			AddDoctorInput{Username: "drnew", Email: "new@h.com", Specialization: "x", DepartmentID: 999}, domain.ErrNotFound},
		{"missing specialization", admin,
			AddDoctorInput{Username: "drnew", Email: "new@h.com", DepartmentID: depts[0].ID}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.directory.AddDoctor(ctx, tc.p, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	doctors, err := env.directory.ListDoctors(ctx, admin)
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	if len(doctors) != 3 {
		t.Fatalf("expected failed adds to leave 3 doctors, got %d", len(doctors))
	}
}

func TestSearchDoctors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cardio, cardioPrincipal := env.addDoctor(t, "drheart", "Cardiology")
	neuro, _ := env.addDoctor(t, "drbrain", "Neurology")
	alice := env.addPatient(t, "alice")

	all, err := env.directory.SearchDoctors(ctx, alice, SearchFilter{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 2 || all[0].ID != cardio.ID || all[1].ID != neuro.ID {
		t.Fatalf("expected both doctors ordered by id, got %+v", all)
	}
	if all[0].Name != "drheart" || all[0].Department == "" {
		t.Fatalf("expected name and department in summary, got %+v", all[0])
	}

	got, err := env.directory.SearchDoctors(ctx, alice, SearchFilter{Specialization: "CARDIO"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != cardio.ID {
		t.Fatalf("expected case-insensitive match, got %+v", got)
	}

	if _, err := env.availability.Declare(ctx, cardioPrincipal, DeclareInput{
		Date: "2030-02-01", StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	got, err = env.directory.SearchDoctors(ctx, alice, SearchFilter{Date: "2030-02-01"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != cardio.ID {
		t.Fatalf("expected only available doctor, got %+v", got)
	}

	// an invalid date filter is ignored
	got, err = env.directory.SearchDoctors(ctx, alice, SearchFilter{Date: "soon"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected invalid date to be ignored, got %d", len(got))
	}

	if err := env.directory.SetDoctorActive(ctx, env.admin(t), neuro.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err = env.directory.SearchDoctors(ctx, alice, SearchFilter{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected inactive doctor hidden, got %d", len(got))
	}

	if err := env.directory.SetDoctorActive(ctx, env.admin(t), 999, true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAvailabilityLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor, drPrincipal := env.addDoctor(t, "drheart", "Cardiology")
	_, otherDoctor := env.addDoctor(t, "drbrain", "Neurology")
	alice := env.addPatient(t, "alice")

	slot, err := env.availability.Declare(ctx, drPrincipal, DeclareInput{Date: "2030-02-01", StartTime: "9:00", EndTime: "12:00"})
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if slot.StartTime != "09:00" || !slot.IsAvailable {
		t.Fatalf("unexpected slot: %+v", slot)
	}

	if _, err := env.availability.Declare(ctx, drPrincipal, DeclareInput{Date: "2030-02-01", StartTime: "09:00", EndTime: "10:00"}); !errors.Is(err, domain.ErrDuplicateSlot) {
		t.Fatalf("expected duplicate slot, got %v", err)
	}
	if _, err := env.availability.Declare(ctx, drPrincipal, DeclareInput{Date: "2030-02-01", StartTime: "14:00", EndTime: "13:00"}); !errors.Is(err, domain.ErrInvalidWindow) {
		t.Fatalf("expected invalid window, got %v", err)
	}
	if _, err := env.availability.Declare(ctx, alice, DeclareInput{Date: "2030-02-01", StartTime: "14:00", EndTime: "15:00"}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected patient denied, got %v", err)
	}

	if _, err := env.availability.Toggle(ctx, otherDoctor, slot.ID); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected other doctor denied, got %v", err)
	}
	toggled, err := env.availability.Toggle(ctx, drPrincipal, slot.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsAvailable {
		t.Fatalf("expected window closed")
	}

	slots, err := env.availability.ListForDoctor(ctx, doctor.ID, "2030-02-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 1 || slots[0].IsAvailable {
		t.Fatalf("expected one closed window, got %+v", slots)
	}

	own, err := env.availability.ListOwn(ctx, drPrincipal, "")
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 own window, got %d", len(own))
	}

	// a closed window drops the doctor from date searches
	if found, err := env.directory.SearchDoctors(ctx, alice, SearchFilter{Date: "2030-02-01"}); err != nil || len(found) != 0 {
		t.Fatalf("expected closed window to hide the doctor, got %+v %v", found, err)
	}
}
