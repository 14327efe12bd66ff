package domain

import (
	"errors"
	"testing"
)

func TestAuthorize_RoleGates(t *testing.T) {
	admin := Principal{UserID: 1, Role: RoleAdmin}
	doctor := Principal{UserID: 2, Role: RoleDoctor}
	patient := Principal{UserID: 3, Role: RolePatient}

	cases := []struct {
		name string
		p    Principal
		a    Action
		want bool
	}{
		{"admin dashboard as admin", admin, ActionViewAdminDashboard, true},
		{"admin dashboard as doctor", doctor, ActionViewAdminDashboard, false},
		{"admin dashboard as patient", patient, ActionViewAdminDashboard, false},
		{"reset as admin", admin, ActionResetDatabase, true},
		{"reset as doctor", doctor, ActionResetDatabase, false},
		{"book as patient", patient, ActionBookAppointment, true},
		{"book as doctor", doctor, ActionBookAppointment, false},
		{"book as admin", admin, ActionBookAppointment, false},
		{"complete as doctor", doctor, ActionCompleteAppointment, true},
		{"complete as admin", admin, ActionCompleteAppointment, false},
		{"search as anyone", patient, ActionSearchDoctors, true},
		{"unknown role", Principal{UserID: 9, Role: "nurse"}, ActionSearchDoctors, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(tc.p, tc.a); got != tc.want {
				t.Fatalf("Allowed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAuthorize_Ownership(t *testing.T) {
	appt := Resource{PatientUserID: 3, DoctorUserID: 2}

	if err := Authorize(Principal{UserID: 3, Role: RolePatient}, ActionCancelAppointment, appt); err != nil {
		t.Fatalf("owning patient should cancel: %v", err)
	}
	if err := Authorize(Principal{UserID: 4, Role: RolePatient}, ActionCancelAppointment, appt); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("other patient should be denied, got %v", err)
	}
	if err := Authorize(Principal{UserID: 2, Role: RoleDoctor}, ActionCompleteAppointment, appt); err != nil {
		t.Fatalf("assigned doctor should complete: %v", err)
	}
	if err := Authorize(Principal{UserID: 5, Role: RoleDoctor}, ActionCancelAppointment, appt); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("other doctor should be denied, got %v", err)
	}
	if err := Authorize(Principal{UserID: 1, Role: RoleAdmin}, ActionCancelAppointment, appt); err != nil {
		t.Fatalf("admin should cancel any appointment: %v", err)
	}
}

func TestParseHelpers(t *testing.T) {
	if d, err := ParseDate("2025-06-01"); err != nil || d != "2025-06-01" {
		t.Fatalf("ParseDate: %q %v", d, err)
	}
	if _, err := ParseDate("06/01/2025"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if tm, err := ParseTimeOfDay("9:05"); err != nil || tm != "09:05" {
		t.Fatalf("expected canonical 09:05, got %q %v", tm, err)
	}
	if _, err := ParseTimeOfDay("25:00"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected out-of-range hour to fail, got %v", err)
	}
	if tm, err := ParseTimeOfDay("10:00"); err != nil || tm != "10:00" {
		t.Fatalf("ParseTimeOfDay: %q %v", tm, err)
	}
	if _, err := ParseRole("nurse"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected unknown role to fail, got %v", err)
	}
	if SlotKey(4, "2025-06-01", "10:00") != "4|2025-06-01|10:00" {
		t.Fatalf("unexpected slot key")
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	if StatusBooked.IsTerminal() || !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatalf("expected only Completed and Cancelled to be terminal")
	}
}
