package domain

import (
	"fmt"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole converts a stored role tag into a Role
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// IsTerminal reports whether no further transition is allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Principal is the authenticated caller
type Principal struct {
	UserID   uint
	Username string
	Role     Role
}

// Wire formats for dates and times of day
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate validates a YYYY-MM-DD date and returns its canonical form
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return t.Format(DateLayout), nil
}

// ParseTimeOfDay validates an HH:MM time and returns its canonical form
func ParseTimeOfDay(s string) (string, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid time %q, expected HH:MM", ErrValidation, s)
	}
	return t.Format(TimeLayout), nil
}

// SlotKey identifies a (doctor, date, time) booking slot
func SlotKey(doctorID uint, date, timeOfDay string) string {
	return fmt.Sprintf("%d|%s|%s", doctorID, date, timeOfDay)
}
