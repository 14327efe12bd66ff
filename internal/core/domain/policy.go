package domain

// Action is an operation a principal may attempt
type Action string

const (
	ActionViewAdminDashboard   Action = "admin.dashboard"
	ActionManageDoctors        Action = "admin.doctors"
	ActionViewAppointmentLog   Action = "admin.appointments"
	ActionResetDatabase        Action = "admin.reset_database"
	ActionViewDoctorDashboard  Action = "doctor.dashboard"
	ActionManageAvailability   Action = "doctor.availability"
	ActionViewPatientDashboard Action = "patient.dashboard"
	ActionSearchDoctors        Action = "doctors.search"
	ActionBookAppointment      Action = "appointment.book"
	ActionCancelAppointment    Action = "appointment.cancel"
	ActionCompleteAppointment  Action = "appointment.complete"
)

// Resource identifies the owners of the object an action targets.
// Zero values mean the action is not tied to a specific object.
type Resource struct {
	PatientUserID uint
	DoctorUserID  uint
}

var roleActions = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionViewAdminDashboard: true,
		ActionManageDoctors:      true,
		ActionViewAppointmentLog: true,
		ActionResetDatabase:      true,
		ActionSearchDoctors:      true,
		ActionCancelAppointment:  true,
	},
	RoleDoctor: {
		ActionViewDoctorDashboard: true,
		ActionManageAvailability:  true,
		ActionSearchDoctors:       true,
		ActionCancelAppointment:   true,
		ActionCompleteAppointment: true,
	},
	RolePatient: {
		ActionViewPatientDashboard: true,
		ActionSearchDoctors:        true,
		ActionBookAppointment:      true,
		ActionCancelAppointment:    true,
	},
}

// Authorize decides whether p may perform a on r.
// Admins act on any object; doctors and patients only on objects they own.
func Authorize(p Principal, a Action, r Resource) error {
	if !roleActions[p.Role][a] {
		return ErrAccessDenied
	}

	switch p.Role {
	case RoleDoctor:
		if r.DoctorUserID != 0 && r.DoctorUserID != p.UserID {
			return ErrAccessDenied
		}
	case RolePatient:
		if r.PatientUserID != 0 && r.PatientUserID != p.UserID {
			return ErrAccessDenied
		}
	}
	return nil
}

// Allowed is Authorize for actions not bound to an object
func Allowed(p Principal, a Action) bool {
	return Authorize(p, a, Resource{}) == nil
}
