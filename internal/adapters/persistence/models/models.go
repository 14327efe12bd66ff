package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity
// ============================================================

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	DoctorProfile  *Doctor  `gorm:"foreignKey:UserID" json:"-"`
	PatientProfile *Patient `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Directory
// ============================================================

// Department represents departments table
type Department struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Department) TableName() string {
	return "departments"
}

// Doctor represents doctors table
type Doctor struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	UserID          uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	DepartmentID    uint    `gorm:"not null;index" json:"department_id"`
	Specialization  string  `gorm:"size:100;not null" json:"specialization"`
	LicenseNumber   *string `gorm:"size:50;uniqueIndex" json:"license_number"`
	Experience      *int    `json:"experience"`
	ConsultationFee float64 `gorm:"default:0" json:"consultation_fee"`
	IsActive        bool    `gorm:"not null;default:true" json:"is_active"`

	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorSummary is the search result shape for a doctor
type DoctorSummary struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	Department      string  `json:"department"`
	Experience      *int    `json:"experience"`
	ConsultationFee float64 `json:"consultation_fee"`
}

func (d *Doctor) ToSummary() DoctorSummary {
	s := DoctorSummary{
		ID:              d.ID,
		Specialization:  d.Specialization,
		Experience:      d.Experience,
		ConsultationFee: d.ConsultationFee,
	}
	if d.User != nil {
		s.Name = d.User.Username
	}
	if d.Department != nil {
		s.Department = d.Department.Name
	}
	return s
}

// Patient represents patients table
type Patient struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	UserID           uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	DateOfBirth      *string `gorm:"size:10" json:"date_of_birth"`
	BloodGroup       string  `gorm:"size:5" json:"blood_group"`
	Phone            string  `gorm:"size:15" json:"phone"`
	Address          string  `gorm:"type:text" json:"address"`
	EmergencyContact string  `gorm:"size:15" json:"emergency_contact"`
	IsActive         bool    `gorm:"not null;default:true" json:"is_active"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// ============================================================
// Scheduling
// ============================================================

// Availability represents doctor_availability table
type Availability struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	DoctorID    uint   `gorm:"not null;uniqueIndex:unique_doctor_slot,priority:1" json:"doctor_id"`
	Date        string `gorm:"size:10;not null;uniqueIndex:unique_doctor_slot,priority:2;index" json:"date"`
	StartTime   string `gorm:"size:5;not null;uniqueIndex:unique_doctor_slot,priority:3" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Availability) TableName() string {
	return "doctor_availability"
}

// Appointment represents appointments table
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint      `gorm:"not null;index:idx_appointment_slot,priority:1" json:"doctor_id"`
	AppointmentDate string    `gorm:"size:10;not null;index:idx_appointment_slot,priority:2" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5;not null;index:idx_appointment_slot,priority:3" json:"appointment_time"`
	Status          string    `gorm:"size:20;not null;default:'Booked';index" json:"status"`
	Symptoms        string    `gorm:"type:text" json:"symptoms"`
	ActiveSlot      *string   `gorm:"size:40;uniqueIndex" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Patient   *Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    *Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentResponse DTO
type AppointmentResponse struct {
	ID              uint       `json:"id"`
	PatientID       uint       `json:"patient_id"`
	PatientName     string     `json:"patient_name,omitempty"`
	DoctorID        uint       `json:"doctor_id"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	Specialization  string     `json:"specialization,omitempty"`
	AppointmentDate string     `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"`
	Status          string     `json:"status"`
	Symptoms        string     `json:"symptoms"`
	CreatedAt       time.Time  `json:"created_at"`
	Treatment       *Treatment `json:"treatment,omitempty"`
}

func (a *Appointment) ToResponse() *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Status:          a.Status,
		Symptoms:        a.Symptoms,
		CreatedAt:       a.CreatedAt,
		Treatment:       a.Treatment,
	}
	if a.Patient != nil && a.Patient.User != nil {
		resp.PatientName = a.Patient.User.Username
	}
	if a.Doctor != nil {
		resp.Specialization = a.Doctor.Specialization
		if a.Doctor.User != nil {
			resp.DoctorName = a.Doctor.User.Username
		}
	}
	return resp
}

// ToResponses converts a list of appointments
func ToResponses(list []*Appointment) []*AppointmentResponse {
	out := make([]*AppointmentResponse, len(list))
	for i, a := range list {
		out[i] = a.ToResponse()
	}
	return out
}

// Treatment represents treatments table
type Treatment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"not null;uniqueIndex" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:text;not null" json:"diagnosis"`
	Prescription  string    `gorm:"type:text;not null" json:"prescription"`
	Notes         string    `gorm:"type:text" json:"notes"`
	TreatmentDate time.Time `gorm:"not null" json:"treatment_date"`
}

func (Treatment) TableName() string {
	return "treatments"
}

// ============================================================
// Schema
// ============================================================

// All returns every table model in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Department{},
		&Doctor{},
		&Patient{},
		&Availability{},
		&Appointment{},
		&Treatment{},
	}
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// DropAll drops all tables, dependents first
func DropAll(db *gorm.DB) error {
	tables := All()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}
	return nil
}
