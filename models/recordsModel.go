package models

import (
	"time"
)

// Prescription model
type Prescription struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	AppointmentID uint      `gorm:"column:appointment_id;not null;index" json:"appointment_id"`
	PatientID     uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      uint      `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Medicines     string    `gorm:"column:medicines;type:text;not null" json:"medicines"`
	Dosage        string    `gorm:"column:dosage;type:text" json:"dosage"`
	Instructions  string    `gorm:"column:instructions;type:text" json:"instructions"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID;references:ID" json:"-"`
	Patient     Patient     `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor      Doctor      `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// LabReport model
type LabReport struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	LabID         uint      `gorm:"column:lab_id;not null;index" json:"lab_id"`
	PatientID     uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	AppointmentID *uint     `gorm:"column:appointment_id;index" json:"appointment_id"`
	TestName      string    `gorm:"column:test_name;not null" json:"test_name"`
	FileName      string    `gorm:"column:file_name" json:"file_name"`
	Result        string    `gorm:"column:result;type:text" json:"result"`
	Remarks       string    `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Lab     Lab     `gorm:"foreignKey:LabID;references:ID" json:"-"`
	Patient Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (LabReport) TableName() string {
	return "lab_report"
}

// Notification kinds.
const (
	NotificationAppointmentConfirmed = "appointment_confirmed"
	NotificationAppointmentCancelled = "appointment_cancelled"
	NotificationLabReportReady       = "lab_report_ready"
	NotificationPrescriptionIssued   = "prescription_issued"
)

// Notification model. Rows are written best-effort; delivery is never
// awaited by the operation that triggered them.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;index" json:"user_id"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	Read      bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Notification) TableName() string {
	return "notification"
}

// OtpVerification is the audit row behind OTP login. The live code is held
// in Redis; this row is the fallback when Redis is unavailable.
type OtpVerification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email     string    `gorm:"column:email;not null;index" json:"email"`
	CodeHash  string    `gorm:"column:code_hash;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	Consumed  bool      `gorm:"column:consumed;not null;default:false" json:"consumed"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OtpVerification) TableName() string {
	return "otp_verification"
}
