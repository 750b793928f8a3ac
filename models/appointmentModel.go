package models

import (
	"fmt"
	"time"
)

// Appointment statuses. A row is never hard-deleted; status is the terminal marker.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Appointment types and priorities.
const (
	TypeOnline = "online"
	TypeWalkIn = "walk-in"

	PriorityEmergency = "emergency"
	PriorityUrgent    = "urgent"
	PriorityNormal    = "normal"
)

// Appointment model. SlotKey is populated while the appointment occupies its
// slot and cleared on cancellation; the unique index on it guarantees at most
// one active appointment per (doctor, date, slot).
type Appointment struct {
	ID             uint       `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID      uint       `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID       uint       `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	HospitalID     uint       `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	ReceptionistID *uint      `gorm:"column:receptionist_id" json:"receptionist_id"`
	Date           string     `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	Time           string     `gorm:"column:appointment_time" json:"appointment_time"`
	TimeSlot       string     `gorm:"column:time_slot;not null" json:"time_slot"`
	SlotKey        *string    `gorm:"column:slot_key;uniqueIndex" json:"-"`
	Reason         string     `gorm:"column:reason" json:"reason"`
	Type           string     `gorm:"column:type;check:type IN ('online', 'walk-in');not null" json:"type"`
	Priority       string     `gorm:"column:priority;check:priority IN ('emergency', 'urgent', 'normal');not null" json:"priority"`
	Symptoms       string     `gorm:"column:symptoms" json:"symptoms"`
	Notes          string     `gorm:"column:notes" json:"notes"`
	Status         string     `gorm:"column:status;check:status IN ('pending', 'confirmed', 'completed', 'cancelled', 'no-show');not null;index" json:"status"`
	ConfirmedAt    *time.Time `gorm:"column:confirmed_at" json:"confirmed_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy      int64      `gorm:"column:created_by;not null" json:"created_by"`

	Patient  Patient  `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor   Doctor   `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Hospital Hospital `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// SlotKeyFor builds the uniqueness key for an active booking.
func SlotKeyFor(doctorID uint, date, timeSlot string) string {
	return fmt.Sprintf("%d:%s:%s", doctorID, date, timeSlot)
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}
