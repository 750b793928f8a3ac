package models

import (
	"time"
)

// Hospital model
type Hospital struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null;index" json:"name"`
	Address   string    `gorm:"column:address" json:"address"`
	City      string    `gorm:"column:city;index" json:"city"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Doctors       []Doctor       `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	Receptionists []Receptionist `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	Labs          []Lab          `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	Appointments  []Appointment  `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
}

func (Hospital) TableName() string {
	return "hospital"
}

// Doctor model
type Doctor struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID         int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	HospitalID     uint      `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	FirstName      string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string    `gorm:"column:last_name;not null;index" json:"last_name"`
	Specialization string    `gorm:"column:specialization;index" json:"specialization"`
	Qualification  string    `gorm:"column:qualification" json:"qualification"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User         User          `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Hospital     Hospital      `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// DoctorSchedule holds a doctor's daily working window. Times are "HH:MM"
// strings; the break window is excluded from generated slots.
type DoctorSchedule struct {
	ID         uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID   uint   `gorm:"column:doctor_id;not null;uniqueIndex" json:"doctor_id"`
	StartTime  string `gorm:"column:start_time;not null" json:"start_time"`
	EndTime    string `gorm:"column:end_time;not null" json:"end_time"`
	BreakStart string `gorm:"column:break_start" json:"break_start"`
	BreakEnd   string `gorm:"column:break_end" json:"break_end"`

	Doctor Doctor `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedule"
}

// Patient model
type Patient struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	FirstName   string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string    `gorm:"column:last_name;not null;index" json:"last_name"`
	Sex         string    `gorm:"column:sex;check:sex IN ('Male', 'Female', 'Other')" json:"sex"`
	DateOfBirth string    `gorm:"column:date_of_birth;index" json:"date_of_birth"`
	BloodGroup  string    `gorm:"column:blood_group" json:"blood_group"`
	Phone       string    `gorm:"column:phone" json:"phone"`
	Address     string    `gorm:"column:address" json:"address"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User          User           `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Appointments  []Appointment  `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	LabReports    []LabReport    `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Receptionist model
type Receptionist struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	HospitalID uint      `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	FirstName  string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName   string    `gorm:"column:last_name;not null" json:"last_name"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User     User     `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Hospital Hospital `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
}

func (Receptionist) TableName() string {
	return "receptionist"
}

// Lab model
type Lab struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	HospitalID uint      `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User       User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Hospital   Hospital    `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	LabReports []LabReport `gorm:"foreignKey:LabID;references:ID" json:"-"`
}

func (Lab) TableName() string {
	return "lab"
}
