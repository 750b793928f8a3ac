package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user role
type Role struct {
	ID          int64        `gorm:"primaryKey;column:id" json:"id"`
	Name        string       `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string       `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
}

func (Role) TableName() string {
	return "roles"
}

// Role names used across handlers and middleware.
const (
	RoleAdmin        = "Admin"
	RoleDoctor       = "Doctor"
	RoleReceptionist = "Receptionist"
	RolePatient      = "Patient"
	RoleLab          = "Lab"
)

// SeedRoles inserts initial roles into the database
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: RoleAdmin, Description: "Full access to the system"},
		{Name: RoleDoctor, Description: "Can manage appointments, prescriptions and schedules"},
		{Name: RoleReceptionist, Description: "Can confirm and manage hospital appointments"},
		{Name: RolePatient, Description: "Can book appointments and view personal records"},
		{Name: RoleLab, Description: "Can upload and manage lab reports"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// User represents a user in the system
type User struct {
	ID        int64     `gorm:"primaryKey;column:id" json:"id"`
	Username  string    `gorm:"size:100;not null;unique;index;column:username" json:"username"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Phone     string    `gorm:"size:20;column:phone" json:"phone"`
	Password  string    `gorm:"size:255;not null;column:password" json:"password"`
	RoleID    int64     `gorm:"index;not null;column:role_id" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Permission represents a permission in the system
type Permission struct {
	ID          int64  `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"size:100;not null;unique;index;column:name" json:"name"`
	Description string `gorm:"type:text;column:description" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

// SeedPermissions inserts initial permissions into the database
func SeedPermissions(db *gorm.DB) error {
	initialPermissions := []Permission{
		{Name: "manage_users", Description: "Create, update, or delete users"},
		{Name: "manage_hospitals", Description: "Create or update hospitals and staff"},
		{Name: "view_patients", Description: "View patient data"},
		{Name: "edit_prescriptions", Description: "Issue and edit prescriptions"},
		{Name: "manage_appointments", Description: "Confirm or update appointments"},
		{Name: "book_appointments", Description: "Book appointments"},
		{Name: "manage_lab_reports", Description: "Upload and manage lab reports"},
		{Name: "view_self", Description: "View personal data"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, permission := range initialPermissions {
			if err := tx.FirstOrCreate(&permission, Permission{Name: permission.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RolePermission represents the association between roles and permissions
type RolePermission struct {
	ID           int64 `gorm:"primaryKey;column:id" json:"id"`
	RoleID       int64 `gorm:"index;column:role_id" json:"role_id"`
	PermissionID int64 `gorm:"index;column:permission_id" json:"permission_id"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// SeedRolePermissions inserts initial role permissions into the database
func SeedRolePermissions(db *gorm.DB) error {
	initialRolePermissions := []RolePermission{
		{RoleID: 1, PermissionID: 1}, // Admin: manage_users
		{RoleID: 1, PermissionID: 2}, // Admin: manage_hospitals
		{RoleID: 1, PermissionID: 3}, // Admin: view_patients
		{RoleID: 1, PermissionID: 5}, // Admin: manage_appointments
		{RoleID: 2, PermissionID: 3}, // Doctor: view_patients
		{RoleID: 2, PermissionID: 4}, // Doctor: edit_prescriptions
		{RoleID: 3, PermissionID: 5}, // Receptionist: manage_appointments
		{RoleID: 3, PermissionID: 6}, // Receptionist: book_appointments
		{RoleID: 4, PermissionID: 6}, // Patient: book_appointments
		{RoleID: 4, PermissionID: 8}, // Patient: view_self
		{RoleID: 5, PermissionID: 7}, // Lab: manage_lab_reports
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, rolePermission := range initialRolePermissions {
			if err := tx.FirstOrCreate(&rolePermission, RolePermission{RoleID: rolePermission.RoleID, PermissionID: rolePermission.PermissionID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
