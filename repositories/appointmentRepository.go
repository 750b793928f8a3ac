package repositories

import (
	"MediCore/cache"
	"MediCore/database"
	"MediCore/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour
	SlotCacheExpiry        = 5 * time.Minute
)

// ErrSlotTaken is returned when a booking targets a slot that already holds
// an active appointment.
var ErrSlotTaken = errors.New("time slot is already booked")

type AppointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{db: db, cache: cache}
}

// Create inserts a new appointment. The slot is guarded twice: a Redis lock
// serializes concurrent bookings of the same (doctor, date, slot), and the
// unique index on slot_key rejects a second active row even if the lock is
// unavailable.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	lockKey := fmt.Sprintf("slot_lock:%s", models.SlotKeyFor(appointment.DoctorID, appointment.Date, appointment.TimeSlot))
	lockValue := uuid.New().String()

	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	switch {
	case errors.Is(err, database.ErrRedisUnavailable):
		log.Printf("Booking without Redis lock for %s: %v", lockKey, err)
	case err != nil:
		return fmt.Errorf("failed to acquire slot lock: %w", err)
	case !locked:
		return ErrSlotTaken
	default:
		defer func() {
			if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
				log.Printf("Failed to release slot lock: %v", err)
			}
		}()
	}

	taken, err := r.SlotTaken(ctx, appointment.DoctorID, appointment.Date, appointment.TimeSlot)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	slotKey := models.SlotKeyFor(appointment.DoctorID, appointment.Date, appointment.TimeSlot)
	appointment.SlotKey = &slotKey
	appointment.Status = models.StatusPending

	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	r.invalidateSlotCache(ctx, appointment.DoctorID, appointment.Date)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, first_name, last_name")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, hospital_id, first_name, last_name, specialization")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// TakenSlots returns the time slots occupied by non-cancelled appointments
// for a doctor on a date.
func (r *AppointmentRepository) TakenSlots(ctx context.Context, doctorID uint, date string) ([]string, error) {
	cacheKey := r.getSlotCacheKey(doctorID, date)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var slots []string
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			return slots, nil
		}
	} else if err != nil {
		log.Printf("Failed to get taken slots from cache: %v", err)
	}

	var slots []string
	err = r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?", doctorID, date, models.StatusCancelled).
		Pluck("time_slot", &slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list taken slots: %w", err)
	}

	if slotsJSON, err := json.Marshal(slots); err == nil {
		if err := r.cache.Set(ctx, cacheKey, slotsJSON, SlotCacheExpiry); err != nil {
			log.Printf("Failed to set taken slots in cache: %v", err)
		}
	}
	return slots, nil
}

// SlotTaken reports whether an active appointment already occupies the slot.
func (r *AppointmentRepository) SlotTaken(ctx context.Context, doctorID uint, date, timeSlot string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND time_slot = ? AND status <> ?",
			doctorID, date, timeSlot, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return count > 0, nil
}

// ListByPatient returns all appointments for a patient, newest first.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, specialization")
		}).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

// ListPendingByHospital returns the receptionist confirmation queue.
func (r *AppointmentRepository) ListPendingByHospital(ctx context.Context, hospitalID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, phone")
		}).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, specialization")
		}).
		Where("hospital_id = ? AND status = ?", hospitalID, models.StatusPending).
		Order("appointment_date ASC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending appointments: %w", err)
	}
	return appointments, nil
}

// ListForDoctorDate returns a doctor's appointments on a date, optionally
// filtered by status.
func (r *AppointmentRepository) ListForDoctorDate(ctx context.Context, doctorID uint, date string, statuses ...string) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, phone")
		}).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var appointments []models.Appointment
	if err := q.Order("time_slot ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

// Update persists appointment changes and refreshes the slot cache.
// Associations are skipped: rows loaded through GetByID carry partially
// selected Patient/Doctor structs that must not be written back.
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	r.invalidateSlotCache(ctx, appointment.DoctorID, appointment.Date)
	return nil
}

// CountByStatus counts appointments per hospital and status; empty status
// counts all rows.
func (r *AppointmentRepository) CountByStatus(ctx context.Context, hospitalID uint, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("hospital_id = ?", hospitalID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// CountForDoctor counts a doctor's appointments in a date range, optionally by status.
func (r *AppointmentRepository) CountForDoctor(ctx context.Context, doctorID uint, from, to, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date <= ?", doctorID, from, to)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count doctor appointments: %w", err)
	}
	return count, nil
}

// CountUpcomingForPatient counts a patient's pending and confirmed appointments
// on or after the given date.
func (r *AppointmentRepository) CountUpcomingForPatient(ctx context.Context, patientID uint, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("patient_id = ? AND appointment_date >= ? AND status IN ?",
			patientID, date, []string{models.StatusPending, models.StatusConfirmed}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming appointments: %w", err)
	}
	return count, nil
}

// CountForHospitalDate counts a hospital's appointments on a date, optionally by status.
func (r *AppointmentRepository) CountForHospitalDate(ctx context.Context, hospitalID uint, date, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("hospital_id = ? AND appointment_date = ?", hospitalID, date)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count hospital appointments: %w", err)
	}
	return count, nil
}

func (r *AppointmentRepository) invalidateSlotCache(ctx context.Context, doctorID uint, date string) {
	if err := r.cache.Delete(ctx, r.getSlotCacheKey(doctorID, date)); err != nil {
		log.Printf("Failed to delete slot cache: %v", err)
	}
}

func (r *AppointmentRepository) getSlotCacheKey(doctorID uint, date string) string {
	return fmt.Sprintf("slots_cache:%d:%s", doctorID, date)
}
