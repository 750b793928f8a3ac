package repositories

import (
	"MediCore/cache"
	"MediCore/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	DoctorCacheExpiry = 24 * time.Hour
)

type DoctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("doctor already registered for this user")
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return r.cache.DeleteAll(ctx, "doctor_cache*")
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	cacheKey := r.getDoctorCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctorJSON, err := json.Marshal(doctor); err == nil {
		if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context, hospitalID uint) ([]models.Doctor, error) {
	q := r.db.WithContext(ctx).Order("last_name ASC")
	if hospitalID != 0 {
		q = q.Where("hospital_id = ?", hospitalID)
	}
	var doctors []models.Doctor
	if err := q.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := r.db.WithContext(ctx).Save(doctor).Error; err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return r.cache.Delete(ctx, r.getDoctorCacheKey(doctor.ID))
}

// GetSchedule returns the doctor's working-hours record, or nil when the
// doctor has none and the caller should fall back to default hours.
func (r *DoctorRepository) GetSchedule(ctx context.Context, doctorID uint) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	err := r.db.WithContext(ctx).First(&schedule, "doctor_id = ?", doctorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor schedule: %w", err)
	}
	return &schedule, nil
}

// UpsertSchedule creates or replaces the doctor's working-hours record.
func (r *DoctorRepository) UpsertSchedule(ctx context.Context, schedule *models.DoctorSchedule) error {
	var existing models.DoctorSchedule
	err := r.db.WithContext(ctx).First(&existing, "doctor_id = ?", schedule.DoctorID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
			return fmt.Errorf("failed to create doctor schedule: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to load doctor schedule: %w", err)
	default:
		schedule.ID = existing.ID
		if err := r.db.WithContext(ctx).Save(schedule).Error; err != nil {
			return fmt.Errorf("failed to update doctor schedule: %w", err)
		}
		return nil
	}
}

func (r *DoctorRepository) getDoctorCacheKey(id uint) string {
	return fmt.Sprintf("doctor_cache:%d", id)
}
