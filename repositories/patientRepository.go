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
	PatientCacheExpiry = 24 * time.Hour
)

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("patient already registered for this user")
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	cacheKey := r.getPatientCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	} else if err != nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if patientJSON, err := json.Marshal(patient); err == nil {
		if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
			log.Printf("Failed to set patient in cache: %v", err)
		}
	}
	return &patient, nil
}

func (r *PatientRepository) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by user: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("last_name ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return r.cache.Delete(ctx, r.getPatientCacheKey(patient.ID))
}

func (r *PatientRepository) getPatientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
