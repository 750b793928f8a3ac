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
	HospitalCacheExpiry = 24 * time.Hour
)

type HospitalRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewHospitalRepository(db *gorm.DB, cache *cache.Cache) *HospitalRepository {
	return &HospitalRepository{db: db, cache: cache}
}

func (r *HospitalRepository) Create(ctx context.Context, hospital *models.Hospital) error {
	if err := r.db.WithContext(ctx).Create(hospital).Error; err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return r.cache.DeleteAll(ctx, "hospital_cache*")
}

func (r *HospitalRepository) GetByID(ctx context.Context, id uint) (*models.Hospital, error) {
	cacheKey := r.getHospitalCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var hospital models.Hospital
		if err := json.Unmarshal([]byte(cached), &hospital); err == nil {
			return &hospital, nil
		}
	} else if err != nil {
		log.Printf("Failed to get hospital from cache: %v", err)
	}

	var hospital models.Hospital
	err = r.db.WithContext(ctx).First(&hospital, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}

	if hospitalJSON, err := json.Marshal(hospital); err == nil {
		if err := r.cache.Set(ctx, cacheKey, hospitalJSON, HospitalCacheExpiry); err != nil {
			log.Printf("Failed to set hospital in cache: %v", err)
		}
	}
	return &hospital, nil
}

func (r *HospitalRepository) GetAll(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hospitals).Error; err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *HospitalRepository) Update(ctx context.Context, hospital *models.Hospital) error {
	if err := r.db.WithContext(ctx).Save(hospital).Error; err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}
	return r.cache.Delete(ctx, r.getHospitalCacheKey(hospital.ID))
}

func (r *HospitalRepository) getHospitalCacheKey(id uint) string {
	return fmt.Sprintf("hospital_cache:%d", id)
}
