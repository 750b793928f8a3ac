package repositories

import (
	"MediCore/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// StaffRepository covers hospital-scoped staff records: receptionists and labs.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) CreateReceptionist(ctx context.Context, receptionist *models.Receptionist) error {
	if err := r.db.WithContext(ctx).Create(receptionist).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("receptionist already registered for this user")
		}
		return fmt.Errorf("failed to create receptionist: %w", err)
	}
	return nil
}

func (r *StaffRepository) GetReceptionistByUserID(ctx context.Context, userID int64) (*models.Receptionist, error) {
	var receptionist models.Receptionist
	err := r.db.WithContext(ctx).First(&receptionist, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get receptionist by user: %w", err)
	}
	return &receptionist, nil
}

func (r *StaffRepository) ListReceptionists(ctx context.Context, hospitalID uint) ([]models.Receptionist, error) {
	var receptionists []models.Receptionist
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("last_name ASC").
		Find(&receptionists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list receptionists: %w", err)
	}
	return receptionists, nil
}

func (r *StaffRepository) CreateLab(ctx context.Context, lab *models.Lab) error {
	if err := r.db.WithContext(ctx).Create(lab).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("lab already registered for this user")
		}
		return fmt.Errorf("failed to create lab: %w", err)
	}
	return nil
}

func (r *StaffRepository) GetLabByUserID(ctx context.Context, userID int64) (*models.Lab, error) {
	var lab models.Lab
	err := r.db.WithContext(ctx).First(&lab, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lab by user: %w", err)
	}
	return &lab, nil
}

func (r *StaffRepository) ListLabs(ctx context.Context, hospitalID uint) ([]models.Lab, error) {
	var labs []models.Lab
	err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("name ASC").
		Find(&labs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	return labs, nil
}
