package repositories

import (
	"MediCore/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

func (r *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if err := r.db.WithContext(ctx).Create(prescription).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).First(&prescription, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *PrescriptionRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *PrescriptionRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *PrescriptionRepository) CountByPatient(ctx context.Context, patientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Prescription{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}
	return count, nil
}
