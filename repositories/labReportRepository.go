package repositories

import (
	"MediCore/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type LabReportRepository struct {
	db *gorm.DB
}

func NewLabReportRepository(db *gorm.DB) *LabReportRepository {
	return &LabReportRepository{db: db}
}

func (r *LabReportRepository) Create(ctx context.Context, report *models.LabReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create lab report: %w", err)
	}
	return nil
}

func (r *LabReportRepository) GetByID(ctx context.Context, id uint) (*models.LabReport, error) {
	var report models.LabReport
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}
	return &report, nil
}

func (r *LabReportRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.LabReport, error) {
	var reports []models.LabReport
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient lab reports: %w", err)
	}
	return reports, nil
}

func (r *LabReportRepository) ListByLab(ctx context.Context, labID uint) ([]models.LabReport, error) {
	var reports []models.LabReport
	err := r.db.WithContext(ctx).
		Where("lab_id = ?", labID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lab reports: %w", err)
	}
	return reports, nil
}

func (r *LabReportRepository) CountByLab(ctx context.Context, labID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LabReport{}).
		Where("lab_id = ?", labID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count lab reports: %w", err)
	}
	return count, nil
}

func (r *LabReportRepository) CountByPatient(ctx context.Context, patientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LabReport{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count patient lab reports: %w", err)
	}
	return count, nil
}

func (r *LabReportRepository) CountByHospital(ctx context.Context, hospitalID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LabReport{}).
		Joins("JOIN lab ON lab.id = lab_report.lab_id").
		Where("lab.hospital_id = ?", hospitalID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count hospital lab reports: %w", err)
	}
	return count, nil
}
