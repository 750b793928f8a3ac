package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StaffService manages hospital-scoped staff records: receptionists and labs.
type StaffService struct {
	staffRepo    *repositories.StaffRepository
	hospitalRepo *repositories.HospitalRepository
}

func NewStaffService(staffRepo *repositories.StaffRepository, hospitalRepo *repositories.HospitalRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo, hospitalRepo: hospitalRepo}
}

func (s *StaffService) CreateReceptionist(ctx context.Context, receptionist *models.Receptionist) error {
	err := validation.ValidateStruct(receptionist,
		validation.Field(&receptionist.UserID, validation.Required),
		validation.Field(&receptionist.HospitalID, validation.Required),
		validation.Field(&receptionist.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&receptionist.LastName, validation.Required, validation.Length(1, 100)),
	)
	if err != nil {
		return err
	}
	if err := s.requireHospital(ctx, receptionist.HospitalID); err != nil {
		return err
	}
	return s.staffRepo.CreateReceptionist(ctx, receptionist)
}

func (s *StaffService) ListReceptionists(ctx context.Context, hospitalID uint) ([]models.Receptionist, error) {
	return s.staffRepo.ListReceptionists(ctx, hospitalID)
}

func (s *StaffService) CreateLab(ctx context.Context, lab *models.Lab) error {
	err := validation.ValidateStruct(lab,
		validation.Field(&lab.UserID, validation.Required),
		validation.Field(&lab.HospitalID, validation.Required),
		validation.Field(&lab.Name, validation.Required, validation.Length(1, 255)),
	)
	if err != nil {
		return err
	}
	if err := s.requireHospital(ctx, lab.HospitalID); err != nil {
		return err
	}
	return s.staffRepo.CreateLab(ctx, lab)
}

func (s *StaffService) ListLabs(ctx context.Context, hospitalID uint) ([]models.Lab, error) {
	return s.staffRepo.ListLabs(ctx, hospitalID)
}

func (s *StaffService) requireHospital(ctx context.Context, hospitalID uint) error {
	hospital, err := s.hospitalRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return err
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}
	return nil
}
