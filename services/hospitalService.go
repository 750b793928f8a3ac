package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type HospitalService struct {
	hospitalRepo *repositories.HospitalRepository
}

func NewHospitalService(hospitalRepo *repositories.HospitalRepository) *HospitalService {
	return &HospitalService{hospitalRepo: hospitalRepo}
}

func validateHospital(hospital *models.Hospital) error {
	return validation.ValidateStruct(hospital,
		validation.Field(&hospital.Name, validation.Required, validation.Length(2, 255)),
		validation.Field(&hospital.Email, is.Email),
		validation.Field(&hospital.Phone, validation.Length(0, 20)),
	)
}

func (s *HospitalService) Create(ctx context.Context, hospital *models.Hospital) error {
	if err := validateHospital(hospital); err != nil {
		return err
	}
	return s.hospitalRepo.Create(ctx, hospital)
}

func (s *HospitalService) Get(ctx context.Context, id uint) (*models.Hospital, error) {
	hospital, err := s.hospitalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}

func (s *HospitalService) List(ctx context.Context) ([]models.Hospital, error) {
	return s.hospitalRepo.GetAll(ctx)
}

func (s *HospitalService) Update(ctx context.Context, hospital *models.Hospital) error {
	if err := validateHospital(hospital); err != nil {
		return err
	}
	existing, err := s.hospitalRepo.GetByID(ctx, hospital.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrHospitalNotFound
	}
	return s.hospitalRepo.Update(ctx, hospital)
}
