package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type DoctorService struct {
	doctorRepo   *repositories.DoctorRepository
	hospitalRepo *repositories.HospitalRepository
}

func NewDoctorService(doctorRepo *repositories.DoctorRepository, hospitalRepo *repositories.HospitalRepository) *DoctorService {
	return &DoctorService{doctorRepo: doctorRepo, hospitalRepo: hospitalRepo}
}

func validateDoctor(doctor *models.Doctor) error {
	return validation.ValidateStruct(doctor,
		validation.Field(&doctor.UserID, validation.Required),
		validation.Field(&doctor.HospitalID, validation.Required),
		validation.Field(&doctor.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&doctor.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&doctor.Specialization, validation.Length(0, 100)),
		validation.Field(&doctor.Phone, validation.Length(0, 20)),
	)
}

func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}
	hospital, err := s.hospitalRepo.GetByID(ctx, doctor.HospitalID)
	if err != nil {
		return err
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}
	return s.doctorRepo.Create(ctx, doctor)
}

func (s *DoctorService) Get(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// List returns doctors, optionally filtered to one hospital.
func (s *DoctorService) List(ctx context.Context, hospitalID uint) ([]models.Doctor, error) {
	return s.doctorRepo.GetAll(ctx, hospitalID)
}

func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}
	existing, err := s.doctorRepo.GetByID(ctx, doctor.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDoctorNotFound
	}
	return s.doctorRepo.Update(ctx, doctor)
}
