package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PatientService struct {
	patientRepo *repositories.PatientRepository
}

func NewPatientService(patientRepo *repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

func validatePatient(patient *models.Patient) error {
	return validation.ValidateStruct(patient,
		validation.Field(&patient.UserID, validation.Required),
		validation.Field(&patient.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.Sex, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&patient.DateOfBirth, validation.Date(DateLayout)),
		validation.Field(&patient.Phone, validation.Length(0, 20)),
	)
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}
	return s.patientRepo.Create(ctx, patient)
}

func (s *PatientService) Get(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (s *PatientService) GetByUser(ctx context.Context, userID int64) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.patientRepo.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}
	existing, err := s.patientRepo.GetByID(ctx, patient.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPatientNotFound
	}
	return s.patientRepo.Update(ctx, patient)
}
