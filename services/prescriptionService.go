package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrLabNotFound = errors.New("caller has no lab record")

// PrescriptionRequest is the payload for issuing a prescription.
type PrescriptionRequest struct {
	AppointmentID uint   `json:"appointment_id"`
	Medicines     string `json:"medicines"`
	Dosage        string `json:"dosage"`
	Instructions  string `json:"instructions"`
}

func (r PrescriptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AppointmentID, validation.Required),
		validation.Field(&r.Medicines, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.Dosage, validation.Length(0, 2000)),
		validation.Field(&r.Instructions, validation.Length(0, 2000)),
	)
}

type PrescriptionService struct {
	prescriptionRepo *repositories.PrescriptionRepository
	appointmentRepo  *repositories.AppointmentRepository
	doctorRepo       *repositories.DoctorRepository
	patientRepo      *repositories.PatientRepository
	notifications    *NotificationService
}

func NewPrescriptionService(
	prescriptionRepo *repositories.PrescriptionRepository,
	appointmentRepo *repositories.AppointmentRepository,
	doctorRepo *repositories.DoctorRepository,
	patientRepo *repositories.PatientRepository,
	notifications *NotificationService,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		notifications:    notifications,
	}
}

// Issue creates a prescription against one of the caller's own appointments.
func (s *PrescriptionService) Issue(ctx context.Context, actor Actor, req PrescriptionRequest) (*models.Prescription, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return nil, ErrNotAppointmentOwner
	}

	prescription := &models.Prescription{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      doctor.ID,
		Medicines:     req.Medicines,
		Dosage:        req.Dosage,
		Instructions:  req.Instructions,
	}
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}

	if patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID); err == nil && patient != nil {
		s.notifications.Notify(patient.UserID, models.NotificationPrescriptionIssued,
			fmt.Sprintf("A new prescription was issued for your appointment on %s.", appointment.Date))
	}
	return prescription, nil
}

// ForPatient returns the caller's own prescriptions.
func (s *PrescriptionService) ForPatient(ctx context.Context, actor Actor) ([]models.Prescription, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.prescriptionRepo.ListByPatient(ctx, patient.ID)
}

// ForDoctor returns prescriptions the caller has issued.
func (s *PrescriptionService) ForDoctor(ctx context.Context, actor Actor) ([]models.Prescription, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return s.prescriptionRepo.ListByDoctor(ctx, doctor.ID)
}
