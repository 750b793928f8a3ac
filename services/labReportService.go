package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LabReportRequest is the payload for uploading a lab report.
type LabReportRequest struct {
	PatientID     uint   `json:"patient_id"`
	AppointmentID *uint  `json:"appointment_id"`
	TestName      string `json:"test_name"`
	FileName      string `json:"file_name"`
	Result        string `json:"result"`
	Remarks       string `json:"remarks"`
}

func (r LabReportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required),
		validation.Field(&r.TestName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.FileName, validation.Length(0, 255)),
		validation.Field(&r.Result, validation.Length(0, 4000)),
		validation.Field(&r.Remarks, validation.Length(0, 2000)),
	)
}

type LabReportService struct {
	labReportRepo   *repositories.LabReportRepository
	appointmentRepo *repositories.AppointmentRepository
	patientRepo     *repositories.PatientRepository
	staffRepo       *repositories.StaffRepository
	notifications   *NotificationService
}

func NewLabReportService(
	labReportRepo *repositories.LabReportRepository,
	appointmentRepo *repositories.AppointmentRepository,
	patientRepo *repositories.PatientRepository,
	staffRepo *repositories.StaffRepository,
	notifications *NotificationService,
) *LabReportService {
	return &LabReportService{
		labReportRepo:   labReportRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		staffRepo:       staffRepo,
		notifications:   notifications,
	}
}

// Upload records a lab report for a patient and notifies them.
func (s *LabReportService) Upload(ctx context.Context, actor Actor, req LabReportRequest) (*models.LabReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lab, err := s.staffRepo.GetLabByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, ErrLabNotFound
	}

	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		appointment, err := s.appointmentRepo.GetByID(ctx, *req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.PatientID != patient.ID {
			return nil, ErrNotAppointmentOwner
		}
	}

	report := &models.LabReport{
		LabID:         lab.ID,
		PatientID:     patient.ID,
		AppointmentID: req.AppointmentID,
		TestName:      req.TestName,
		FileName:      req.FileName,
		Result:        req.Result,
		Remarks:       req.Remarks,
	}
	if err := s.labReportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.notifications.Notify(patient.UserID, models.NotificationLabReportReady,
		fmt.Sprintf("Your %s report is ready.", report.TestName))
	return report, nil
}

// ForPatient returns the caller's own lab reports.
func (s *LabReportService) ForPatient(ctx context.Context, actor Actor) ([]models.LabReport, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.labReportRepo.ListByPatient(ctx, patient.ID)
}

// ForLab returns reports the caller's lab has uploaded.
func (s *LabReportService) ForLab(ctx context.Context, actor Actor) ([]models.LabReport, error) {
	lab, err := s.staffRepo.GetLabByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, ErrLabNotFound
	}
	return s.labReportRepo.ListByLab(ctx, lab.ID)
}
