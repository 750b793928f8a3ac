package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"time"
)

// Dashboard summaries are read-only projections: filtered counts over
// appointment, prescription and lab-report rows per role.

type AdminSummary struct {
	TotalAppointments     int64 `json:"total_appointments"`
	PendingAppointments   int64 `json:"pending_appointments"`
	ConfirmedAppointments int64 `json:"confirmed_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	LabReports            int64 `json:"lab_reports"`
}

type DoctorSummary struct {
	TodayConfirmed int64 `json:"today_confirmed"`
	WeekCompleted  int64 `json:"week_completed"`
	WeekTotal      int64 `json:"week_total"`
}

type ReceptionistSummary struct {
	PendingQueue   int64 `json:"pending_queue"`
	TodayConfirmed int64 `json:"today_confirmed"`
}

type PatientSummary struct {
	UpcomingAppointments int64 `json:"upcoming_appointments"`
	Prescriptions        int64 `json:"prescriptions"`
	LabReports           int64 `json:"lab_reports"`
}

type LabSummary struct {
	ReportsUploaded int64 `json:"reports_uploaded"`
}

type DashboardService struct {
	appointmentRepo  *repositories.AppointmentRepository
	prescriptionRepo *repositories.PrescriptionRepository
	labReportRepo    *repositories.LabReportRepository
	doctorRepo       *repositories.DoctorRepository
	patientRepo      *repositories.PatientRepository
	staffRepo        *repositories.StaffRepository
}

func NewDashboardService(
	appointmentRepo *repositories.AppointmentRepository,
	prescriptionRepo *repositories.PrescriptionRepository,
	labReportRepo *repositories.LabReportRepository,
	doctorRepo *repositories.DoctorRepository,
	patientRepo *repositories.PatientRepository,
	staffRepo *repositories.StaffRepository,
) *DashboardService {
	return &DashboardService{
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		labReportRepo:    labReportRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		staffRepo:        staffRepo,
	}
}

// ForAdmin summarizes one hospital's activity.
func (s *DashboardService) ForAdmin(ctx context.Context, hospitalID uint) (*AdminSummary, error) {
	summary := &AdminSummary{}
	var err error
	if summary.TotalAppointments, err = s.appointmentRepo.CountByStatus(ctx, hospitalID, ""); err != nil {
		return nil, err
	}
	if summary.PendingAppointments, err = s.appointmentRepo.CountByStatus(ctx, hospitalID, models.StatusPending); err != nil {
		return nil, err
	}
	if summary.ConfirmedAppointments, err = s.appointmentRepo.CountByStatus(ctx, hospitalID, models.StatusConfirmed); err != nil {
		return nil, err
	}
	if summary.CompletedAppointments, err = s.appointmentRepo.CountByStatus(ctx, hospitalID, models.StatusCompleted); err != nil {
		return nil, err
	}
	if summary.LabReports, err = s.labReportRepo.CountByHospital(ctx, hospitalID); err != nil {
		return nil, err
	}
	return summary, nil
}

// ForDoctor summarizes the caller's own schedule.
func (s *DashboardService) ForDoctor(ctx context.Context, userID int64) (*DoctorSummary, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	today := time.Now().Format(DateLayout)
	weekAgo := time.Now().AddDate(0, 0, -7).Format(DateLayout)

	summary := &DoctorSummary{}
	if summary.TodayConfirmed, err = s.appointmentRepo.CountForDoctor(ctx, doctor.ID, today, today, models.StatusConfirmed); err != nil {
		return nil, err
	}
	if summary.WeekCompleted, err = s.appointmentRepo.CountForDoctor(ctx, doctor.ID, weekAgo, today, models.StatusCompleted); err != nil {
		return nil, err
	}
	if summary.WeekTotal, err = s.appointmentRepo.CountForDoctor(ctx, doctor.ID, weekAgo, today, ""); err != nil {
		return nil, err
	}
	return summary, nil
}

// ForReceptionist summarizes the caller's hospital queue.
func (s *DashboardService) ForReceptionist(ctx context.Context, userID int64) (*ReceptionistSummary, error) {
	receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if receptionist == nil {
		return nil, ErrNotReceptionist
	}

	today := time.Now().Format(DateLayout)
	summary := &ReceptionistSummary{}
	if summary.PendingQueue, err = s.appointmentRepo.CountByStatus(ctx, receptionist.HospitalID, models.StatusPending); err != nil {
		return nil, err
	}
	if summary.TodayConfirmed, err = s.appointmentRepo.CountForHospitalDate(ctx, receptionist.HospitalID, today, models.StatusConfirmed); err != nil {
		return nil, err
	}
	return summary, nil
}

// ForPatient summarizes the caller's own records.
func (s *DashboardService) ForPatient(ctx context.Context, userID int64) (*PatientSummary, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	today := time.Now().Format(DateLayout)
	summary := &PatientSummary{}
	if summary.UpcomingAppointments, err = s.appointmentRepo.CountUpcomingForPatient(ctx, patient.ID, today); err != nil {
		return nil, err
	}
	if summary.Prescriptions, err = s.prescriptionRepo.CountByPatient(ctx, patient.ID); err != nil {
		return nil, err
	}
	if summary.LabReports, err = s.labReportRepo.CountByPatient(ctx, patient.ID); err != nil {
		return nil, err
	}
	return summary, nil
}

// ForLab summarizes the caller's uploads.
func (s *DashboardService) ForLab(ctx context.Context, userID int64) (*LabSummary, error) {
	lab, err := s.staffRepo.GetLabByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, ErrLabNotFound
	}

	summary := &LabSummary{}
	if summary.ReportsUploaded, err = s.labReportRepo.CountByLab(ctx, lab.ID); err != nil {
		return nil, err
	}
	return summary, nil
}
