package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// slotPattern matches the canonical half-hour bucket format, e.g. "10:00-10:30".
var slotPattern = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)

// Business errors surfaced to handlers. Handlers map these to HTTP statuses.
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrHospitalNotFound    = errors.New("hospital not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrNotReceptionist     = errors.New("caller has no receptionist record")
	ErrWrongHospital       = errors.New("appointment belongs to a different hospital")
	ErrNotPending          = errors.New("appointment is not pending")
	ErrNotConfirmed        = errors.New("appointment is not confirmed")
	ErrNotAppointmentOwner = errors.New("appointment belongs to a different user")
	ErrInvalidSlot         = errors.New("time slot is outside the doctor's working hours")
	ErrInvalidDate         = errors.New("date must be formatted as YYYY-MM-DD")

	// ErrSlotTaken mirrors the repository error so handlers only import services.
	ErrSlotTaken = repositories.ErrSlotTaken
)

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID int64
	Role   string
}

// BookingRequest is the validated payload for creating an appointment.
// PatientID is only honored for receptionist walk-ins; patients always book
// for themselves.
type BookingRequest struct {
	PatientID  uint   `json:"patient_id"`
	DoctorID   uint   `json:"doctor_id"`
	HospitalID uint   `json:"hospital_id"`
	Date       string `json:"appointment_date"`
	TimeSlot   string `json:"time_slot"`
	Reason     string `json:"reason"`
	Priority   string `json:"priority"`
	Symptoms   string `json:"symptoms"`
	Notes      string `json:"notes"`
}

func (r BookingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID, validation.Required),
		validation.Field(&r.HospitalID, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&r.TimeSlot, validation.Required, validation.Match(slotPattern)),
		validation.Field(&r.Priority, validation.In(models.PriorityEmergency, models.PriorityUrgent, models.PriorityNormal)),
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}

type AppointmentService struct {
	appointmentRepo *repositories.AppointmentRepository
	doctorRepo      *repositories.DoctorRepository
	patientRepo     *repositories.PatientRepository
	hospitalRepo    *repositories.HospitalRepository
	staffRepo       *repositories.StaffRepository
	schedule        *ScheduleService
	notifications   *NotificationService
}

func NewAppointmentService(
	appointmentRepo *repositories.AppointmentRepository,
	doctorRepo *repositories.DoctorRepository,
	patientRepo *repositories.PatientRepository,
	hospitalRepo *repositories.HospitalRepository,
	staffRepo *repositories.StaffRepository,
	schedule *ScheduleService,
	notifications *NotificationService,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		hospitalRepo:    hospitalRepo,
		staffRepo:       staffRepo,
		schedule:        schedule,
		notifications:   notifications,
	}
}

// Book creates an appointment in pending status. Patients book for
// themselves; receptionists book walk-ins for an existing patient of their
// hospital.
func (s *AppointmentService) Book(ctx context.Context, actor Actor, req BookingRequest) (*models.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appointmentType := models.TypeOnline
	patientID := req.PatientID

	switch actor.Role {
	case models.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		patientID = patient.ID
	case models.RoleReceptionist:
		appointmentType = models.TypeWalkIn
		receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if receptionist == nil {
			return nil, ErrNotReceptionist
		}
		if receptionist.HospitalID != req.HospitalID {
			return nil, ErrWrongHospital
		}
		if patientID == 0 {
			return nil, validation.Errors{"patient_id": errors.New("cannot be blank for walk-in bookings")}
		}
		patient, err := s.patientRepo.GetByID(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
	default:
		return nil, fmt.Errorf("role %q cannot book appointments", actor.Role)
	}

	doctor, err := s.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.HospitalID != req.HospitalID {
		return nil, validation.Errors{"hospital_id": errors.New("doctor does not work at this hospital")}
	}

	hospital, err := s.hospitalRepo.GetByID(ctx, req.HospitalID)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	valid, err := s.schedule.ValidSlot(ctx, req.DoctorID, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidSlot
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	appointment := &models.Appointment{
		PatientID:  patientID,
		DoctorID:   req.DoctorID,
		HospitalID: req.HospitalID,
		Date:       req.Date,
		Time:       slotDisplayTime(req.TimeSlot),
		TimeSlot:   req.TimeSlot,
		Reason:     req.Reason,
		Type:       appointmentType,
		Priority:   priority,
		Symptoms:   req.Symptoms,
		Notes:      req.Notes,
		CreatedBy:  actor.UserID,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Confirm transitions a pending appointment to confirmed. Only a receptionist
// of the owning hospital may confirm; notifications to patient and doctor are
// best effort.
func (s *AppointmentService) Confirm(ctx context.Context, actor Actor, appointmentID uint) (*models.Appointment, error) {
	receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if receptionist == nil {
		return nil, ErrNotReceptionist
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.HospitalID != receptionist.HospitalID {
		return nil, ErrWrongHospital
	}
	if appointment.Status != models.StatusPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	appointment.Status = models.StatusConfirmed
	appointment.ReceptionistID = &receptionist.ID
	appointment.ConfirmedAt = &now
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifyParties(ctx, appointment, models.NotificationAppointmentConfirmed,
		fmt.Sprintf("Appointment on %s at %s has been confirmed.", appointment.Date, appointment.TimeSlot))
	return appointment, nil
}

// Complete marks a confirmed appointment as completed. Only the appointment's
// doctor may complete it.
func (s *AppointmentService) Complete(ctx context.Context, actor Actor, appointmentID uint) (*models.Appointment, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return nil, ErrNotAppointmentOwner
	}
	if appointment.Status != models.StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	now := time.Now()
	appointment.Status = models.StatusCompleted
	appointment.CompletedAt = &now
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel marks an appointment cancelled and releases its slot. The booking
// patient, a receptionist of the owning hospital, or an admin may cancel.
func (s *AppointmentService) Cancel(ctx context.Context, actor Actor, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch actor.Role {
	case models.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if patient == nil || appointment.PatientID != patient.ID {
			return nil, ErrNotAppointmentOwner
		}
	case models.RoleReceptionist:
		receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if receptionist == nil {
			return nil, ErrNotReceptionist
		}
		if appointment.HospitalID != receptionist.HospitalID {
			return nil, ErrWrongHospital
		}
	case models.RoleAdmin:
		// admins may cancel any appointment
	default:
		return nil, fmt.Errorf("role %q cannot cancel appointments", actor.Role)
	}

	if appointment.Status != models.StatusPending && appointment.Status != models.StatusConfirmed {
		return nil, fmt.Errorf("cannot cancel a %s appointment", appointment.Status)
	}

	appointment.Status = models.StatusCancelled
	appointment.SlotKey = nil
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifyParties(ctx, appointment, models.NotificationAppointmentCancelled,
		fmt.Sprintf("Appointment on %s at %s has been cancelled.", appointment.Date, appointment.TimeSlot))
	return appointment, nil
}

// MarkNoShow flags a confirmed appointment whose patient did not arrive.
// Receptionist-only; the slot stays occupied for the record.
func (s *AppointmentService) MarkNoShow(ctx context.Context, actor Actor, appointmentID uint) (*models.Appointment, error) {
	receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if receptionist == nil {
		return nil, ErrNotReceptionist
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.HospitalID != receptionist.HospitalID {
		return nil, ErrWrongHospital
	}
	if appointment.Status != models.StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	appointment.Status = models.StatusNoShow
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// PendingQueue returns the pending appointments for the caller's hospital.
func (s *AppointmentService) PendingQueue(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if receptionist == nil {
		return nil, ErrNotReceptionist
	}
	return s.appointmentRepo.ListPendingByHospital(ctx, receptionist.HospitalID)
}

// TodayForDoctor returns the caller's confirmed appointments for today.
func (s *AppointmentService) TodayForDoctor(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	today := time.Now().Format(DateLayout)
	return s.appointmentRepo.ListForDoctorDate(ctx, doctor.ID, today, models.StatusConfirmed)
}

// ForPatient returns the caller's own appointments.
func (s *AppointmentService) ForPatient(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.appointmentRepo.ListByPatient(ctx, patient.ID)
}

// Get returns one appointment, scoped to the caller's role.
func (s *AppointmentService) Get(ctx context.Context, actor Actor, appointmentID uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch actor.Role {
	case models.RoleAdmin:
		return appointment, nil
	case models.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if patient == nil || appointment.PatientID != patient.ID {
			return nil, ErrNotAppointmentOwner
		}
	case models.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if doctor == nil || appointment.DoctorID != doctor.ID {
			return nil, ErrNotAppointmentOwner
		}
	case models.RoleReceptionist:
		receptionist, err := s.staffRepo.GetReceptionistByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if receptionist == nil || appointment.HospitalID != receptionist.HospitalID {
			return nil, ErrWrongHospital
		}
	default:
		return nil, ErrNotAppointmentOwner
	}
	return appointment, nil
}

// notifyParties sends best-effort notifications to the appointment's patient
// and doctor user accounts.
func (s *AppointmentService) notifyParties(ctx context.Context, appointment *models.Appointment, kind, message string) {
	if s.notifications == nil {
		return
	}
	patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID)
	if err == nil && patient != nil {
		s.notifications.Notify(patient.UserID, kind, message)
	}
	doctor, err := s.doctorRepo.GetByID(ctx, appointment.DoctorID)
	if err == nil && doctor != nil {
		s.notifications.Notify(doctor.UserID, kind, message)
	}
}

// slotDisplayTime derives the human-facing time from the slot string.
func slotDisplayTime(timeSlot string) string {
	if idx := strings.Index(timeSlot, "-"); idx > 0 {
		return timeSlot[:idx]
	}
	return timeSlot
}
