package services

import (
	"MediCore/cache"
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"errors"
	"testing"
	"time"
)

// recordsEnv extends the appointment fixture with prescription, lab report
// and notification services.
type recordsEnv struct {
	*testEnv
	prescriptions *PrescriptionService
	labReports    *LabReportService
	notifications *NotificationService
	dashboards    *DashboardService

	lab      models.Lab
	labActor Actor
}

func newRecordsEnv(t *testing.T) *recordsEnv {
	t.Helper()
	base := newTestEnv(t)
	db := base.db

	disabledRepos := struct {
		prescriptions *repositories.PrescriptionRepository
		labReports    *repositories.LabReportRepository
		notifications *repositories.NotificationRepository
		staff         *repositories.StaffRepository
	}{
		prescriptions: repositories.NewPrescriptionRepository(db),
		labReports:    repositories.NewLabReportRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		staff:         repositories.NewStaffRepository(db),
	}

	disabled := cache.NewDisabled()
	doctorRepo := repositories.NewDoctorRepository(db, disabled)
	patientRepo := repositories.NewPatientRepository(db, disabled)
	appointmentRepo := repositories.NewAppointmentRepository(db, disabled)
	userRepo := repositories.NewUserRepository(db, disabled)

	notifications := NewNotificationService(disabledRepos.notifications, userRepo)

	env := &recordsEnv{testEnv: base}
	env.notifications = notifications
	env.prescriptions = NewPrescriptionService(
		disabledRepos.prescriptions, appointmentRepo, doctorRepo, patientRepo, notifications,
	)
	env.labReports = NewLabReportService(
		disabledRepos.labReports, appointmentRepo, patientRepo, disabledRepos.staff, notifications,
	)
	env.dashboards = NewDashboardService(
		appointmentRepo, disabledRepos.prescriptions, disabledRepos.labReports,
		doctorRepo, patientRepo, disabledRepos.staff,
	)

	labUser := models.User{Username: "pathlab", Email: "lab@example.com", Password: "x", RoleID: 5}
	mustCreate(t, db, &labUser)
	env.lab = models.Lab{UserID: labUser.ID, HospitalID: base.hospital.ID, Name: "Central Path Lab"}
	mustCreate(t, db, &env.lab)
	env.labActor = Actor{UserID: labUser.ID, Role: models.RoleLab}
	return env
}

func (e *recordsEnv) bookAppointment(t *testing.T, slot string) *models.Appointment {
	t.Helper()
	appointment, err := e.appointments.Book(context.Background(), e.patientActor, e.booking(slot))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	return appointment
}

// waitForNotifications polls for asynchronous notification rows.
func (e *recordsEnv) waitForNotifications(ctx context.Context, userID int64, want int) []models.Notification {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rows, err := e.notifications.List(ctx, userID)
		if err == nil && len(rows) >= want {
			return rows
		}
		time.Sleep(10 * time.Millisecond)
	}
	rows, _ := e.notifications.List(ctx, userID)
	return rows
}

func TestIssuePrescription(t *testing.T) {
	env := newRecordsEnv(t)
	ctx := context.Background()
	appointment := env.bookAppointment(t, "10:00-10:30")

	prescription, err := env.prescriptions.Issue(ctx, env.doctorActor, PrescriptionRequest{
		AppointmentID: appointment.ID,
		Medicines:     "Amoxicillin 500mg",
		Dosage:        "1 tablet twice daily",
		Instructions:  "After meals",
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if prescription.PatientID != env.patient.ID {
		t.Errorf("prescription patient = %d, want %d", prescription.PatientID, env.patient.ID)
	}
	if prescription.DoctorID != env.doctor.ID {
		t.Errorf("prescription doctor = %d, want %d", prescription.DoctorID, env.doctor.ID)
	}

	mine, err := env.prescriptions.ForPatient(ctx, env.patientActor)
	if err != nil {
		t.Fatalf("ForPatient returned error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 prescription for patient, got %d", len(mine))
	}

	rows := env.waitForNotifications(ctx, env.patientActor.UserID, 1)
	if len(rows) == 0 {
		t.Fatal("expected a prescription notification for the patient")
	}
	if rows[0].Kind != models.NotificationPrescriptionIssued {
		t.Errorf("notification kind = %q, want %q", rows[0].Kind, models.NotificationPrescriptionIssued)
	}
}

func TestIssuePrescriptionForeignAppointment(t *testing.T) {
	env := newRecordsEnv(t)
	ctx := context.Background()
	appointment := env.bookAppointment(t, "10:30-11:00")

	otherDoctorUser := models.User{Username: "drmehta", Email: "mehta@example.com", Password: "x", RoleID: 2}
	mustCreate(t, env.db, &otherDoctorUser)
	otherDoctor := models.Doctor{UserID: otherDoctorUser.ID, HospitalID: env.hospital.ID, FirstName: "Kiran", LastName: "Mehta"}
	mustCreate(t, env.db, &otherDoctor)

	_, err := env.prescriptions.Issue(ctx, Actor{UserID: otherDoctorUser.ID, Role: models.RoleDoctor}, PrescriptionRequest{
		AppointmentID: appointment.ID,
		Medicines:     "Ibuprofen",
	})
	if !errors.Is(err, ErrNotAppointmentOwner) {
		t.Fatalf("expected ErrNotAppointmentOwner, got %v", err)
	}
}

func TestUploadLabReport(t *testing.T) {
	env := newRecordsEnv(t)
	ctx := context.Background()
	appointment := env.bookAppointment(t, "11:00-11:30")

	report, err := env.labReports.Upload(ctx, env.labActor, LabReportRequest{
		PatientID:     env.patient.ID,
		AppointmentID: &appointment.ID,
		TestName:      "CBC",
		Result:        "within range",
	})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if report.LabID != env.lab.ID {
		t.Errorf("report lab = %d, want %d", report.LabID, env.lab.ID)
	}

	mine, err := env.labReports.ForPatient(ctx, env.patientActor)
	if err != nil {
		t.Fatalf("ForPatient returned error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 report for patient, got %d", len(mine))
	}

	uploaded, err := env.labReports.ForLab(ctx, env.labActor)
	if err != nil {
		t.Fatalf("ForLab returned error: %v", err)
	}
	if len(uploaded) != 1 {
		t.Fatalf("expected 1 uploaded report, got %d", len(uploaded))
	}

	// Non-lab callers are rejected.
	if _, err := env.labReports.Upload(ctx, env.doctorActor, LabReportRequest{PatientID: env.patient.ID, TestName: "CBC"}); !errors.Is(err, ErrLabNotFound) {
		t.Errorf("expected ErrLabNotFound for non-lab caller, got %v", err)
	}
}

func TestUploadLabReportMismatchedAppointment(t *testing.T) {
	env := newRecordsEnv(t)
	ctx := context.Background()
	appointment := env.bookAppointment(t, "11:30-12:00")

	otherPatientUser := models.User{Username: "ravi", Email: "ravi@example.com", Password: "x", RoleID: 4}
	mustCreate(t, env.db, &otherPatientUser)
	otherPatient := models.Patient{UserID: otherPatientUser.ID, FirstName: "Ravi", LastName: "Nair", Sex: "Male"}
	mustCreate(t, env.db, &otherPatient)

	_, err := env.labReports.Upload(ctx, env.labActor, LabReportRequest{
		PatientID:     otherPatient.ID,
		AppointmentID: &appointment.ID,
		TestName:      "Lipid Panel",
	})
	if !errors.Is(err, ErrNotAppointmentOwner) {
		t.Fatalf("expected ErrNotAppointmentOwner for mismatched patient, got %v", err)
	}
}

func TestNotificationMarkRead(t *testing.T) {
	env := newRecordsEnv(t)
	ctx := context.Background()

	env.notifications.Notify(env.patientActor.UserID, models.NotificationAppointmentConfirmed, "confirmed")
	rows := env.waitForNotifications(ctx, env.patientActor.UserID, 1)
	if len(rows) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rows))
	}
	if rows[0].Read {
		t.Error("new notification should be unread")
	}

	if err := env.notifications.MarkRead(ctx, rows[0].ID, env.patientActor.UserID); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}

	// Another user cannot mark it.
	if err := env.notifications.MarkRead(ctx, rows[0].ID, env.doctorActor.UserID); err == nil {
		t.Error("expected error marking another user's notification")
	}
}

func TestDashboards(t *testing.T) {
	env := newRecordsEnv(t)
	ctx := context.Background()

	appointment := env.bookAppointment(t, "12:00-12:30")
	if _, err := env.appointments.Confirm(ctx, env.recepActor, appointment.ID); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	env.bookAppointment(t, "12:30-13:00")

	if _, err := env.labReports.Upload(ctx, env.labActor, LabReportRequest{
		PatientID: env.patient.ID,
		TestName:  "CBC",
	}); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	admin, err := env.dashboards.ForAdmin(ctx, env.hospital.ID)
	if err != nil {
		t.Fatalf("ForAdmin returned error: %v", err)
	}
	if admin.TotalAppointments != 2 {
		t.Errorf("total appointments = %d, want 2", admin.TotalAppointments)
	}
	if admin.PendingAppointments != 1 {
		t.Errorf("pending appointments = %d, want 1", admin.PendingAppointments)
	}
	if admin.ConfirmedAppointments != 1 {
		t.Errorf("confirmed appointments = %d, want 1", admin.ConfirmedAppointments)
	}
	if admin.LabReports != 1 {
		t.Errorf("lab reports = %d, want 1", admin.LabReports)
	}

	recep, err := env.dashboards.ForReceptionist(ctx, env.recepActor.UserID)
	if err != nil {
		t.Fatalf("ForReceptionist returned error: %v", err)
	}
	if recep.PendingQueue != 1 {
		t.Errorf("pending queue = %d, want 1", recep.PendingQueue)
	}

	patient, err := env.dashboards.ForPatient(ctx, env.patientActor.UserID)
	if err != nil {
		t.Fatalf("ForPatient returned error: %v", err)
	}
	if patient.UpcomingAppointments != 2 {
		t.Errorf("upcoming appointments = %d, want 2", patient.UpcomingAppointments)
	}
	if patient.LabReports != 1 {
		t.Errorf("patient lab reports = %d, want 1", patient.LabReports)
	}

	lab, err := env.dashboards.ForLab(ctx, env.labActor.UserID)
	if err != nil {
		t.Fatalf("ForLab returned error: %v", err)
	}
	if lab.ReportsUploaded != 1 {
		t.Errorf("reports uploaded = %d, want 1", lab.ReportsUploaded)
	}

	if _, err := env.dashboards.ForLab(ctx, env.patientActor.UserID); !errors.Is(err, ErrLabNotFound) {
		t.Errorf("expected ErrLabNotFound for non-lab user, got %v", err)
	}
}
