package services

import (
	"MediCore/cache"
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the service stack against an in-memory database with caching
// and notifications disabled.
type testEnv struct {
	db           *gorm.DB
	appointments *AppointmentService
	schedule     *ScheduleService
	date         string

	hospital      models.Hospital
	otherHospital models.Hospital
	doctor        models.Doctor
	patient       models.Patient
	receptionist  models.Receptionist
	otherRecep    models.Receptionist

	patientActor Actor
	recepActor   Actor
	doctorActor  Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// A second connection to :memory: would get its own empty database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.Role{}, &models.User{}, &models.Permission{}, &models.RolePermission{},
		&models.Hospital{}, &models.Doctor{}, &models.DoctorSchedule{},
		&models.Patient{}, &models.Receptionist{}, &models.Lab{},
		&models.Appointment{}, &models.Prescription{}, &models.LabReport{},
		&models.Notification{}, &models.OtpVerification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := models.SeedRoles(db); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	disabled := cache.NewDisabled()
	doctorRepo := repositories.NewDoctorRepository(db, disabled)
	patientRepo := repositories.NewPatientRepository(db, disabled)
	hospitalRepo := repositories.NewHospitalRepository(db, disabled)
	staffRepo := repositories.NewStaffRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db, disabled)

	env := &testEnv{db: db, date: time.Now().AddDate(0, 0, 7).Format(DateLayout)}
	env.schedule = NewScheduleService(doctorRepo, appointmentRepo)
	env.appointments = NewAppointmentService(
		appointmentRepo, doctorRepo, patientRepo, hospitalRepo, staffRepo,
		env.schedule, nil,
	)

	env.hospital = models.Hospital{Name: "City General", City: "Pune"}
	env.otherHospital = models.Hospital{Name: "Lakeside Clinic", City: "Mumbai"}
	mustCreate(t, db, &env.hospital)
	mustCreate(t, db, &env.otherHospital)

	doctorUser := models.User{Username: "drshah", Email: "drshah@example.com", Password: "x", RoleID: 2}
	patientUser := models.User{Username: "asha", Email: "asha@example.com", Password: "x", RoleID: 4}
	recepUser := models.User{Username: "frontdesk", Email: "desk@example.com", Password: "x", RoleID: 3}
	otherRecepUser := models.User{Username: "lakedesk", Email: "lakedesk@example.com", Password: "x", RoleID: 3}
	mustCreate(t, db, &doctorUser)
	mustCreate(t, db, &patientUser)
	mustCreate(t, db, &recepUser)
	mustCreate(t, db, &otherRecepUser)

	env.doctor = models.Doctor{UserID: doctorUser.ID, HospitalID: env.hospital.ID, FirstName: "Rohan", LastName: "Shah"}
	env.patient = models.Patient{UserID: patientUser.ID, FirstName: "Asha", LastName: "Verma", Sex: "Female"}
	env.receptionist = models.Receptionist{UserID: recepUser.ID, HospitalID: env.hospital.ID, FirstName: "Neha", LastName: "Kulkarni"}
	env.otherRecep = models.Receptionist{UserID: otherRecepUser.ID, HospitalID: env.otherHospital.ID, FirstName: "Vikram", LastName: "Joshi"}
	mustCreate(t, db, &env.doctor)
	mustCreate(t, db, &env.patient)
	mustCreate(t, db, &env.receptionist)
	mustCreate(t, db, &env.otherRecep)

	env.patientActor = Actor{UserID: patientUser.ID, Role: models.RolePatient}
	env.recepActor = Actor{UserID: recepUser.ID, Role: models.RoleReceptionist}
	env.doctorActor = Actor{UserID: doctorUser.ID, Role: models.RoleDoctor}
	return env
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}

func (e *testEnv) booking(slot string) BookingRequest {
	return BookingRequest{
		DoctorID:   e.doctor.ID,
		HospitalID: e.hospital.ID,
		Date:       e.date,
		TimeSlot:   slot,
		Reason:     "checkup",
	}
}

func TestAvailabilityFreshDoctor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	slots, err := env.schedule.Availability(ctx, env.doctor.ID, env.date)
	if err != nil {
		t.Fatalf("Availability returned error: %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if !slot.Available {
			t.Errorf("slot %s should be available on a fresh day", slot.Slot)
		}
	}
}

func TestAvailabilityInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.schedule.Availability(ctx, env.doctor.ID, "15-09-2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := env.schedule.Availability(ctx, 9999, env.date); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestBookMarksSlotTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("10:00-10:30"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if appointment.Status != models.StatusPending {
		t.Errorf("new appointment status = %q, want pending", appointment.Status)
	}
	if appointment.Type != models.TypeOnline {
		t.Errorf("patient booking type = %q, want online", appointment.Type)
	}
	if appointment.Priority != models.PriorityNormal {
		t.Errorf("default priority = %q, want normal", appointment.Priority)
	}

	slots, err := env.schedule.Availability(ctx, env.doctor.ID, env.date)
	if err != nil {
		t.Fatalf("Availability returned error: %v", err)
	}
	for _, slot := range slots {
		if slot.Slot == "10:00-10:30" && slot.Available {
			t.Error("booked slot still reported available")
		}
		if slot.Slot == "10:30-11:00" && !slot.Available {
			t.Error("unrelated slot reported taken")
		}
	}
}

func TestBookRejectsDoubleBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("11:00-11:30")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("11:00-11:30")); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for duplicate booking, got %v", err)
	}
}

func TestBookRejectsInvalidSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Inside break window.
	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("13:00-13:30")); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("expected ErrInvalidSlot for break slot, got %v", err)
	}
	// Not a canonical bucket.
	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("10:15-10:45")); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("expected ErrInvalidSlot for off-grid slot, got %v", err)
	}
}

func TestBookWalkInByReceptionist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := env.booking("12:00-12:30")
	req.PatientID = env.patient.ID
	appointment, err := env.appointments.Book(ctx, env.recepActor, req)
	if err != nil {
		t.Fatalf("walk-in booking failed: %v", err)
	}
	if appointment.Type != models.TypeWalkIn {
		t.Errorf("walk-in type = %q, want walk-in", appointment.Type)
	}

	// Missing patient_id is rejected.
	if _, err := env.appointments.Book(ctx, env.recepActor, env.booking("12:30-13:00")); err == nil {
		t.Error("expected error for walk-in without patient_id")
	}

	// Receptionist cannot book into another hospital.
	foreign := env.booking("14:00-14:30")
	foreign.PatientID = env.patient.ID
	foreign.HospitalID = env.otherHospital.ID
	if _, err := env.appointments.Book(ctx, env.recepActor, foreign); !errors.Is(err, ErrWrongHospital) {
		t.Errorf("expected ErrWrongHospital, got %v", err)
	}
}

func TestConfirmLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("15:00-15:30"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	confirmed, err := env.appointments.Confirm(ctx, env.recepActor, appointment.ID)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", confirmed.Status)
	}
	if confirmed.ReceptionistID == nil || *confirmed.ReceptionistID != env.receptionist.ID {
		t.Error("confirming receptionist not recorded")
	}
	if confirmed.ConfirmedAt == nil {
		t.Error("ConfirmedAt not set")
	}

	// Confirming a non-pending appointment is an error.
	if _, err := env.appointments.Confirm(ctx, env.recepActor, appointment.ID); !errors.Is(err, ErrNotPending) {
		t.Errorf("expected ErrNotPending on second confirm, got %v", err)
	}

	// Persisting the transition must not write back the partially loaded
	// patient and doctor rows.
	var patient models.Patient
	if err := env.db.First(&patient, env.patient.ID).Error; err != nil {
		t.Fatalf("failed to reload patient: %v", err)
	}
	if patient.Sex != "Female" || patient.FirstName != "Asha" {
		t.Errorf("patient row modified by confirm: sex=%q first_name=%q", patient.Sex, patient.FirstName)
	}
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.appointments.Book(ctx, env.patientActor, env.booking("10:00-10:30"))
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
		default:
			t.Errorf("unexpected booking error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly 1 successful booking, got %d", wins)
	}
}

func TestConfirmWrongHospital(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("16:00-16:30"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	otherActor := Actor{UserID: env.otherRecep.UserID, Role: models.RoleReceptionist}
	if _, err := env.appointments.Confirm(ctx, otherActor, appointment.ID); !errors.Is(err, ErrWrongHospital) {
		t.Fatalf("expected ErrWrongHospital, got %v", err)
	}
}

func TestCompleteRequiresOwningDoctor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("17:00-17:30"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	// Completing a pending appointment is rejected.
	if _, err := env.appointments.Complete(ctx, env.doctorActor, appointment.ID); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed, got %v", err)
	}

	if _, err := env.appointments.Confirm(ctx, env.recepActor, appointment.ID); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	completed, err := env.appointments.Complete(ctx, env.doctorActor, appointment.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
}

func TestCancelFreesSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("18:00-18:30"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	cancelled, err := env.appointments.Cancel(ctx, env.patientActor, appointment.ID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}

	// The slot is bookable again.
	rebooked, err := env.appointments.Book(ctx, env.patientActor, env.booking("18:00-18:30"))
	if err != nil {
		t.Fatalf("rebooking freed slot failed: %v", err)
	}
	if rebooked.ID == appointment.ID {
		t.Error("rebooking reused the cancelled row")
	}

	// A cancelled appointment cannot be cancelled again.
	if _, err := env.appointments.Cancel(ctx, env.patientActor, appointment.ID); err == nil {
		t.Error("expected error cancelling twice")
	}
}

func TestMarkNoShowKeepsSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("19:00-19:30"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if _, err := env.appointments.Confirm(ctx, env.recepActor, appointment.ID); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	marked, err := env.appointments.MarkNoShow(ctx, env.recepActor, appointment.ID)
	if err != nil {
		t.Fatalf("MarkNoShow returned error: %v", err)
	}
	if marked.Status != models.StatusNoShow {
		t.Errorf("status = %q, want no-show", marked.Status)
	}

	// No-show keeps the slot occupied for the record.
	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("19:00-19:30")); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken after no-show, got %v", err)
	}
}

func TestPendingQueueScopedToHospital(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("10:30-11:00")); err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	queue, err := env.appointments.PendingQueue(ctx, env.recepActor)
	if err != nil {
		t.Fatalf("PendingQueue returned error: %v", err)
	}
	if len(queue) != 1 {
		t.Fatalf("expected 1 pending appointment, got %d", len(queue))
	}

	otherActor := Actor{UserID: env.otherRecep.UserID, Role: models.RoleReceptionist}
	otherQueue, err := env.appointments.PendingQueue(ctx, otherActor)
	if err != nil {
		t.Fatalf("PendingQueue returned error: %v", err)
	}
	if len(otherQueue) != 0 {
		t.Fatalf("other hospital queue should be empty, got %d", len(otherQueue))
	}
}

func TestGetScopedByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	appointment, err := env.appointments.Book(ctx, env.patientActor, env.booking("11:30-12:00"))
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	if _, err := env.appointments.Get(ctx, env.patientActor, appointment.ID); err != nil {
		t.Errorf("owner patient should read own appointment: %v", err)
	}
	if _, err := env.appointments.Get(ctx, env.doctorActor, appointment.ID); err != nil {
		t.Errorf("owning doctor should read appointment: %v", err)
	}

	otherActor := Actor{UserID: env.otherRecep.UserID, Role: models.RoleReceptionist}
	if _, err := env.appointments.Get(ctx, otherActor, appointment.ID); !errors.Is(err, ErrWrongHospital) {
		t.Errorf("expected ErrWrongHospital for foreign receptionist, got %v", err)
	}
}

func TestCustomScheduleOverridesDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.schedule.SetSchedule(ctx, &models.DoctorSchedule{
		DoctorID:  env.doctor.ID,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	if err != nil {
		t.Fatalf("SetSchedule returned error: %v", err)
	}

	slots, err := env.schedule.Availability(ctx, env.doctor.ID, env.date)
	if err != nil {
		t.Fatalf("Availability returned error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots for custom schedule, got %d", len(slots))
	}

	// A default-hours slot outside the custom window is now invalid.
	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("15:00-15:30")); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("expected ErrInvalidSlot outside custom hours, got %v", err)
	}
	if _, err := env.appointments.Book(ctx, env.patientActor, env.booking("09:00-09:30")); err != nil {
		t.Errorf("booking inside custom hours failed: %v", err)
	}
}

func TestSetScheduleRejectsBadWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.schedule.SetSchedule(ctx, &models.DoctorSchedule{
		DoctorID:  env.doctor.ID,
		StartTime: "14:00",
		EndTime:   "09:00",
	})
	if err == nil {
		t.Fatal("expected error for inverted schedule window")
	}
}
