package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"context"
	"fmt"
	"time"
)

// Default working hours used when a doctor has no schedule record.
const (
	DefaultStartTime  = "10:00"
	DefaultEndTime    = "20:00"
	DefaultBreakStart = "13:00"
	DefaultBreakEnd   = "14:00"

	SlotMinutes = 30

	DateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// SlotInfo is one half-hour bucket with its booking state for a given date.
type SlotInfo struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type ScheduleService struct {
	doctorRepo      *repositories.DoctorRepository
	appointmentRepo *repositories.AppointmentRepository
}

func NewScheduleService(doctorRepo *repositories.DoctorRepository, appointmentRepo *repositories.AppointmentRepository) *ScheduleService {
	return &ScheduleService{doctorRepo: doctorRepo, appointmentRepo: appointmentRepo}
}

// GenerateSlots builds the canonical half-hour slot strings for a working
// window, excluding the break window. Times are "HH:MM".
func GenerateSlots(start, end, breakStart, breakEnd string) ([]string, error) {
	startT, err := time.Parse(timeLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	endT, err := time.Parse(timeLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", end, err)
	}
	if !startT.Before(endT) {
		return nil, fmt.Errorf("start time %q is not before end time %q", start, end)
	}

	var breakStartT, breakEndT time.Time
	hasBreak := breakStart != "" && breakEnd != ""
	if hasBreak {
		breakStartT, err = time.Parse(timeLayout, breakStart)
		if err != nil {
			return nil, fmt.Errorf("invalid break start %q: %w", breakStart, err)
		}
		breakEndT, err = time.Parse(timeLayout, breakEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid break end %q: %w", breakEnd, err)
		}
	}

	var slots []string
	step := SlotMinutes * time.Minute
	for t := startT; t.Add(step).Compare(endT) <= 0; t = t.Add(step) {
		slotEnd := t.Add(step)
		if hasBreak && t.Compare(breakStartT) >= 0 && t.Before(breakEndT) {
			continue
		}
		slots = append(slots, fmt.Sprintf("%s-%s", t.Format(timeLayout), slotEnd.Format(timeLayout)))
	}
	return slots, nil
}

// DefaultSlots returns the fallback slot list for doctors without a
// working-hours record.
func DefaultSlots() []string {
	slots, err := GenerateSlots(DefaultStartTime, DefaultEndTime, DefaultBreakStart, DefaultBreakEnd)
	if err != nil {
		// The default constants are fixed; this cannot fail at runtime.
		panic(err)
	}
	return slots
}

// SlotsForDoctor returns the doctor's slot list, falling back to the default
// working hours when no schedule record exists or it is malformed.
func (s *ScheduleService) SlotsForDoctor(ctx context.Context, doctorID uint) ([]string, error) {
	schedule, err := s.doctorRepo.GetSchedule(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return DefaultSlots(), nil
	}
	slots, err := GenerateSlots(schedule.StartTime, schedule.EndTime, schedule.BreakStart, schedule.BreakEnd)
	if err != nil {
		return DefaultSlots(), nil
	}
	return slots, nil
}

// Availability returns the doctor's slot list for a date with per-slot
// booking state. A slot is taken iff a non-cancelled appointment matches it.
func (s *ScheduleService) Availability(ctx context.Context, doctorID uint, date string) ([]SlotInfo, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slots, err := s.SlotsForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	taken, err := s.appointmentRepo.TakenSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	takenSet := make(map[string]struct{}, len(taken))
	for _, slot := range taken {
		takenSet[slot] = struct{}{}
	}

	infos := make([]SlotInfo, 0, len(slots))
	for _, slot := range slots {
		_, isTaken := takenSet[slot]
		infos = append(infos, SlotInfo{Slot: slot, Available: !isTaken})
	}
	return infos, nil
}

// ValidSlot reports whether the slot string belongs to the doctor's slot list.
func (s *ScheduleService) ValidSlot(ctx context.Context, doctorID uint, timeSlot string) (bool, error) {
	slots, err := s.SlotsForDoctor(ctx, doctorID)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

// SetSchedule validates and stores a doctor's working hours.
func (s *ScheduleService) SetSchedule(ctx context.Context, schedule *models.DoctorSchedule) error {
	if _, err := GenerateSlots(schedule.StartTime, schedule.EndTime, schedule.BreakStart, schedule.BreakEnd); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}
	doctor, err := s.doctorRepo.GetByID(ctx, schedule.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	return s.doctorRepo.UpsertSchedule(ctx, schedule)
}
