package services

import (
	"testing"
)

func TestGenerateSlotsDefaultHours(t *testing.T) {
	slots, err := GenerateSlots(DefaultStartTime, DefaultEndTime, DefaultBreakStart, DefaultBreakEnd)
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("expected 18 default slots, got %d", len(slots))
	}
	if slots[0] != "10:00-10:30" {
		t.Errorf("first slot = %q, want 10:00-10:30", slots[0])
	}
	if slots[len(slots)-1] != "19:30-20:00" {
		t.Errorf("last slot = %q, want 19:30-20:00", slots[len(slots)-1])
	}
	for _, slot := range slots {
		if slot == "13:00-13:30" || slot == "13:30-14:00" {
			t.Errorf("break slot %q should be excluded", slot)
		}
	}
}

func TestGenerateSlotsCustomHoursNoBreak(t *testing.T) {
	slots, err := GenerateSlots("09:00", "12:00", "", "")
	if err != nil {
		t.Fatalf("GenerateSlots returned error: %v", err)
	}
	want := []string{
		"09:00-09:30", "09:30-10:00", "10:00-10:30",
		"10:30-11:00", "11:00-11:30", "11:30-12:00",
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, slot := range want {
		if slots[i] != slot {
			t.Errorf("slot[%d] = %q, want %q", i, slots[i], slot)
		}
	}
}

func TestGenerateSlotsInvalidWindow(t *testing.T) {
	if _, err := GenerateSlots("18:00", "10:00", "", ""); err == nil {
		t.Error("expected error when start is after end")
	}
	if _, err := GenerateSlots("bogus", "12:00", "", ""); err == nil {
		t.Error("expected error for malformed start time")
	}
	if _, err := GenerateSlots("09:00", "12:00", "nope", "10:00"); err == nil {
		t.Error("expected error for malformed break start")
	}
}

func TestDefaultSlotsStable(t *testing.T) {
	a := DefaultSlots()
	b := DefaultSlots()
	if len(a) != len(b) {
		t.Fatalf("DefaultSlots not stable: %d vs %d", len(a), len(b))
	}
}
