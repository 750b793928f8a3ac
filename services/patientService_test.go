package services

import (
	"MediCore/models"
	"testing"
)

func TestValidatePatient(t *testing.T) {
	valid := models.Patient{
		UserID:    1,
		FirstName: "Asha",
		LastName:  "Verma",
		Sex:       "Female",
	}
	if err := validatePatient(&valid); err != nil {
		t.Fatalf("valid patient rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.Patient)
	}{
		{"missing user", func(p *models.Patient) { p.UserID = 0 }},
		{"missing first name", func(p *models.Patient) { p.FirstName = "" }},
		// The patient table carries a CHECK on sex; an empty or unknown
		// value must be caught before the insert.
		{"missing sex", func(p *models.Patient) { p.Sex = "" }},
		{"unknown sex", func(p *models.Patient) { p.Sex = "X" }},
		{"bad date of birth", func(p *models.Patient) { p.DateOfBirth = "01-02-1990" }},
	}
	for _, tc := range cases {
		patient := valid
		tc.mutate(&patient)
		if err := validatePatient(&patient); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
