package utils

import (
	"MediCore/models"
	"testing"
)

func TestValidateUserData(t *testing.T) {
	valid := models.User{
		Username: "ashaverma",
		Email:    "asha@example.com",
		Phone:    "+91-9876543210",
		Password: "Str0ng!pass",
	}
	if err := ValidateUserData(valid); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.User)
	}{
		{"short username", func(u *models.User) { u.Username = "ab" }},
		{"bad email", func(u *models.User) { u.Email = "not-an-email" }},
		{"missing password", func(u *models.User) { u.Password = "" }},
		{"short password", func(u *models.User) { u.Password = "S!1a" }},
		{"no uppercase", func(u *models.User) { u.Password = "str0ng!pass" }},
		{"no digit", func(u *models.User) { u.Password = "Strong!pass" }},
		{"no special", func(u *models.User) { u.Password = "Str0ngpass" }},
	}
	for _, tc := range cases {
		user := valid
		tc.mutate(&user)
		if err := ValidateUserData(user); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "Str0ng!pass" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "Str0ng!pass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "WrongPass1!") {
		t.Error("wrong password accepted")
	}
}

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := GenerateOTP()
		if len(code) != 6 {
			t.Fatalf("OTP %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("OTP %q contains non-digit", code)
			}
		}
	}
}
