package services

import (
	"MediCore/cache"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"errors"
	"testing"
	"time"
)

func newUserService(t *testing.T) (UserService, repositories.UserRepository) {
	t.Helper()
	env := newTestEnv(t)
	disabled := cache.NewDisabled()
	userRepo := repositories.NewUserRepository(env.db, disabled)
	return NewUserService(userRepo, disabled), userRepo
}

func TestValidateAndCreateUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := &models.User{
		Username: "newpatient",
		Email:    "newpatient@example.com",
		Password: "Str0ng!pass",
		RoleID:   4,
	}
	if err := svc.ValidateAndCreateUser(ctx, user); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}
	if user.Password == "Str0ng!pass" {
		t.Error("password was stored in plaintext")
	}

	// Duplicate email is rejected.
	dup := &models.User{Username: "other", Email: "newpatient@example.com", Password: "Str0ng!pass", RoleID: 4}
	if err := svc.ValidateAndCreateUser(ctx, dup); err == nil {
		t.Error("expected error for duplicate email")
	}

	// Unknown role is rejected.
	badRole := &models.User{Username: "ghost", Email: "ghost@example.com", Password: "Str0ng!pass", RoleID: 99}
	if err := svc.ValidateAndCreateUser(ctx, badRole); err == nil {
		t.Error("expected error for unknown role")
	}

	// Weak password is rejected.
	weak := &models.User{Username: "weakling", Email: "weak@example.com", Password: "short", RoleID: 4}
	if err := svc.ValidateAndCreateUser(ctx, weak); err == nil {
		t.Error("expected error for weak password")
	}
}

func TestAuthenticateUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := &models.User{
		Username: "logintest",
		Email:    "login@example.com",
		Password: "Str0ng!pass",
		RoleID:   4,
	}
	if err := svc.ValidateAndCreateUser(ctx, user); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}

	authed, err := svc.AuthenticateUser(ctx, "login@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("AuthenticateUser returned error: %v", err)
	}
	if authed.Username != "logintest" {
		t.Errorf("authenticated username = %q, want logintest", authed.Username)
	}

	if _, err := svc.AuthenticateUser(ctx, "login@example.com", "WrongPass1!"); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := svc.AuthenticateUser(ctx, "nobody@example.com", "Str0ng!pass"); err == nil {
		t.Error("expected error for unknown email")
	}
}

func TestUpdateUserProfile(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user := &models.User{
		Username: "renameme",
		Email:    "rename@example.com",
		Password: "Str0ng!pass",
		RoleID:   4,
	}
	if err := svc.ValidateAndCreateUser(ctx, user); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}

	if err := svc.UpdateUserProfile(ctx, user.ID, "renamed", "+91-9000000000"); err != nil {
		t.Fatalf("UpdateUserProfile returned error: %v", err)
	}
	updated, err := svc.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if updated.Username != "renamed" || updated.Phone != "+91-9000000000" {
		t.Errorf("profile not updated: username=%q phone=%q", updated.Username, updated.Phone)
	}

	// Another user's username cannot be claimed.
	other := &models.User{Username: "claimed", Email: "claimed@example.com", Password: "Str0ng!pass", RoleID: 4}
	if err := svc.ValidateAndCreateUser(ctx, other); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}
	if err := svc.UpdateUserProfile(ctx, user.ID, "claimed", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	if err := svc.UpdateUserProfile(ctx, 9999, "ghost", ""); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestVerifyLoginOtpFallbackRow(t *testing.T) {
	svc, userRepo := newUserService(t)
	ctx := context.Background()

	user := &models.User{
		Username: "otpuser",
		Email:    "otp@example.com",
		Password: "Str0ng!pass",
		RoleID:   4,
	}
	if err := svc.ValidateAndCreateUser(ctx, user); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}

	// With Redis disabled the verification path uses the audit row.
	codeHash, err := utils.HashPassword("483921")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	err = userRepo.CreateOtp(ctx, &models.OtpVerification{
		Email:     "otp@example.com",
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(utils.OtpExpiry),
	})
	if err != nil {
		t.Fatalf("CreateOtp returned error: %v", err)
	}

	if _, err := svc.VerifyLoginOtp(ctx, "otp@example.com", "000000"); !errors.Is(err, ErrInvalidOtp) {
		t.Errorf("expected ErrInvalidOtp for wrong code, got %v", err)
	}

	verified, err := svc.VerifyLoginOtp(ctx, "otp@example.com", "483921")
	if err != nil {
		t.Fatalf("VerifyLoginOtp returned error: %v", err)
	}
	if verified.Email != "otp@example.com" {
		t.Errorf("verified email = %q", verified.Email)
	}

	// The code is consumed on success.
	if _, err := svc.VerifyLoginOtp(ctx, "otp@example.com", "483921"); !errors.Is(err, ErrInvalidOtp) {
		t.Errorf("expected ErrInvalidOtp for consumed code, got %v", err)
	}
}

func TestVerifyLoginOtpExpiredRow(t *testing.T) {
	svc, userRepo := newUserService(t)
	ctx := context.Background()

	user := &models.User{
		Username: "staleotp",
		Email:    "stale@example.com",
		Password: "Str0ng!pass",
		RoleID:   4,
	}
	if err := svc.ValidateAndCreateUser(ctx, user); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}

	codeHash, err := utils.HashPassword("112233")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	err = userRepo.CreateOtp(ctx, &models.OtpVerification{
		Email:     "stale@example.com",
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateOtp returned error: %v", err)
	}

	if _, err := svc.VerifyLoginOtp(ctx, "stale@example.com", "112233"); !errors.Is(err, ErrInvalidOtp) {
		t.Errorf("expected ErrInvalidOtp for expired code, got %v", err)
	}

	if _, err := svc.VerifyLoginOtp(ctx, "missing@example.com", "112233"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendLoginOtpRecordsRow(t *testing.T) {
	svc, userRepo := newUserService(t)
	ctx := context.Background()

	user := &models.User{
		Username: "sendotp",
		Email:    "sendotp@example.com",
		Password: "Str0ng!pass",
		RoleID:   4,
	}
	if err := svc.ValidateAndCreateUser(ctx, user); err != nil {
		t.Fatalf("ValidateAndCreateUser returned error: %v", err)
	}

	if err := svc.SendLoginOtp(ctx, "sendotp@example.com"); err != nil {
		t.Fatalf("SendLoginOtp returned error: %v", err)
	}

	otp, err := userRepo.LatestOtp(ctx, "sendotp@example.com")
	if err != nil {
		t.Fatalf("LatestOtp returned error: %v", err)
	}
	if otp == nil {
		t.Fatal("expected an OTP audit row")
	}
	if otp.Consumed {
		t.Error("new OTP row should not be consumed")
	}
	if !otp.ExpiresAt.After(time.Now()) {
		t.Error("OTP row should expire in the future")
	}

	if err := svc.SendLoginOtp(ctx, "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
