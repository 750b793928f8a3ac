package services

import (
	"MediCore/cache"
	"MediCore/database"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidOtp    = errors.New("invalid or expired one-time code")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserService interface {
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	SendLoginOtp(ctx context.Context, email string) error
	VerifyLoginOtp(ctx context.Context, email, code string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID int64, username, phone string) error
	GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error)
}

type userService struct {
	userRepo repositories.UserRepository
	cache    *cache.Cache
}

func NewUserService(userRepo repositories.UserRepository, cache *cache.Cache) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	lockKey := fmt.Sprintf("user_lock:%s", user.Email)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, time.Minute)
	switch {
	case errors.Is(err, database.ErrRedisUnavailable):
		log.Printf("Registering without Redis lock for %s", user.Email)
	case err != nil:
		return fmt.Errorf("failed to acquire lock: %w", err)
	case !locked:
		return errors.New("registration already in progress for this email")
	default:
		defer func() {
			if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
				log.Printf("Failed to release lock: %v", err)
			}
		}()
	}

	if err := utils.ValidateUserData(*user); err != nil {
		return fmt.Errorf("invalid user data: %w", err)
	}

	if exists, err := s.userRepo.EmailExists(ctx, user.Email); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	} else if exists {
		return errors.New("email already registered")
	}

	if err := s.userRepo.ValidateRoleID(ctx, user.RoleID); err != nil {
		return fmt.Errorf("invalid role ID: %w", err)
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword

	return s.userRepo.CreateUser(ctx, user)
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.AuthenticateUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, errors.New("invalid email or password")
	}
	return user, nil
}

// SendLoginOtp generates a one-time code, stores it in Redis with a database
// audit row as fallback, and emails it to the user.
func (s *userService) SendLoginOtp(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code := utils.GenerateOTP()
	if err := utils.SetOTP(ctx, s.cache, email, code); err != nil {
		log.Printf("Failed to store OTP in Redis for %s: %v", email, err)
	}

	codeHash, err := utils.HashPassword(code)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}
	otp := &models.OtpVerification{
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(utils.OtpExpiry),
	}
	if err := s.userRepo.CreateOtp(ctx, otp); err != nil {
		return fmt.Errorf("failed to record OTP: %w", err)
	}

	if !utils.EmailConfigured() {
		log.Printf("SMTP not configured; OTP for %s not emailed", email)
		return nil
	}
	if err := utils.SendOTPEmail(email, code); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

// VerifyLoginOtp checks the submitted code against Redis first and the audit
// row as fallback, consuming the code on success.
func (s *userService) VerifyLoginOtp(ctx context.Context, email, code string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	stored, err := utils.GetOTP(ctx, s.cache, email)
	if err != nil {
		log.Printf("Failed to read OTP from Redis for %s: %v", email, err)
	}
	if stored != "" {
		if stored != code {
			return nil, ErrInvalidOtp
		}
		if err := utils.DeleteOTP(ctx, s.cache, email); err != nil {
			log.Printf("Failed to delete OTP for %s: %v", email, err)
		}
		s.consumeOtpRow(ctx, email)
		return user, nil
	}

	otp, err := s.userRepo.LatestOtp(ctx, email)
	if err != nil {
		return nil, err
	}
	if otp == nil || time.Now().After(otp.ExpiresAt) || !utils.CheckPassword(otp.CodeHash, code) {
		return nil, ErrInvalidOtp
	}
	if err := s.userRepo.ConsumeOtp(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("failed to consume OTP: %w", err)
	}
	return user, nil
}

func (s *userService) consumeOtpRow(ctx context.Context, email string) {
	otp, err := s.userRepo.LatestOtp(ctx, email)
	if err != nil || otp == nil {
		return
	}
	if err := s.userRepo.ConsumeOtp(ctx, otp.ID); err != nil {
		log.Printf("Failed to consume OTP row for %s: %v", email, err)
	}
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	if err := s.userRepo.UpdateUserPassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by ID: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.DeleteUserCache(ctx, user.Email)
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID int64, username, phone string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by ID: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if username != user.Username {
		existing, err := s.userRepo.GetUserByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil && existing.ID != userID {
			return ErrUsernameTaken
		}
	}

	if err := s.userRepo.UpdateUserProfile(ctx, userID, username, phone); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	// The user is cached under email, ID and username keys; drop them all.
	for _, key := range []string{user.Email, user.Username, username, fmt.Sprintf("%d", userID)} {
		if err := s.userRepo.DeleteUserCache(ctx, key); err != nil {
			log.Printf("Failed to invalidate user cache for %s: %v", key, err)
		}
	}
	return nil
}

func (s *userService) GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error) {
	return s.userRepo.GetUserPermissions(ctx, userID)
}
