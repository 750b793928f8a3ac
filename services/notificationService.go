package services

import (
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
	"context"
	"log"
	"time"
)

// NotificationService writes notification rows and optionally emails the
// recipient. Delivery is fire-and-forget: callers never block on it and
// failures are only logged.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

// Notify records a notification for the user in the background.
func (s *NotificationService) Notify(userID int64, kind, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		notification := &models.Notification{
			UserID:  userID,
			Kind:    kind,
			Message: message,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			log.Printf("Failed to record notification for user %d: %v", userID, err)
			return
		}

		if !utils.EmailConfigured() {
			return
		}
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil || user == nil {
			log.Printf("Failed to load user %d for notification email: %v", userID, err)
			return
		}
		if err := utils.SendPlainEmail(user.Email, "MediCore notification", message); err != nil {
			log.Printf("Failed to send notification email to user %d: %v", userID, err)
		}
	}()
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id uint, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}
