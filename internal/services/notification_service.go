package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService struct {
	notificationsRepo models.NotificationsRepo
}

func NewNotificationService(notificationsRepo models.NotificationsRepo) *NotificationService {
	return &NotificationService{
		notificationsRepo: notificationsRepo,
	}
}

// Notify records a notification for the user. Delivery is best effort:
// a failed insert never fails the operation that triggered it.
func (ns *NotificationService) Notify(ctx context.Context, userId uuid.UUID, kind, title, body, ref string) {
	if userId == uuid.Nil {
		return
	}
	_, _ = ns.notificationsRepo.CreateNotification(ctx, &models.Notification{
		UserID: userId,
		Kind:   kind,
		Title:  title,
		Body:   body,
		Ref:    ref,
	})
}

func (ns *NotificationService) ListNotifications(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	return ns.notificationsRepo.ListNotificationsByUser(ctx, userId, unreadOnly)
}

func (ns *NotificationService) MarkRead(ctx context.Context, userId uuid.UUID, notificationId primitive.ObjectID) error {
	if userId == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	return ns.notificationsRepo.MarkNotificationRead(ctx, userId, notificationId)
}

func (ns *NotificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) (int64, error) {
	if userId == uuid.Nil {
		return 0, fmt.Errorf("invalid user ID")
	}
	return ns.notificationsRepo.MarkAllNotificationsRead(ctx, userId)
}
