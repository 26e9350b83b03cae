package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	NotificationDbName  = "villabay"
	NotificationColName = "notifications"
)

const (
	NotificationBookingRequested = "booking_requested"
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationBookingRejected  = "booking_rejected"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationBookingModified  = "booking_modified"
	NotificationNewMessage       = "new_message"
	NotificationNewReview        = "new_review"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    uuid.UUID          `bson:"user_id" json:"user_id"`
	Kind      string             `bson:"kind" json:"kind"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Ref       string             `bson:"ref,omitempty" json:"ref,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type NotificationsRepo interface {
	CreateNotification(ctx context.Context, notification *Notification) (*Notification, error)
	ListNotificationsByUser(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*Notification, error)
	MarkNotificationRead(ctx context.Context, userId uuid.UUID, notificationId primitive.ObjectID) error
	MarkAllNotificationsRead(ctx context.Context, userId uuid.UUID) (int64, error)
}

func (mdb *MongodbRepo) CreateNotification(ctx context.Context, notification *Notification) (*Notification, error) {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	if _, err := col.InsertOne(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to insert notification: %v", err)
	}

	return notification, nil
}

func (mdb *MongodbRepo) ListNotificationsByUser(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"user_id": userId}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []*Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}

	return notifications, nil
}

func (mdb *MongodbRepo) MarkNotificationRead(ctx context.Context, userId uuid.UUID, notificationId primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": notificationId, "user_id": userId},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (mdb *MongodbRepo) MarkAllNotificationsRead(ctx context.Context, userId uuid.UUID) (int64, error) {
	col, err := mdb.GetCollection(ctx, NotificationDbName, NotificationColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateMany(ctx,
		bson.M{"user_id": userId, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %v", err)
	}

	return res.ModifiedCount, nil
}
