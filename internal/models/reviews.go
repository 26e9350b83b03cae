package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VillaReview struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        uuid.UUID          `bson:"user_id" json:"user_id"`
	VillaID       uuid.UUID          `bson:"villa_id" json:"villa_id"`
	BookingID     uuid.UUID          `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Rating        int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Title         string             `bson:"title" json:"title"`
	Comment       string             `bson:"comment" json:"comment"`
	LikedFeatures []string           `bson:"liked_features,omitempty" json:"liked_features,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
