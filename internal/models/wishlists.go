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
	WishlistDbName  = "villabay"
	WishlistColName = "wishlists"
)

type WishlistItem struct {
	VillaID string    `bson:"villa_id" json:"villa_id"`
	AddedAt time.Time `bson:"added_at" json:"added_at"`
}

type Wishlist struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	UserID    uuid.UUID               `bson:"user_id" json:"user_id" validate:"required"`
	Items     map[string]WishlistItem `bson:"items" json:"items"`
	CreatedAt time.Time               `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time               `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type WishlistRepo interface {
	AddToWishlist(ctx context.Context, userId uuid.UUID, villaId string) (*Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userId uuid.UUID, villaId string) error
	GetWishlistByUserID(ctx context.Context, userId uuid.UUID) (*Wishlist, error)
}

func (w *Wishlist) BeforeCreate() error {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	return nil
}

func (mdb *MongodbRepo) AddToWishlist(ctx context.Context, userId uuid.UUID, villaId string) (*Wishlist, error) {
	col, err := mdb.GetCollection(ctx, WishlistDbName, WishlistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	now := time.Now()
	filter := bson.M{"user_id": userId}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", villaId): WishlistItem{
				VillaID: villaId,
				AddedAt: now,
			},
		},
		"$setOnInsert": bson.M{
			"user_id":    userId,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Wishlist
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("error upserting wishlist: %v", err)
	}

	return &result, nil
}

func (mdb *MongodbRepo) RemoveFromWishlist(ctx context.Context, userId uuid.UUID, villaId string) error {
	col, err := mdb.GetCollection(ctx, WishlistDbName, WishlistColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$unset": bson.M{fmt.Sprintf("items.%s", villaId): ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}

	res, err := col.UpdateOne(ctx, bson.M{"user_id": userId}, update)
	if err != nil {
		return fmt.Errorf("error removing wishlist item: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("wishlist not found")
	}

	return nil
}

func (mdb *MongodbRepo) GetWishlistByUserID(ctx context.Context, userId uuid.UUID) (*Wishlist, error) {
	col, err := mdb.GetCollection(ctx, WishlistDbName, WishlistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var wishlist Wishlist
	err = col.FindOne(ctx, bson.M{"user_id": userId}).Decode(&wishlist)
	if err != nil {
		// An empty wishlist is not an error for the caller
		return &Wishlist{UserID: userId, Items: map[string]WishlistItem{}}, nil
	}

	return &wishlist, nil
}
