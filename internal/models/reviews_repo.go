package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ReviewStatusPending  = "Pending Approval"
	ReviewStatusApproved = "Approved"
	ReviewStatusFlagged  = "Flagged"
	ReviewDbName         = "villabay"
	ReviewColName        = "villa_reviews"
)

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *VillaReview) (*VillaReview, error)
	GetReviewsByVilla(ctx context.Context, villaId uuid.UUID) ([]*VillaReview, error)
	GetReviewsByUser(ctx context.Context, userId uuid.UUID) ([]*VillaReview, error)
	UpdateReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID, fields map[string]interface{}) (*VillaReview, error)
	DeleteReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID) error
}

func (r *VillaReview) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	return nil
}

func (r VillaReview) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	if r.UserID == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}

	if r.VillaID == uuid.Nil {
		return fmt.Errorf("invalid villa ID")
	}

	return nil
}

func (r *VillaReview) Sanitize() {
	r.Title = helpers.StringTrim(r.Title)
	r.Comment = helpers.StringTrim(r.Comment)

	// Ensure rating is within bounds
	if r.Rating < 1 {
		r.Rating = 1
	} else if r.Rating > 5 {
		r.Rating = 5
	}
	r.LikedFeatures = helpers.RemoveDuplicates(r.LikedFeatures)
	r.Comment = helpers.RemoveProfanity(r.Comment)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *VillaReview) (*VillaReview, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}

	if err := review.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare review for creation: %w", err)
	}

	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	_, err = col.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}

	return review, nil
}

func (mdb *MongodbRepo) GetReviewsByVilla(ctx context.Context, villaId uuid.UUID) ([]*VillaReview, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"villa_id": villaId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*VillaReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %v", err)
	}

	return reviews, nil
}

func (mdb *MongodbRepo) GetReviewsByUser(ctx context.Context, userId uuid.UUID) ([]*VillaReview, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"user_id": userId}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*VillaReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %v", err)
	}

	return reviews, nil
}

func (mdb *MongodbRepo) UpdateReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID, fields map[string]interface{}) (*VillaReview, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	set := bson.M{"updated_at": time.Now()}
	for key, value := range fields {
		set[key] = value
	}

	// Only the author may update their review
	filter := bson.M{"_id": reviewId, "user_id": userId}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated VillaReview
	err = col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": reviewId, "user_id": userId})
	if err != nil {
		return fmt.Errorf("failed to delete review: %v", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("review not found")
	}

	return nil
}
