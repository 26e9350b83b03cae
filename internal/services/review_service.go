package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviewsRepo   models.ReviewsRepo
	bookingsRepo  models.BookingsRepo
	villasRepo    models.VillasRepo
	notifications *NotificationService
}

func NewReviewService(reviewsRepo models.ReviewsRepo, bookingsRepo models.BookingsRepo, villasRepo models.VillasRepo, notifications *NotificationService) *ReviewService {
	return &ReviewService{
		reviewsRepo:   reviewsRepo,
		bookingsRepo:  bookingsRepo,
		villasRepo:    villasRepo,
		notifications: notifications,
	}
}

// CreateReview stores a review after confirming the author actually
// completed a stay at the villa.
func (rs *ReviewService) CreateReview(ctx context.Context, userId uuid.UUID, villaId uuid.UUID, review *models.VillaReview) (*models.VillaReview, error) {
	review.UserID = userId
	review.VillaID = villaId
	review.Sanitize()

	bookings, err := rs.bookingsRepo.ListBookingsByGuest(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to check guest bookings: %v", err)
	}

	var stayed *models.Booking
	for _, booking := range bookings {
		if booking.VillaId == villaId && booking.Status == models.BookingCompleted {
			stayed = booking
			break
		}
	}
	if stayed == nil {
		return nil, fmt.Errorf("only guests with a completed stay can review this villa")
	}

	review.BookingID = stayed.Id
	review.Status = models.ReviewStatusPending
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	created, err := rs.reviewsRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	if rs.notifications != nil {
		if villa, err := rs.villasRepo.GetVillaByID(ctx, villaId); err == nil && villa != nil {
			rs.notifications.Notify(ctx, villa.HostId, models.NotificationNewReview,
				"New review", fmt.Sprintf("A guest reviewed %s", villa.Name), created.ID.Hex())
		}
	}

	return created, nil
}

func (rs *ReviewService) GetReviewsByVilla(ctx context.Context, villaId uuid.UUID) ([]*models.VillaReview, error) {
	if villaId == uuid.Nil {
		return nil, fmt.Errorf("invalid villa ID")
	}
	return rs.reviewsRepo.GetReviewsByVilla(ctx, villaId)
}

func (rs *ReviewService) GetReviewsByUser(ctx context.Context, userId uuid.UUID) ([]*models.VillaReview, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	return rs.reviewsRepo.GetReviewsByUser(ctx, userId)
}

func (rs *ReviewService) UpdateReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID, fields map[string]interface{}) (*models.VillaReview, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	if rating, ok := fields["rating"]; ok {
		if r, ok := rating.(int); ok && (r < 1 || r > 5) {
			return nil, fmt.Errorf("rating must be between 1 and 5")
		}
	}
	return rs.reviewsRepo.UpdateReview(ctx, userId, reviewId, fields)
}

func (rs *ReviewService) DeleteReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID) error {
	if userId == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	return rs.reviewsRepo.DeleteReview(ctx, userId, reviewId)
}
