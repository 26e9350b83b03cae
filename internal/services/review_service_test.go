package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeReviewsRepo struct {
	mu      sync.Mutex
	reviews []*models.VillaReview
}

func (f *fakeReviewsRepo) CreateReview(ctx context.Context, review *models.VillaReview) (*models.VillaReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	copied := *review
	f.reviews = append(f.reviews, &copied)
	return review, nil
}

func (f *fakeReviewsRepo) GetReviewsByVilla(ctx context.Context, villaId uuid.UUID) ([]*models.VillaReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.VillaReview
	for _, r := range f.reviews {
		if r.VillaID == villaId {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewsRepo) GetReviewsByUser(ctx context.Context, userId uuid.UUID) ([]*models.VillaReview, error) {
	return nil, nil
}

func (f *fakeReviewsRepo) UpdateReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID, fields map[string]interface{}) (*models.VillaReview, error) {
	return nil, nil
}

func (f *fakeReviewsRepo) DeleteReview(ctx context.Context, userId uuid.UUID, reviewId primitive.ObjectID) error {
	return nil
}

type fakeNotificationsRepo struct {
	mu      sync.Mutex
	created []*models.Notification
}

func (f *fakeNotificationsRepo) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *notification
	f.created = append(f.created, &copied)
	return notification, nil
}

func (f *fakeNotificationsRepo) ListNotificationsByUser(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationsRepo) MarkNotificationRead(ctx context.Context, userId uuid.UUID, notificationId primitive.ObjectID) error {
	return nil
}

func (f *fakeNotificationsRepo) MarkAllNotificationsRead(ctx context.Context, userId uuid.UUID) (int64, error) {
	return 0, nil
}

func TestCreateReviewRequiresCompletedStay(t *testing.T) {
	villa := testVilla()
	villasRepo := newFakeVillasRepo(villa)
	bookingsRepo := newFakeBookingsRepo()
	reviewsRepo := &fakeReviewsRepo{}
	notificationsRepo := &fakeNotificationsRepo{}
	rs := NewReviewService(reviewsRepo, bookingsRepo, villasRepo, NewNotificationService(notificationsRepo))
	ctx := context.Background()

	userId := uuid.New()

	review := &models.VillaReview{Rating: 5, Title: "Wonderful stay", Comment: "Spotless villa, great host"}
	if _, err := rs.CreateReview(ctx, userId, villa.Id, review); err == nil {
		t.Error("review without a completed stay should fail")
	}
	if len(notificationsRepo.created) != 0 {
		t.Errorf("notifications after rejected review = %d, want 0", len(notificationsRepo.created))
	}
}

func TestCreateReviewNotifiesHost(t *testing.T) {
	villa := testVilla()
	villasRepo := newFakeVillasRepo(villa)
	bookingsRepo := newFakeBookingsRepo()
	reviewsRepo := &fakeReviewsRepo{}
	notificationsRepo := &fakeNotificationsRepo{}
	rs := NewReviewService(reviewsRepo, bookingsRepo, villasRepo, NewNotificationService(notificationsRepo))
	ctx := context.Background()

	userId := uuid.New()
	booking := &models.Booking{
		Id:       uuid.New(),
		VillaId:  villa.Id,
		GuestId:  userId,
		CheckIn:  date(2026, 6, 1),
		CheckOut: date(2026, 6, 5),
		Status:   models.BookingCompleted,
	}
	if _, err := bookingsRepo.CreateBooking(ctx, booking); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	review := &models.VillaReview{Rating: 5, Title: "Wonderful stay", Comment: "Spotless villa, great host"}
	created, err := rs.CreateReview(ctx, userId, villa.Id, review)
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if created.BookingID != booking.Id {
		t.Errorf("booking link = %s, want %s", created.BookingID, booking.Id)
	}
	if created.Status != models.ReviewStatusPending {
		t.Errorf("status = %s, want pending", created.Status)
	}

	if len(notificationsRepo.created) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notificationsRepo.created))
	}
	notification := notificationsRepo.created[0]
	if notification.UserID != villa.HostId {
		t.Errorf("notified user = %s, want host %s", notification.UserID, villa.HostId)
	}
	if notification.Kind != models.NotificationNewReview {
		t.Errorf("kind = %s, want %s", notification.Kind, models.NotificationNewReview)
	}
}
