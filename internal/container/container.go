package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	UserService         *services.UserService
	VillaService        *services.VillaService
	BookingService      *services.BookingService
	ReviewService       *services.ReviewService
	WishlistService     *services.WishlistService
	MessageService      *services.MessageService
	NotificationService *services.NotificationService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongo := models.MongodbNewRepo(mongoDBClient)

	notificationService := services.NewNotificationService(mongo)
	userService := services.NewUserService(supa)
	villaService := services.NewVillaService(supa)
	bookingService := services.NewBookingService(supa, supa, notificationService)
	reviewService := services.NewReviewService(mongo, supa, supa, notificationService)
	wishlistService := services.NewWishlistService(mongo)
	messageService := services.NewMessageService(mongo, supa, notificationService)

	return &Container{
		Logger:              logger,
		Cloudinary:          cloudinary,
		SupabaseClient:      supabaseClient,
		MongoDBClient:       mongoDBClient,
		UserService:         userService,
		VillaService:        villaService,
		BookingService:      bookingService,
		ReviewService:       reviewService,
		WishlistService:     wishlistService,
		MessageService:      messageService,
		NotificationService: notificationService,
	}
}
