package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villabay/internal/container"
	"github.com/joshua-takyi/villabay/internal/handlers"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"github.com/joshua-takyi/villabay/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "villabay-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.CreateUser(container.UserService))
		v1.POST("/login", handlers.AuthenticateUser(container.UserService))
		v1.POST("/refresh", handlers.RefreshSession(container.UserService))
		v1.POST("/logout", handlers.Logout())

		// browsing and search stay public
		v1.GET("/villas", handlers.ListVillas(container.VillaService))
		v1.GET("/villas/search", handlers.SearchVillas(container.VillaService))
		v1.GET("/villas/:id", handlers.GetVillaByID(container.VillaService))
		v1.GET("/villas/:id/reviews", handlers.ListVillaReviews(container.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.SupabaseClient, container.UserService, container.Logger))

	userRoutes := protected.Group("/users")
	{
		protected.GET("/profile", func(c *gin.Context) {
			user, exist := c.Get("user")
			if !exist {
				c.JSON(401, gin.H{"error": "Unauthorized"})
				return
			}

			// Cast to EnhancedClaims to access role and other profile data
			enhancedClaims, ok := user.(*helpers.EnhancedClaims)
			if !ok {
				c.JSON(500, gin.H{"error": "Invalid user claims format"})
				return
			}

			c.JSON(200, gin.H{
				"status":   "OK",
				"user_id":  enhancedClaims.UserID,
				"email":    enhancedClaims.Email,
				"role":     enhancedClaims.Role,
				"username": enhancedClaims.Username,
				"is_admin": enhancedClaims.IsAdmin(),
			})
		})

		userRoutes.GET("/:id", handlers.GetUser(container.UserService))
		userRoutes.PATCH("/:id", handlers.UpdateUser(container.UserService))
		userRoutes.DELETE("/:id", handlers.DeleteUser(container.UserService))
		userRoutes.POST("/avatar", handlers.UploadAvatar(container.UserService))
	}

	villaRoutes := protected.Group("/villas")
	{
		villaRoutes.POST("/", handlers.CreateVillaHandler(container.VillaService))
		villaRoutes.PATCH("/:id", handlers.UpdateVilla(container.VillaService))
		villaRoutes.DELETE("/:id", handlers.DeleteVilla(container.VillaService))
		villaRoutes.GET("/host-villas/:host_id", handlers.ListVillasByHost(container.VillaService))

		// availability and booking, scoped to a villa
		villaRoutes.POST("/:id/booking/preview", handlers.PreviewBooking(container.BookingService))
		villaRoutes.POST("/:id/booking", handlers.CreateBooking(container.BookingService))
		villaRoutes.POST("/:id/blocks", handlers.CreateCalendarBlock(container.BookingService))
		villaRoutes.GET("/:id/blocks", handlers.ListCalendarBlocks(container.BookingService))
		villaRoutes.DELETE("/:id/blocks/:block_id", handlers.DeleteCalendarBlock(container.BookingService))

		villaRoutes.POST("/:id/reviews", handlers.CreateReview(container.ReviewService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.GET("/", handlers.ListGuestBookings(container.BookingService))
		bookingRoutes.GET("/host", handlers.ListHostBookings(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.BookingService))
		bookingRoutes.PATCH("/:id", handlers.ModifyBooking(container.BookingService))
		bookingRoutes.POST("/:id/confirm", handlers.ConfirmBooking(container.BookingService))
		bookingRoutes.POST("/:id/reject", handlers.RejectBooking(container.BookingService))
		bookingRoutes.POST("/:id/cancel", handlers.CancelBooking(container.BookingService))
		bookingRoutes.POST("/:id/complete", handlers.CompleteBooking(container.BookingService))
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.GET("/", handlers.ListMyReviews(container.ReviewService))
		reviewRoutes.PATCH("/:review_id", handlers.UpdateReview(container.ReviewService))
		reviewRoutes.DELETE("/:review_id", handlers.DeleteReview(container.ReviewService))
	}

	wishlistRoutes := protected.Group("/wishlist")
	{
		wishlistRoutes.GET("/", handlers.GetWishlist(container.WishlistService))
		wishlistRoutes.POST("/:villa_id", handlers.AddToWishlist(container.WishlistService))
		wishlistRoutes.DELETE("/:villa_id", handlers.RemoveFromWishlist(container.WishlistService))
	}

	conversationRoutes := protected.Group("/conversations")
	{
		conversationRoutes.POST("/", handlers.StartConversation(container.MessageService))
		conversationRoutes.GET("/", handlers.ListConversations(container.MessageService))
		conversationRoutes.GET("/:conversation_id/messages", handlers.ListMessages(container.MessageService))
		conversationRoutes.POST("/:conversation_id/messages", handlers.SendMessage(container.MessageService))
		conversationRoutes.GET("/:conversation_id/unread", handlers.CountUnreadMessages(container.MessageService))
	}

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("/", handlers.ListNotifications(container.NotificationService))
		notificationRoutes.POST("/:notification_id/read", handlers.MarkNotificationRead(container.NotificationService))
		notificationRoutes.POST("/read-all", handlers.MarkAllNotificationsRead(container.NotificationService))
	}

	return r
}
