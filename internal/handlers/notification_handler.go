package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ListNotifications(n *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		unreadOnly := c.Query("unread") == "true"

		notifications, err := n.ListNotifications(c.Request.Context(), userId, unreadOnly)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(notifications, ""))
	}
}

func MarkNotificationRead(n *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		notificationId, err := primitive.ObjectIDFromHex(c.Param("notification_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid notification ID format"))
			return
		}

		if err := n.MarkRead(c.Request.Context(), userId, notificationId); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Notification marked as read"))
	}
}

func MarkAllNotificationsRead(n *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		count, err := n.MarkAllRead(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"updated": count}, "All notifications marked as read"))
	}
}
