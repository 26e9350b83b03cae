package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type startConversationRequest struct {
	VillaID string `json:"villa_id" binding:"required,uuid"`
	Body    string `json:"body" binding:"required"`
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func parseConversationParam(c *gin.Context) (primitive.ObjectID, bool) {
	conversationId, err := primitive.ObjectIDFromHex(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid conversation ID format"))
		return primitive.NilObjectID, false
	}
	return conversationId, true
}

func StartConversation(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var req startConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		villaId, err := uuid.Parse(req.VillaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid villa ID format"))
			return
		}

		conversation, message, err := m.StartConversation(c.Request.Context(), villaId, userId, req.Body)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"conversation": conversation,
			"message":      message,
		}, "Conversation started"))
	}
}

func SendMessage(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}
		conversationId, ok := parseConversationParam(c)
		if !ok {
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		message, err := m.SendMessage(c.Request.Context(), conversationId, userId, req.Body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(message, "Message sent"))
	}
}

func ListConversations(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		conversations, err := m.ListConversations(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(conversations, ""))
	}
}

func ListMessages(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}
		conversationId, ok := parseConversationParam(c)
		if !ok {
			return
		}

		limit := 50
		if limitStr := c.Query("limit"); limitStr != "" {
			limitInt, err := strconv.Atoi(limitStr)
			if err != nil || limitInt <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
				return
			}
			limit = limitInt
		}

		messages, err := m.ListMessages(c.Request.Context(), conversationId, userId, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(messages, ""))
	}
}

func CountUnreadMessages(m *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}
		conversationId, ok := parseConversationParam(c)
		if !ok {
			return
		}

		count, err := m.CountUnread(c.Request.Context(), conversationId, userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"unread": count}, ""))
	}
}
