package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseReviewParam(c *gin.Context) (primitive.ObjectID, bool) {
	reviewId, err := primitive.ObjectIDFromHex(c.Param("review_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID format"))
		return primitive.NilObjectID, false
	}
	return reviewId, true
}

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var review models.VillaReview
		if err := c.ShouldBindJSON(&review); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := r.CreateReview(c.Request.Context(), userId, villaId, &review)
		if err != nil {
			c.JSON(statusForBookingError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Review submitted successfully"))
	}
}

func ListVillaReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		reviews, err := r.GetReviewsByVilla(c.Request.Context(), villaId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

func ListMyReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		reviews, err := r.GetReviewsByUser(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

func UpdateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewId, ok := parseReviewParam(c)
		if !ok {
			return
		}
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := r.UpdateReview(c.Request.Context(), userId, reviewId, fields)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Review updated successfully"))
	}
}

func DeleteReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewId, ok := parseReviewParam(c)
		if !ok {
			return
		}
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := r.DeleteReview(c.Request.Context(), userId, reviewId); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Review deleted successfully"))
	}
}
