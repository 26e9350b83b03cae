package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
)

func AddToWishlist(w *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		villaId := helpers.StringTrim(c.Param("villa_id"))
		if villaId == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("villa ID is required"))
			return
		}

		wishlist, err := w.AddToWishlist(c.Request.Context(), userId, villaId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(wishlist, "Villa added to wishlist"))
	}
}

func RemoveFromWishlist(w *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		villaId := helpers.StringTrim(c.Param("villa_id"))
		if villaId == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("villa ID is required"))
			return
		}

		if err := w.RemoveFromWishlist(c.Request.Context(), userId, villaId); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Villa removed from wishlist"))
	}
}

func GetWishlist(w *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		wishlist, err := w.GetWishlistByUserID(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(wishlist, ""))
	}
}
