package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/villabay/internal/helpers"
	"github.com/joshua-takyi/villabay/internal/models"
	"github.com/joshua-takyi/villabay/internal/services"
)

func CreateVillaHandler(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var villa models.Villa

		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		if err := c.ShouldBindJSON(&villa); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		parsedId, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		if !claims.IsHost() && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only users with host role can create villas"))
			return
		}
		accessToken, _ := c.Cookie("access_token")

		createdVilla, err := v.CreateVilla(c.Request.Context(), &villa, parsedId, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(createdVilla, "Villa created successfully"))
	}
}

func parsePagination(c *gin.Context) (offset, limit int, ok bool) {
	limitStr := c.DefaultQuery("limit", "10")
	offsetStr := c.DefaultQuery("offset", "0")
	limitInt, err := strconv.Atoi(limitStr)
	if err != nil || limitInt <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offsetInt, err := strconv.Atoi(offsetStr)
	if err != nil || offsetInt < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}
	return offsetInt, limitInt, true
}

func ListVillas(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		villas, total, err := v.ListVillas(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(villas, page, limit, total))
	}
}

func SearchVillas(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		filters := models.VillaFilters{
			Region:   c.Query("region"),
			CheckIn:  c.Query("checkin_date"),
			CheckOut: c.Query("checkout_date"),
		}
		if guests := c.Query("guests"); guests != "" {
			guestsInt, err := strconv.Atoi(guests)
			if err != nil || guestsInt <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid guests parameter"))
				return
			}
			filters.Guests = guestsInt
		}
		if minPrice := c.Query("min_price"); minPrice != "" {
			price, err := strconv.ParseFloat(minPrice, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid min_price parameter"))
				return
			}
			filters.MinPrice = price
		}
		if maxPrice := c.Query("max_price"); maxPrice != "" {
			price, err := strconv.ParseFloat(maxPrice, 64)
			if err != nil || price < 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid max_price parameter"))
				return
			}
			filters.MaxPrice = price
		}

		villas, total, err := v.SearchVillas(c.Request.Context(), filters, offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(villas, page, limit, total))
	}
}

func GetVillaByID(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		villa, err := v.GetVillaByID(c.Request.Context(), villaId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if villa == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("villa not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(villa, ""))
	}
}

func ListVillasByHost(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostID := helpers.StringTrim(c.Param("host_id"))
		parsedId, err := uuid.Parse(hostID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid host ID format"))
			return
		}

		villas, err := v.ListVillasByHost(c.Request.Context(), parsedId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(villas, ""))
	}
}

func UpdateVilla(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		// Only the owning host or an admin may edit
		villa, err := v.GetVillaByID(c.Request.Context(), villaId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if villa == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("villa not found"))
			return
		}
		if !claims.IsOwner(villa.HostId.String()) && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access denied"))
			return
		}

		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		// These never change through this endpoint
		delete(fields, "id")
		delete(fields, "host_id")
		delete(fields, "created_at")

		accessToken, _ := c.Cookie("access_token")
		updated, err := v.UpdateVilla(c.Request.Context(), villaId, fields, accessToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Villa updated successfully"))
	}
}

func DeleteVilla(v *services.VillaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		villaId, ok := parseVillaParam(c)
		if !ok {
			return
		}

		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		userId, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		accessToken, _ := c.Cookie("access_token")
		if err := v.DeleteVilla(c.Request.Context(), villaId, userId, accessToken); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Villa deleted successfully"))
	}
}
