package handlers

import (
	"net/http"
	"strings"

	"rental-backend/internal/http/middleware"
	"rental-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ratingPayload struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// POST /api/bookings/:id/rating
func SubmitBookingRating(c *gin.Context) {
	bookingID := strings.TrimSpace(c.Param("id"))
	var payload ratingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	svc := services.RatingService{RequestID: middleware.GetRequestID(c)}
	rating, err := svc.SubmitRating(c.Request.Context(), middleware.Caller(c), bookingID, payload.Stars, payload.Comment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "terima kasih atas penilaiannya", "rating": rating})
}

// GET /api/bookings/:id/rating
func GetBookingRating(c *gin.Context) {
	svc := services.RatingService{RequestID: middleware.GetRequestID(c)}
	rating, err := svc.GetRatingForBooking(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// GET /api/ratings?vehicleId=veh-1
func GetRatings(c *gin.Context) {
	svc := services.RatingService{RequestID: middleware.GetRequestID(c)}
	list, err := svc.ListRatings(c.Request.Context(), strings.TrimSpace(c.Query("vehicleId")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
