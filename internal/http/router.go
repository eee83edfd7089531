package api

import (
	"log"
	stdhttp "net/http"

	intconfig "rental-backend/internal/config"
	h "rental-backend/internal/http/handlers"
	"rental-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth([]byte(env.JWTSecret))
	staffOnly := middleware.RequireRoles("staff", "admin")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Catalog: browsing, availability and the booking-form calendar are
		// public; the fleet itself is maintained by staff.
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicleByID)
		vehicles.GET("/:id/availability", h.GetVehicleAvailability)
		vehicles.GET("/:id/disabled-days", h.GetVehicleDisabledDays)
		vehicles.POST("", auth, staffOnly, h.CreateVehicle)
		vehicles.PUT("/:id", auth, staffOnly, h.UpdateVehicle)
		vehicles.DELETE("/:id", auth, staffOnly, h.DeleteVehicle)

		// Bookings
		bookings := api.Group("/bookings", auth)
		bookings.POST("/quote", h.GetBookingQuote)
		bookings.POST("", h.CreateBooking)
		bookings.GET("", staffOnly, h.GetBookings)
		bookings.GET("/mine", h.GetMyBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PUT("/:id/confirm", staffOnly, h.ConfirmBooking)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.DELETE("/:id", h.DeleteBookingHistory)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
		bookings.POST("/:id/rating", h.SubmitBookingRating)
		bookings.GET("/:id/rating", h.GetBookingRating)
		// legacy path
		api.GET("/my-bookings", auth, h.GetMyBookings)

		// Ratings
		api.GET("/ratings", auth, staffOnly, h.GetRatings)

		// Users directory maintenance
		users := api.Group("/users", auth, staffOnly)
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		// Reports
		reports := api.Group("/reports", auth, staffOnly)
		reports.GET("/bookings", h.GetBookingReport)
		reports.GET("/bookings/pdf", h.GetBookingReportPDF)
	}

	return r
}
