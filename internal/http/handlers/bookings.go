package handlers

import (
	"net/http"
	"strings"

	"rental-backend/internal/booking"
	intconfig "rental-backend/internal/config"
	"rental-backend/internal/http/middleware"
	"rental-backend/internal/repositories"
	"rental-backend/internal/services"
	"rental-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingSvc(c *gin.Context) services.BookingService {
	return services.BookingService{
		RequestID:     middleware.GetRequestID(c),
		DriverDayRate: intconfig.Current.DriverDayRate,
	}
}

// bookingPayload is the submit/quote body. Timestamps are strings because
// clients send several formats; utils.ParseTimestamp normalizes them.
type bookingPayload struct {
	VehicleID        string `json:"vehicleId" binding:"required"`
	PickupAt         string `json:"pickupAt" binding:"required"`
	ReturnAt         string `json:"returnAt" binding:"required"`
	PickupLocation   string `json:"pickupLocation"`
	ReturnLocation   string `json:"returnLocation"`
	DriverRequired   bool   `json:"driverRequired"`
	PaymentProofID   string `json:"paymentProofId"`
	PaymentProofName string `json:"paymentProofName"`
	EmergencyName    string `json:"emergencyName"`
	EmergencyPhone   string `json:"emergencyPhone"`
	SpecialRequests  string `json:"specialRequests"`
}

func (p bookingPayload) draft(c *gin.Context) (booking.Draft, bool) {
	pickup, err := utils.ParseTimestamp(p.PickupAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "pickupAt tidak valid", err)
		return booking.Draft{}, false
	}
	ret, err := utils.ParseTimestamp(p.ReturnAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "returnAt tidak valid", err)
		return booking.Draft{}, false
	}
	return booking.Draft{
		VehicleID:        strings.TrimSpace(p.VehicleID),
		PickupAt:         pickup,
		ReturnAt:         ret,
		PickupLocation:   p.PickupLocation,
		ReturnLocation:   p.ReturnLocation,
		DriverRequired:   p.DriverRequired,
		PaymentProofID:   p.PaymentProofID,
		PaymentProofName: p.PaymentProofName,
		EmergencyName:    p.EmergencyName,
		EmergencyPhone:   p.EmergencyPhone,
		SpecialRequests:  p.SpecialRequests,
	}, true
}

// GET /api/vehicles/:id/availability?pickup=2025-07-10&return=2025-07-13
func GetVehicleAvailability(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	pickup, err := utils.ParseTimestamp(c.Query("pickup"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "pickup tidak valid", err)
		return
	}
	ret, err := utils.ParseTimestamp(c.Query("return"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "return tidak valid", err)
		return
	}

	decision, err := bookingSvc(c).CheckAvailability(c.Request.Context(), id, pickup, ret)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// GET /api/vehicles/:id/disabled-days
func GetVehicleDisabledDays(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	days, err := bookingSvc(c).DisabledDays(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicleId": id, "disabledDays": days})
}

// POST /api/bookings/quote
func GetBookingQuote(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	d, ok := payload.draft(c)
	if !ok {
		return
	}

	quote, err := bookingSvc(c).QuoteDraft(c.Request.Context(), d.VehicleID, d.PickupAt, d.ReturnAt, d.DriverRequired)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	d, ok := payload.draft(c)
	if !ok {
		return
	}

	res, err := bookingSvc(c).Submit(c.Request.Context(), middleware.Caller(c), d)
	if err != nil {
		// the result still carries issues/decision for the client form
		var status int
		switch {
		case len(res.Issues) > 0:
			status = http.StatusBadRequest
		case res.Decision.Verdict == booking.VerdictUnavailable:
			status = http.StatusConflict
		case res.Decision.Verdict == booking.VerdictIndeterminate:
			status = http.StatusServiceUnavailable
		default:
			RespondDomainError(c, err)
			return
		}
		c.JSON(status, gin.H{
			"error":      err.Error(),
			"request_id": middleware.GetRequestID(c),
			"result":     res,
		})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/bookings?vehicleId=&requesterId=&status=&from=&to=
func GetBookings(c *gin.Context) {
	filter := repositories.BookingFilter{
		VehicleID:   strings.TrimSpace(c.Query("vehicleId")),
		RequesterID: strings.TrimSpace(c.Query("requesterId")),
		Status:      strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := utils.ParseTimestamp(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "from tidak valid", err)
			return
		}
		filter.From = t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := utils.ParseTimestamp(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "to tidak valid", err)
			return
		}
		filter.To = t
	}

	list, err := bookingSvc(c).ListBookings(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings/mine
func GetMyBookings(c *gin.Context) {
	list, err := bookingSvc(c).ListMyBookings(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	b, err := bookingSvc(c).GetBooking(c.Request.Context(), middleware.Caller(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id/confirm
func ConfirmBooking(c *gin.Context) {
	b, err := bookingSvc(c).Confirm(c.Request.Context(), middleware.Caller(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dikonfirmasi", "booking": b})
}

// PUT /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	b, err := bookingSvc(c).Cancel(c.Request.Context(), middleware.Caller(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dibatalkan", "booking": b})
}

// DELETE /api/bookings/:id
func DeleteBookingHistory(c *gin.Context) {
	err := bookingSvc(c).DeleteHistory(c.Request.Context(), middleware.Caller(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dihapus dari riwayat"})
}

// GET /api/bookings/:id/invoice
func GetBookingInvoicePDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	caller := middleware.Caller(c)

	// ownership check rides on the same rule as GetBooking
	if _, err := bookingSvc(c).GetBooking(c.Request.Context(), caller, id); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateBookingInvoice(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
