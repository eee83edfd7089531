package handlers

import (
	"net/http"
	"strings"

	"rental-backend/internal/http/middleware"
	"rental-backend/internal/services"
	"rental-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func reportFilter(c *gin.Context) (services.BookingReportFilter, bool) {
	var f services.BookingReportFilter
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := utils.ParseTimestamp(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "from tidak valid", err)
			return f, false
		}
		f.From = t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := utils.ParseTimestamp(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "to tidak valid", err)
			return f, false
		}
		f.To = t
	}
	return f, true
}

// GET /api/reports/bookings?from=2025-07-01&to=2025-07-31
func GetBookingReport(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	report, err := services.ReportsService{}.GetBookingReport(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/bookings/pdf?from=2025-07-01&to=2025-07-31
func GetBookingReportPDF(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	report, err := services.ReportsService{}.GetBookingReport(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateReportPDF(report)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
