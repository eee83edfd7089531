package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"rental-backend/internal/repositories"
	"rental-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF invoice booking & rekap laporan.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	VehicleRepo repositories.VehicleRepository
	UserRepo    repositories.UserRepository
	RequestID   string
	Loader      func(ctx context.Context, bookingID string) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID      string
	RequesterName  string
	RequesterPhone string
	VehicleLabel   string
	PickupAt       string
	ReturnAt       string
	PickupLocation string
	ReturnLocation string
	Status         string
	DayCount       int
	PricePerDay    int64
	DriverRequired bool
	TotalCost      int64
}

func (s DocsService) GenerateBookingInvoice(ctx context.Context, bookingID string) ([]byte, string, error) {
	data, err := s.loadBookingDocData(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", "booking_id="+bookingID)
	return buildBookingInvoicePDF(data)
}

// GenerateReportPDF renders the aggregate report for printing.
func (s DocsService) GenerateReportPDF(report BookingReport) ([]byte, string, error) {
	utils.LogEvent(s.RequestID, "docs", "generate_report", "from="+report.From+" to="+report.To)
	return buildReportPDF(report)
}

func (s DocsService) loadBookingDocData(ctx context.Context, bookingID string) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}

	b, err := s.BookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return bookingDocData{}, err
	}

	out := bookingDocData{
		BookingID:      b.ID,
		PickupAt:       utils.FormatDateTime(b.PickupAt),
		ReturnAt:       utils.FormatDateTime(b.ReturnAt),
		PickupLocation: b.PickupLocation,
		ReturnLocation: b.ReturnLocation,
		Status:         string(b.Status),
		DayCount:       b.DayCount,
		DriverRequired: b.DriverRequired,
		TotalCost:      b.TotalCost,
	}
	// per-day rate is derived from the booking itself so an old invoice stays
	// consistent with its own total after fleet price changes
	if b.DayCount > 0 {
		out.PricePerDay = b.TotalCost / int64(b.DayCount)
	}

	if v, err := s.VehicleRepo.GetVehicleByID(ctx, b.VehicleID); err == nil {
		out.VehicleLabel = strings.TrimSpace(v.Make + " " + v.Model)
	}
	if u, err := s.UserRepo.GetUserByID(ctx, b.RequesterID); err == nil {
		out.RequesterName = u.Name
		out.RequesterPhone = u.Phone
	}
	if out.RequesterName == "" {
		out.RequesterName = b.RequesterID
	}

	return out, nil
}

func buildBookingInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice Sewa", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE SEWA KENDARAAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice  : INV-"+safeFilenamePart(d.BookingID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Nama   : "+safe(d.RequesterName, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "No HP  : "+safe(d.RequesterPhone, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("Sewa %s, %s s/d %s (%d hari)",
		safe(d.VehicleLabel, "-"), safe(d.PickupAt, "-"), safe(d.ReturnAt, "-"), d.DayCount)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Harga per hari : "+utils.FormatRupiah(d.PricePerDay))
	pdf.Ln(6)
	if d.DriverRequired {
		pdf.Cell(0, 6, "Layanan sopir  : termasuk")
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, "Lokasi ambil   : "+safe(d.PickupLocation, "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Lokasi kembali : "+safe(d.ReturnLocation, "-"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(d.TotalCost))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Status booking: "+safe(d.Status, "-")+". Simpan invoice ini sebagai bukti sewa.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := "INVOICE_" + safeFilenamePart(d.BookingID) + ".pdf"
	return buf.Bytes(), filename, nil
}

func buildReportPDF(report BookingReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Booking", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "LAPORAN BOOKING")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	window := "semua periode"
	if report.From != "" || report.To != "" {
		window = safe(report.From, "awal") + " s/d " + safe(report.To, "sekarang")
	}
	pdf.Cell(0, 7, "Periode        : "+window)
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total booking  : %d", report.TotalBookings))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Total pendapatan: "+utils.FormatRupiah(report.Revenue))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Per bulan:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, m := range report.Months {
		pdf.Cell(0, 6, fmt.Sprintf("  %s : %d booking, %s", m.Month, m.Bookings, utils.FormatRupiah(m.Revenue)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Per status:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, status := range []string{"pending", "confirmed", "completed", "cancelled"} {
		pdf.Cell(0, 6, fmt.Sprintf("  %-10s : %d", status, report.ByStatus[status]))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Per kendaraan:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, v := range report.Vehicles {
		label := safe(strings.TrimSpace(v.Make+" "+v.Model), v.VehicleID)
		line := fmt.Sprintf("  %s: %d booking, %d hari, %s",
			label, v.Bookings, v.DaysBooked, utils.FormatRupiah(v.Revenue))
		pdf.MultiCell(0, 6, line, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := "LAPORAN_" + safeFilenamePart(safe(report.From, "semua")+"_"+safe(report.To, "periode")) + ".pdf"
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
