package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rental-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDocsServiceGenerateInvoice(t *testing.T) {
	loader := func(_ context.Context, id string) (bookingDocData, error) {
		return bookingDocData{
			BookingID:      id,
			RequesterName:  "Tester",
			RequesterPhone: "0800",
			VehicleLabel:   "Toyota Avanza",
			PickupAt:       "2025-07-10 09:00:00",
			ReturnAt:       "2025-07-13 09:00:00",
			PickupLocation: "Bandara",
			ReturnLocation: "Kantor Pusat",
			Status:         "confirmed",
			DayCount:       4,
			PricePerDay:    1500,
			TotalCost:      6000,
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateBookingInvoice(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("GenerateBookingInvoice returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateBookingInvoice returned empty data")
	}
}

func TestInvoiceDataUsesStoredBookingRate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			"bk-1", "veh-1", "user-9",
			time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local), time.Date(2025, 7, 12, 9, 0, 0, 0, time.Local),
			"A", "B",
			"confirmed", int64(6000), 3, false,
			"file-1", "", "", "", "",
			now, now,
		))
	// fleet price has since been raised; the invoice must not pick it up
	mock.ExpectQuery("FROM vehicles").WithArgs("veh-1").
		WillReturnRows(sqlmock.NewRows(vehicleCols).
			AddRow("veh-1", "Toyota", "Avanza", "mpv", "bensin", 7, int64(9999), 1, "", now, now))
	mock.ExpectQuery("FROM users").WithArgs("user-9").
		WillReturnError(sql.ErrNoRows)

	svc := DocsService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		UserRepo:    repositories.UserRepository{DB: db},
	}

	data, err := svc.loadBookingDocData(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("loadBookingDocData returned error: %v", err)
	}
	if data.PricePerDay != 2000 {
		t.Fatalf("price per day = %d, want 2000 derived from the stored total", data.PricePerDay)
	}
	if data.TotalCost != 6000 || data.DayCount != 3 {
		t.Fatalf("unexpected totals: %+v", data)
	}
	if data.VehicleLabel != "Toyota Avanza" {
		t.Fatalf("vehicle label = %q", data.VehicleLabel)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDocsServiceGenerateReportPDF(t *testing.T) {
	report := BookingReport{
		From:          "2025-07-01",
		To:            "2025-07-31",
		TotalBookings: 3,
		ByStatus:      map[string]int{"confirmed": 2, "cancelled": 1},
		Revenue:       12000,
		Vehicles: []VehicleUsage{
			{VehicleID: "veh-1", Make: "Toyota", Model: "Avanza", Bookings: 2, DaysBooked: 7, Revenue: 12000},
		},
	}

	svc := DocsService{}
	pdf, filename, err := svc.GenerateReportPDF(report)
	if err != nil {
		t.Fatalf("GenerateReportPDF returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateReportPDF returned empty data")
	}
}
