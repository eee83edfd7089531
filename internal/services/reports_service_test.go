package services

import (
	"context"
	"testing"
	"time"

	"rental-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingReportAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows(bookingCols).
		AddRow("bk-1", "veh-1", "user-9",
			time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local), time.Date(2025, 7, 13, 9, 0, 0, 0, time.Local),
			"A", "B", "confirmed", int64(6000), 4, false,
			"f1", "", "", "", "", now, now).
		AddRow("bk-2", "veh-1", "user-10",
			time.Date(2025, 7, 20, 9, 0, 0, 0, time.Local), time.Date(2025, 7, 21, 9, 0, 0, 0, time.Local),
			"A", "B", "cancelled", int64(3000), 2, false,
			"f2", "", "", "", "", now, now).
		AddRow("bk-3", "veh-2", "user-9",
			time.Date(2025, 7, 12, 9, 0, 0, 0, time.Local), time.Date(2025, 7, 12, 17, 0, 0, 0, time.Local),
			"A", "B", "completed", int64(2000), 1, false,
			"f3", "", "", "", "", now, now)

	// per-vehicle lookups happen in map order
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("FROM bookings").WillReturnRows(rows)
	mock.ExpectQuery("FROM vehicles").WithArgs("veh-1").
		WillReturnRows(sqlmock.NewRows(vehicleCols).
			AddRow("veh-1", "Toyota", "Avanza", "mpv", "bensin", 7, int64(1500), 1, "", now, now))
	mock.ExpectQuery("FROM vehicles").WithArgs("veh-2").
		WillReturnRows(sqlmock.NewRows(vehicleCols).
			AddRow("veh-2", "Honda", "Brio", "city", "bensin", 5, int64(2000), 1, "", now, now))

	svc := ReportsService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
	}

	report, err := svc.GetBookingReport(context.Background(), BookingReportFilter{})
	if err != nil {
		t.Fatalf("GetBookingReport returned error: %v", err)
	}

	if report.TotalBookings != 3 {
		t.Fatalf("total = %d, want 3", report.TotalBookings)
	}
	// cancelled bookings count in totals but never in revenue
	if report.Revenue != 8000 {
		t.Fatalf("revenue = %d, want 8000", report.Revenue)
	}
	if report.ByStatus["cancelled"] != 1 || report.ByStatus["confirmed"] != 1 || report.ByStatus["completed"] != 1 {
		t.Fatalf("unexpected status counts: %+v", report.ByStatus)
	}

	if len(report.Months) != 1 || report.Months[0].Month != "2025-07" || report.Months[0].Revenue != 8000 {
		t.Fatalf("unexpected months: %+v", report.Months)
	}
	if report.Months[0].Bookings != 3 {
		t.Fatalf("month bookings = %d, want 3", report.Months[0].Bookings)
	}

	if len(report.Vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2", len(report.Vehicles))
	}
	// sorted by revenue: veh-1 (6000) before veh-2 (2000)
	first := report.Vehicles[0]
	if first.VehicleID != "veh-1" || first.Bookings != 2 || first.DaysBooked != 4 {
		t.Fatalf("unexpected first vehicle usage: %+v", first)
	}
	second := report.Vehicles[1]
	if second.VehicleID != "veh-2" || second.DaysBooked != 1 {
		t.Fatalf("unexpected second vehicle usage: %+v", second)
	}
}
