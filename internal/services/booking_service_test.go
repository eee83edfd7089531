package services

import (
	"context"
	"testing"
	"time"

	"rental-backend/internal/booking"
	"rental-backend/internal/domain"
	"rental-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"id", "vehicle_id", "requester_id",
	"pickup_at", "return_at",
	"pickup_location", "return_location",
	"status", "total_cost", "day_count", "driver_required",
	"payment_proof_id", "payment_proof_name",
	"emergency_name", "emergency_phone", "special_requests",
	"created_at", "updated_at",
}

var vehicleCols = []string{
	"id", "make", "model", "category", "fuel_type",
	"seats", "price_per_day", "available", "image_ref",
	"created_at", "updated_at",
}

func vehicleRow(available bool) *sqlmock.Rows {
	avail := 0
	if available {
		avail = 1
	}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	return sqlmock.NewRows(vehicleCols).
		AddRow("veh-1", "Toyota", "Avanza", "mpv", "bensin", 7, int64(1500), avail, "", now, now)
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2025, 7, 1, 8, 0, 0, 0, time.Local) },
	}
	return svc, mock, func() { db.Close() }
}

func TestBookingServiceSubmitPersistsPending(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery("FROM vehicles").WithArgs("veh-1").
		WillReturnRows(vehicleRow(true))
	mock.ExpectQuery("FROM bookings").WithArgs("veh-1").
		WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Submit(context.Background(), domain.RequestContext{UserID: "user-9", Role: "requester"}, booking.Draft{
		VehicleID:      "veh-1",
		PickupAt:       time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local),
		ReturnAt:       time.Date(2025, 7, 13, 9, 0, 0, 0, time.Local),
		PickupLocation: "Bandara",
		ReturnLocation: "Kantor Pusat",
		PaymentProofID: "file-123",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if res.State != booking.StateSucceeded {
		t.Fatalf("state = %s, want succeeded", res.State)
	}
	if res.Booking.RequesterID != "user-9" {
		t.Fatalf("requester = %q, want caller id", res.Booking.RequesterID)
	}
	if res.Quote.TotalCost != 6000 {
		t.Fatalf("total = %d, want 6000", res.Quote.TotalCost)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingServiceSubmitRejectsPulledVehicle(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery("FROM vehicles").WithArgs("veh-1").
		WillReturnRows(vehicleRow(false))

	res, err := svc.Submit(context.Background(), domain.RequestContext{UserID: "user-9"}, booking.Draft{
		VehicleID:      "veh-1",
		PickupAt:       time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local),
		ReturnAt:       time.Date(2025, 7, 13, 9, 0, 0, 0, time.Local),
		PickupLocation: "Bandara",
		ReturnLocation: "Kantor Pusat",
		PaymentProofID: "file-123",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if res.Decision.Verdict != booking.VerdictUnavailable {
		t.Fatalf("verdict = %s, want unavailable", res.Decision.Verdict)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingServiceCheckAvailabilityIndeterminateOnListError(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery("FROM vehicles").WithArgs("veh-1").
		WillReturnRows(vehicleRow(true))
	mock.ExpectQuery("FROM bookings").WithArgs("veh-1").
		WillReturnError(context.DeadlineExceeded)

	decision, err := svc.CheckAvailability(context.Background(), "veh-1",
		time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local),
		time.Date(2025, 7, 12, 9, 0, 0, 0, time.Local))
	if !domain.IsIndeterminate(err) {
		t.Fatalf("err = %v, want indeterminate", err)
	}
	if decision.Verdict != booking.VerdictIndeterminate {
		t.Fatalf("verdict = %s, want indeterminate", decision.Verdict)
	}
}

func TestBookingServiceConfirmRequiresStaff(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	_, err := svc.Confirm(context.Background(), domain.RequestContext{UserID: "user-9", Role: "requester"}, "bk-1")
	if !domain.IsForbidden(err) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestBookingServiceCancelCompletedIsConflict(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			"bk-1", "veh-1", "user-9",
			time.Date(2025, 5, 1, 9, 0, 0, 0, time.Local), time.Date(2025, 5, 3, 9, 0, 0, 0, time.Local),
			"A", "B",
			"completed", int64(4500), 3, false,
			"file-1", "", "", "", "",
			now, now,
		))

	_, err := svc.Cancel(context.Background(), domain.RequestContext{UserID: "user-9"}, "bk-1")
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestBookingServiceDeleteHistoryOnlyTerminal(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	pendingRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(bookingCols).AddRow(
			"bk-1", "veh-1", "user-9",
			time.Date(2025, 8, 1, 9, 0, 0, 0, time.Local), time.Date(2025, 8, 3, 9, 0, 0, 0, time.Local),
			"A", "B",
			"pending", int64(4500), 3, false,
			"file-1", "", "", "", "",
			now, now,
		)
	}

	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(pendingRow())
	err := svc.DeleteHistory(context.Background(), domain.RequestContext{UserID: "user-9"}, "bk-1")
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict for active booking", err)
	}

	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(pendingRow())
	err = svc.DeleteHistory(context.Background(), domain.RequestContext{UserID: "user-10"}, "bk-1")
	if !domain.IsForbidden(err) {
		t.Fatalf("err = %v, want forbidden for other user", err)
	}
}
