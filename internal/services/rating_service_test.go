package services

import (
	"context"
	"testing"
	"time"

	"rental-backend/internal/domain"
	"rental-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRatingService(t *testing.T) (RatingService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := RatingService{
		RatingRepo:  repositories.RatingRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
		Now:         func() time.Time { return time.Date(2025, 7, 20, 10, 0, 0, 0, time.Local) },
		NewID:       func() string { return "rt-fixed" },
	}
	return svc, mock, func() { db.Close() }
}

func confirmedBookingRow(requester string) *sqlmock.Rows {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	return sqlmock.NewRows(bookingCols).AddRow(
		"bk-1", "veh-1", requester,
		time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local), time.Date(2025, 7, 13, 9, 0, 0, 0, time.Local),
		"A", "B",
		"confirmed", int64(6000), 4, false,
		"file-1", "", "", "", "",
		now, now,
	)
}

func TestSubmitRatingCompletesBooking(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(confirmedBookingRow("user-9"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("ratings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("ratings"))
	// no prior rating
	mock.ExpectQuery("FROM ratings").WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO ratings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rating, err := svc.SubmitRating(context.Background(), domain.RequestContext{UserID: "user-9"}, "bk-1", 5, "  mantap   sekali ")
	if err != nil {
		t.Fatalf("SubmitRating returned error: %v", err)
	}
	if rating.ID != "rt-fixed" || rating.Stars != 5 || rating.VehicleID != "veh-1" {
		t.Fatalf("unexpected rating: %+v", rating)
	}
	if rating.Comment != "mantap sekali" {
		t.Fatalf("comment = %q, want normalized whitespace", rating.Comment)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitRatingCreatesTableOnFreshDatabase(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(confirmedBookingRow("user-9"))
	// table absent: DDL must run before any read on ratings
	mock.ExpectQuery("information_schema\\.tables").WithArgs("ratings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ratings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM ratings").WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO ratings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rating, err := svc.SubmitRating(context.Background(), domain.RequestContext{UserID: "user-9"}, "bk-1", 5, "pertama kali")
	if err != nil {
		t.Fatalf("SubmitRating returned error: %v", err)
	}
	if rating.Stars != 5 {
		t.Fatalf("unexpected rating: %+v", rating)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitRatingStarsOutOfRange(t *testing.T) {
	svc, _, done := newRatingService(t)
	defer done()

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.SubmitRating(context.Background(), domain.RequestContext{UserID: "user-9"}, "bk-1", stars, "")
		if !domain.IsValidation(err) {
			t.Fatalf("stars=%d: err = %v, want validation", stars, err)
		}
	}
}

func TestSubmitRatingRejectsOtherUsersBooking(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(confirmedBookingRow("user-9"))

	_, err := svc.SubmitRating(context.Background(), domain.RequestContext{UserID: "user-10"}, "bk-1", 4, "")
	if !domain.IsForbidden(err) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestSubmitRatingRequiresConfirmedBooking(t *testing.T) {
	svc, mock, done := newRatingService(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM bookings").WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			"bk-1", "veh-1", "user-9",
			time.Date(2025, 7, 10, 9, 0, 0, 0, time.Local), time.Date(2025, 7, 13, 9, 0, 0, 0, time.Local),
			"A", "B",
			"pending", int64(6000), 4, false,
			"file-1", "", "", "", "",
			now, now,
		))

	_, err := svc.SubmitRating(context.Background(), domain.RequestContext{UserID: "user-9"}, "bk-1", 4, "")
	if !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
}
