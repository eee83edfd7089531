package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"rental-backend/internal/booking"
	intconfig "rental-backend/internal/config"
	"rental-backend/internal/domain/models"
	"rental-backend/internal/repositories"
)

// BookingReportFilter bounds the report window. Zero times mean unbounded.
type BookingReportFilter struct {
	From time.Time
	To   time.Time
}

// VehicleUsage aggregates one vehicle's share of the report window.
type VehicleUsage struct {
	VehicleID  string `json:"vehicleId"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Bookings   int    `json:"bookings"`
	DaysBooked int    `json:"daysBooked"`
	Revenue    int64  `json:"revenue"`
}

// MonthSummary is one calendar month's slice of the report, keyed by the
// pickup month.
type MonthSummary struct {
	Month    string `json:"month"`
	Bookings int    `json:"bookings"`
	Revenue  int64  `json:"revenue"`
}

// BookingReport is the staff-facing aggregate over a window.
type BookingReport struct {
	From          string         `json:"from,omitempty"`
	To            string         `json:"to,omitempty"`
	TotalBookings int            `json:"totalBookings"`
	ByStatus      map[string]int `json:"byStatus"`
	Revenue       int64          `json:"revenue"`
	Months        []MonthSummary `json:"months"`
	Vehicles      []VehicleUsage `json:"vehicles"`
}

type ReportsService struct {
	BookingRepo repositories.BookingRepository
	VehicleRepo repositories.VehicleRepository
	DB          *sql.DB
}

func (s ReportsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReportsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s ReportsService) vehicles() repositories.VehicleRepository {
	if s.VehicleRepo.DB != nil {
		return s.VehicleRepo
	}
	return repositories.VehicleRepository{DB: s.db()}
}

// GetBookingReport aggregates bookings touching the window. Revenue counts
// non-cancelled bookings; days-booked uses the same inclusive day counting
// as the availability check, so utilization and the calendar agree.
func (s ReportsService) GetBookingReport(ctx context.Context, f BookingReportFilter) (BookingReport, error) {
	list, err := s.bookings().ListBookings(ctx, repositories.BookingFilter{From: f.From, To: f.To})
	if err != nil {
		return BookingReport{}, err
	}

	report := BookingReport{
		TotalBookings: len(list),
		ByStatus:      map[string]int{},
		Months:        []MonthSummary{},
		Vehicles:      []VehicleUsage{},
	}
	if !f.From.IsZero() {
		report.From = f.From.Format("2006-01-02")
	}
	if !f.To.IsZero() {
		report.To = f.To.Format("2006-01-02")
	}

	perVehicle := map[string]*VehicleUsage{}
	vehicleDays := map[string]map[booking.DayKey]struct{}{}
	perMonth := map[string]*MonthSummary{}
	for _, b := range list {
		report.ByStatus[string(b.Status)]++

		monthKey := b.PickupAt.Format("2006-01")
		month, ok := perMonth[monthKey]
		if !ok {
			month = &MonthSummary{Month: monthKey}
			perMonth[monthKey] = month
		}
		month.Bookings++

		usage, ok := perVehicle[b.VehicleID]
		if !ok {
			usage = &VehicleUsage{VehicleID: b.VehicleID}
			perVehicle[b.VehicleID] = usage
			vehicleDays[b.VehicleID] = map[booking.DayKey]struct{}{}
		}
		usage.Bookings++

		if b.Status == models.BookingCancelled {
			continue
		}
		report.Revenue += b.TotalCost
		usage.Revenue += b.TotalCost
		month.Revenue += b.TotalCost
		if span, err := booking.DaySpan(b.PickupAt, b.ReturnAt); err == nil {
			for _, d := range span {
				vehicleDays[b.VehicleID][d] = struct{}{}
			}
		}
	}

	for _, m := range perMonth {
		report.Months = append(report.Months, *m)
	}
	sort.Slice(report.Months, func(i, j int) bool { return report.Months[i].Month < report.Months[j].Month })

	for id, usage := range perVehicle {
		usage.DaysBooked = len(vehicleDays[id])
		if v, err := s.vehicles().GetVehicleByID(ctx, id); err == nil {
			usage.Make = v.Make
			usage.Model = v.Model
		}
		report.Vehicles = append(report.Vehicles, *usage)
	}
	sort.Slice(report.Vehicles, func(i, j int) bool {
		if report.Vehicles[i].Revenue != report.Vehicles[j].Revenue {
			return report.Vehicles[i].Revenue > report.Vehicles[j].Revenue
		}
		return report.Vehicles[i].VehicleID < report.Vehicles[j].VehicleID
	})

	return report, nil
}
