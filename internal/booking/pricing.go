package booking

import (
	"time"

	"rental-backend/internal/domain"
)

// DefaultDriverDayRate is the fixed per-day surcharge for the driver service
// when no override is configured (see config.Env).
const DefaultDriverDayRate int64 = 1000

// Quote is a deterministic price breakdown for a candidate booking. Amounts
// are plain numbers; currency formatting is a UI concern.
type Quote struct {
	DayCount       int   `json:"dayCount"`
	PricePerDay    int64 `json:"pricePerDay"`
	DriverRequired bool  `json:"driverRequired"`
	DriverDayRate  int64 `json:"driverDayRate"`
	DriverCost     int64 `json:"driverCost"`
	TotalCost      int64 `json:"totalCost"`
}

// TotalCost computes dayCount*pricePerDay plus the driver surcharge when
// requested. Pure function; identical inputs always produce identical output.
func TotalCost(dayCount int, pricePerDay int64, driverRequired bool, driverDayRate int64) (int64, error) {
	if dayCount < 1 {
		return 0, domain.ValidationError{Field: "day_count", Msg: "minimal 1 hari"}
	}
	if pricePerDay < 0 {
		return 0, domain.ValidationError{Field: "price_per_day", Msg: "tidak boleh negatif"}
	}
	if driverDayRate < 0 {
		return 0, domain.ValidationError{Field: "driver_day_rate", Msg: "tidak boleh negatif"}
	}

	total := int64(dayCount) * pricePerDay
	if driverRequired {
		total += int64(dayCount) * driverDayRate
	}
	return total, nil
}

// QuoteFor derives the full breakdown from a pickup/return pair, using the
// same inclusive day-count the availability check uses.
func QuoteFor(pickup, ret time.Time, pricePerDay int64, driverRequired bool, driverDayRate int64) (Quote, error) {
	if !pickup.Before(ret) {
		return Quote{}, InvalidRangeError{Start: pickup, End: ret}
	}
	days, err := DayCount(pickup, ret)
	if err != nil {
		return Quote{}, err
	}
	if driverDayRate <= 0 {
		driverDayRate = DefaultDriverDayRate
	}

	total, err := TotalCost(days, pricePerDay, driverRequired, driverDayRate)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		DayCount:       days,
		PricePerDay:    pricePerDay,
		DriverRequired: driverRequired,
		DriverDayRate:  driverDayRate,
		TotalCost:      total,
	}
	if driverRequired {
		q.DriverCost = int64(days) * driverDayRate
	}
	return q, nil
}
