package booking

import (
	"context"
	"strings"
	"time"

	"rental-backend/internal/domain"
	"rental-backend/internal/domain/models"

	"github.com/google/uuid"
)

// SubmitState is a step of the booking submission flow.
type SubmitState string

const (
	StateDraft                SubmitState = "draft"
	StateValidating           SubmitState = "validating"
	StateAvailabilityChecking SubmitState = "availability_checking"
	StateSubmitting           SubmitState = "submitting"
	StateSucceeded            SubmitState = "succeeded"
	StateFailed               SubmitState = "failed"
)

// submitTransitions mirrors the booking-status graph style: every state
// names its legal successors, terminal states name none. Failed is never
// left automatically; the user restarts from a fresh draft.
var submitTransitions = map[SubmitState][]SubmitState{
	StateDraft:                {StateValidating},
	StateValidating:           {StateAvailabilityChecking, StateFailed},
	StateAvailabilityChecking: {StateSubmitting, StateFailed},
	StateSubmitting:           {StateSucceeded, StateFailed},
	StateSucceeded:            {},
	StateFailed:               {},
}

// IssueCode classifies a structural validation failure.
type IssueCode string

const (
	IssueMissingField   IssueCode = "missing_field"
	IssueInvalidRange   IssueCode = "invalid_range"
	IssueMissingPayment IssueCode = "missing_payment"
)

// Issue is one itemized validation failure.
type Issue struct {
	Code  IssueCode `json:"code"`
	Field string    `json:"field"`
	Msg   string    `json:"msg"`
}

// ValidationIssues reports every structural problem at once so the user can
// fix the whole form in one pass.
type ValidationIssues []Issue

func (v ValidationIssues) Error() string {
	parts := make([]string, 0, len(v))
	for _, is := range v {
		parts = append(parts, is.Field+": "+is.Msg)
	}
	return "draft tidak valid: " + strings.Join(parts, "; ")
}

// Draft holds the user-editable fields of a booking before validation.
type Draft struct {
	VehicleID        string    `json:"vehicleId"`
	RequesterID      string    `json:"requesterId"`
	PickupAt         time.Time `json:"pickupAt"`
	ReturnAt         time.Time `json:"returnAt"`
	PickupLocation   string    `json:"pickupLocation"`
	ReturnLocation   string    `json:"returnLocation"`
	DriverRequired   bool      `json:"driverRequired"`
	PaymentProofID   string    `json:"paymentProofId"`
	PaymentProofName string    `json:"paymentProofName"`
	EmergencyName    string    `json:"emergencyName"`
	EmergencyPhone   string    `json:"emergencyPhone"`
	SpecialRequests  string    `json:"specialRequests"`
}

// BookingLister fetches the current bookings of a vehicle. The submit flow
// calls it freshly for every invocation; cached lists must not be returned.
type BookingLister interface {
	ListBookingsForVehicle(ctx context.Context, vehicleID string) ([]models.Booking, error)
}

// BookingCreator persists one new booking record.
type BookingCreator interface {
	CreateBooking(ctx context.Context, b models.Booking) error
}

// SubmitFlow drives a draft through validation, a fresh availability
// re-check and a single persistence attempt. The re-check runs after the
// user's final confirmation and completes before the create call is issued;
// a write is never retried because it may have partially succeeded.
type SubmitFlow struct {
	Lister        BookingLister
	Creator       BookingCreator
	DriverDayRate int64

	// NewID and Now are swappable for tests; they default to uuid and
	// wall-clock time.
	NewID func() string
	Now   func() time.Time

	// OnTransition observes state changes (used for logging).
	OnTransition func(from, to SubmitState)
}

// SubmitResult reports where the flow ended and why.
type SubmitResult struct {
	State     SubmitState      `json:"state"`
	BookingID string           `json:"bookingId,omitempty"`
	Booking   models.Booking   `json:"booking,omitzero"`
	Quote     Quote            `json:"quote,omitzero"`
	Decision  Decision         `json:"decision,omitzero"`
	Issues    ValidationIssues `json:"issues,omitempty"`
}

func (f SubmitFlow) step(cur *SubmitState, to SubmitState) {
	for _, allowed := range submitTransitions[*cur] {
		if allowed == to {
			if f.OnTransition != nil {
				f.OnTransition(*cur, to)
			}
			*cur = to
			return
		}
	}
	// the transition table is fixed at compile time; reaching this means a
	// programming error in the flow itself
	panic("submit flow: illegal transition " + string(*cur) + " -> " + string(to))
}

// Submit runs the whole flow for one draft. pricePerDay comes from the
// vehicle record and is not user-editable. The returned error is non-nil
// exactly when the result state is Failed.
func (f SubmitFlow) Submit(ctx context.Context, d Draft, pricePerDay int64) (SubmitResult, error) {
	state := StateDraft
	res := SubmitResult{}

	f.step(&state, StateValidating)
	if issues := ValidateDraft(d); len(issues) > 0 {
		f.step(&state, StateFailed)
		res.State = state
		res.Issues = issues
		return res, issues
	}

	f.step(&state, StateAvailabilityChecking)
	existing, err := f.Lister.ListBookingsForVehicle(ctx, d.VehicleID)
	if err != nil {
		// could not verify is never "available"
		f.step(&state, StateFailed)
		res.State = state
		res.Decision = Indeterminate(d.VehicleID)
		return res, domain.IndeterminateError{VehicleID: d.VehicleID, Err: err}
	}

	decision, err := CheckAvailability(d.VehicleID, d.PickupAt, d.ReturnAt, existing)
	if err != nil {
		f.step(&state, StateFailed)
		res.State = state
		return res, err
	}
	res.Decision = decision
	if decision.Verdict != VerdictAvailable {
		f.step(&state, StateFailed)
		res.State = state
		return res, domain.ConflictError{Resource: "booking", Msg: "jadwal kendaraan bentrok dengan booking lain"}
	}

	quote, err := QuoteFor(d.PickupAt, d.ReturnAt, pricePerDay, d.DriverRequired, f.DriverDayRate)
	if err != nil {
		f.step(&state, StateFailed)
		res.State = state
		return res, err
	}
	res.Quote = quote

	f.step(&state, StateSubmitting)
	now := f.now()
	record := models.Booking{
		ID:               f.newID(),
		VehicleID:        d.VehicleID,
		RequesterID:      d.RequesterID,
		PickupAt:         d.PickupAt,
		ReturnAt:         d.ReturnAt,
		PickupLocation:   strings.TrimSpace(d.PickupLocation),
		ReturnLocation:   strings.TrimSpace(d.ReturnLocation),
		Status:           models.BookingPending,
		TotalCost:        quote.TotalCost,
		DayCount:         quote.DayCount,
		DriverRequired:   d.DriverRequired,
		PaymentProofID:   strings.TrimSpace(d.PaymentProofID),
		PaymentProofName: strings.TrimSpace(d.PaymentProofName),
		EmergencyName:    strings.TrimSpace(d.EmergencyName),
		EmergencyPhone:   strings.TrimSpace(d.EmergencyPhone),
		SpecialRequests:  strings.TrimSpace(d.SpecialRequests),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// single attempt; a failed create surfaces verbatim with no retry
	if err := f.Creator.CreateBooking(ctx, record); err != nil {
		f.step(&state, StateFailed)
		res.State = state
		return res, domain.PersistenceError{Op: "menyimpan booking", Err: err}
	}

	f.step(&state, StateSucceeded)
	res.State = state
	res.BookingID = record.ID
	res.Booking = record
	return res, nil
}

// ValidateDraft checks structural completeness and the range invariant,
// returning every issue found.
func ValidateDraft(d Draft) ValidationIssues {
	var issues ValidationIssues

	requireField := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			issues = append(issues, Issue{Code: IssueMissingField, Field: field, Msg: "wajib diisi"})
		}
	}

	requireField("vehicle_id", d.VehicleID)
	requireField("requester_id", d.RequesterID)
	requireField("pickup_location", d.PickupLocation)
	requireField("return_location", d.ReturnLocation)

	if d.PickupAt.IsZero() {
		issues = append(issues, Issue{Code: IssueMissingField, Field: "pickup_at", Msg: "wajib diisi"})
	}
	if d.ReturnAt.IsZero() {
		issues = append(issues, Issue{Code: IssueMissingField, Field: "return_at", Msg: "wajib diisi"})
	}
	if !d.PickupAt.IsZero() && !d.ReturnAt.IsZero() && !d.PickupAt.Before(d.ReturnAt) {
		issues = append(issues, Issue{Code: IssueInvalidRange, Field: "pickup_at", Msg: "pickup harus sebelum return"})
	}

	if strings.TrimSpace(d.PaymentProofID) == "" {
		issues = append(issues, Issue{Code: IssueMissingPayment, Field: "payment_proof_id", Msg: "bukti pembayaran wajib dilampirkan"})
	}

	return issues
}

func (f SubmitFlow) newID() string {
	if f.NewID != nil {
		return f.NewID()
	}
	return uuid.NewString()
}

func (f SubmitFlow) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
