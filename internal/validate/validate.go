// Package validate gates reservation submissions.  It owns the field
// rules shared by the create form and the editor, and the date lock
// policy applied before every mutation.  All errors carry user-facing
// messages and are reported inline; an operation that fails validation
// is never dispatched to storage.
package validate

import (
	"errors"
	"strings"

	"github.com/hirostaff/reservations/internal/dateutil"
	"github.com/hirostaff/reservations/internal/model"
	"github.com/hirostaff/reservations/internal/phone"
	"github.com/hirostaff/reservations/internal/repository"
	"github.com/hirostaff/reservations/internal/timeslot"
)

// Field-level validation failures.
var (
	ErrNameRequired = errors.New("Name is required.")
	ErrSizeTooSmall = errors.New("Party size must be at least 1.")
	ErrBadPhone     = errors.New("Phone must be a valid US number (10 digits).")
	ErrTimeRequired = errors.New("Please select a time.")
	ErrBadTimeSlot  = errors.New("Time must be one of the offered slots.")
	ErrBadDate      = errors.New("Date must be a valid YYYY-MM-DD value.")
)

// ReservationInput carries the raw form fields for a new reservation.
// Phone may be free text; it is normalized here.
type ReservationInput struct {
	Name  string
	Phone string
	Size  int
	Time  string
	Date  string
}

// PatchInput carries the editable fields of an existing reservation.
// Date is deliberately absent: edits never move a reservation to another
// day.  An empty Time marks the booking unscheduled.
type PatchInput struct {
	Name  string
	Phone string
	Size  int
	Time  string
}

// NewReservation validates a create submission against the given slot
// sequence and returns the normalized record ready for insertion.  The
// lock policy is applied last so field errors surface first; a locked
// date yields ErrDateLocked.
func NewReservation(in ReservationInput, slots []string) (model.Reservation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Reservation{}, ErrNameRequired
	}
	if in.Size < 1 {
		return model.Reservation{}, ErrSizeTooSmall
	}
	formatted := phone.Format(in.Phone)
	if !phone.Valid(formatted) {
		return model.Reservation{}, ErrBadPhone
	}
	if strings.TrimSpace(in.Time) == "" {
		return model.Reservation{}, ErrTimeRequired
	}
	if !timeslot.Contains(slots, in.Time) {
		return model.Reservation{}, ErrBadTimeSlot
	}
	if !dateutil.Valid(in.Date) {
		return model.Reservation{}, ErrBadDate
	}
	if err := CheckMutable(in.Date); err != nil {
		return model.Reservation{}, err
	}
	slot := in.Time
	return model.Reservation{
		Date:  in.Date,
		Name:  name,
		Phone: formatted,
		Size:  in.Size,
		Time:  &slot,
	}, nil
}

// Patch validates an edit submission.  The same field rules apply as for
// creation except that the time may be cleared; the lock check runs
// against the stored reservation's date in the handler, since the patch
// itself never carries a date.
func Patch(in PatchInput, slots []string) (repository.ReservationPatch, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.ReservationPatch{}, ErrNameRequired
	}
	if in.Size < 1 {
		return repository.ReservationPatch{}, ErrSizeTooSmall
	}
	formatted := phone.Format(in.Phone)
	if !phone.Valid(formatted) {
		return repository.ReservationPatch{}, ErrBadPhone
	}
	p := repository.ReservationPatch{
		Name:  name,
		Phone: formatted,
		Size:  in.Size,
	}
	if slot := strings.TrimSpace(in.Time); slot != "" {
		if !timeslot.Contains(slots, slot) {
			return repository.ReservationPatch{}, ErrBadTimeSlot
		}
		p.Time = &slot
	}
	return p, nil
}
