package validate

import (
	"errors"

	"github.com/hirostaff/reservations/internal/dateutil"
)

// ErrDateLocked is returned when a mutation targets a past date.  Handlers
// translate it into an HTTP 409 with the specific lock message so the
// client can surface why the action was refused rather than failing
// silently.
var ErrDateLocked = errors.New("past dates are locked")

// Lock messages surfaced to the user, one per mutation kind.
const (
	MsgLockedCreate = "Past dates are locked. You can't add reservations to past days."
	MsgLockedEdit   = "Past dates are locked. You can't edit old reservations."
	MsgLockedDelete = "Past dates are locked. You can't delete old reservations."
)

// CheckMutable applies the lock policy: a date is mutable iff it is today
// or later in local time.  Every insert, update and delete must call this
// immediately before dispatch, even when the triggering control was
// already disabled client-side; the day boundary may have crossed while a
// dialog sat open.
func CheckMutable(ymd string) error {
	if dateutil.IsPast(ymd) {
		return ErrDateLocked
	}
	return nil
}
