package model

import "time"

// Reservation is a single booking record as stored in the `reservations`
// table.
//
// Fields:
//  ID        – primary key, assigned by the database on insert and never
//              reassigned by the application.
//  Date      – canonical YYYY-MM-DD calendar date with local-time
//              semantics.  Determines lock status and is never changed
//              by an edit.
//  Name      – guest display name, non-empty.
//  Phone     – canonical "+1 DDD-DDD-DDDD" contact number.
//  Size      – party size, always >= 1.
//  Time      – slot label such as "5:30 PM", nil when the booking is
//              unscheduled (stored as NULL, never as an empty string).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64    `json:"id"`
	Date      string    `json:"date"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Size      int       `json:"size"`
	Time      *string   `json:"time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
