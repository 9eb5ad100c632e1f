// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationChangedEvent is published after every successful insert,
// update or delete.  It carries enough for downstream consumers to build
// an audit trail without querying the primary database.
type ReservationChangedEvent struct {
	Action        string  `json:"action"` // created | updated | deleted
	ReservationID uint64  `json:"reservation_id"`
	Date          string  `json:"date"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Size          int     `json:"size"`
	Time          *string `json:"time"`
	ActorID       string  `json:"actor_id"` // staff user who made the change
	OccurredAt    string  `json:"occurred_at"`
}
