package repository

import (
	"context"
	"database/sql"
	"sort"

	"github.com/hirostaff/reservations/internal/model"
	"github.com/hirostaff/reservations/internal/timeslot"
)

// ReservationRepo provides CRUD operations for the reservations table.
// The `date` column holds the canonical YYYY-MM-DD string; the `time`
// column holds a slot label and is NULL for unscheduled bookings.  The
// repository normalizes the nullable time on both read and write so an
// empty string never reaches storage or callers.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationPatch carries the mutable fields of an edit.  Date is not a
// member: edits are scoped to name, phone, size and time only, and the
// stored date can never change through the application layer.
type ReservationPatch struct {
	Name  string
	Phone string
	Size  int
	Time  *string
}

const reservationCols = `id, date, name, phone, size, time, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var (
		res  model.Reservation
		slot sql.NullString
	)
	err := row.Scan(&res.ID, &res.Date, &res.Name, &res.Phone, &res.Size,
		&slot, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	// Normalize: NULL and "" both become an absent time.
	if slot.Valid && slot.String != "" {
		s := slot.String
		res.Time = &s
	}
	return res, nil
}

// ListByDate returns the reservations for a single day ordered
// chronologically.  Slot labels are 12-hour strings and do not sort
// lexicographically, so ordering is done here by parsed minute-of-day
// with unscheduled entries last; ties fall back to insertion order.
func (r *ReservationRepo) ListByDate(ctx context.Context, ymd string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE date = ?`
	rows, err := r.db.QueryContext(ctx, q, ymd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return slotMinute(list[i].Time) < slotMinute(list[j].Time)
	})
	return list, nil
}

// slotMinute maps a nullable slot label to a sortable minute-of-day.
// Absent or unparseable labels sort after every real slot.
func slotMinute(slot *string) int {
	if slot == nil {
		return 24 * 60
	}
	m, ok := timeslot.MinuteOfDay(*slot)
	if !ok {
		return 24 * 60
	}
	return m
}

// ListDates returns every distinct date that has at least one
// reservation, ascending.  De-duplication happens here rather than in
// SQL so the result is a true set regardless of what the store returns.
func (r *ReservationRepo) ListDates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM reservations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(dates)
	return dates, nil
}

// GetByID fetches one reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ? LIMIT 1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// Insert persists a new reservation.  The database assigns the id; the
// generated id and timestamps are read back onto the record so the
// caller can echo the stored row.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (date, name, phone, size, time) VALUES (?, ?, ?, ?, ?)`
	out, err := r.db.ExecContext(ctx, q, res.Date, res.Name, res.Phone, res.Size, nullableSlot(res.Time))
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*res = stored
	return nil
}

// Update rewrites the mutable fields of a reservation.  The date column
// is intentionally absent from the statement.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, p ReservationPatch) error {
	const q = `UPDATE reservations SET name = ?, phone = ?, size = ?, time = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, p.Name, p.Phone, p.Size, nullableSlot(p.Time), id)
	return err
}

// Delete removes a reservation by id.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	out, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := out.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// nullableSlot converts an absent or empty slot to SQL NULL.
func nullableSlot(slot *string) any {
	if slot == nil || *slot == "" {
		return nil
	}
	return *slot
}
