// Package cache holds the Redis-backed cache for the highlighted-date
// set.  The set is date-independent and only changes when a reservation
// is created, edited or deleted, so it is cached with a short TTL and
// invalidated explicitly after every successful mutation.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const datesKey = "reservations:dates"

// Dates caches the distinct-dates set.  A nil client disables the cache;
// every method then behaves as a miss or a no-op so callers never need
// to branch on availability.
type Dates struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDates builds the cache.  rdb may be nil.
func NewDates(rdb *redis.Client, ttl time.Duration) *Dates {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Dates{rdb: rdb, ttl: ttl}
}

// Get returns the cached set and true on a hit.  Corrupt or missing
// entries report a miss.
func (d *Dates) Get(ctx context.Context) ([]string, bool) {
	if d == nil || d.rdb == nil {
		return nil, false
	}
	raw, err := d.rdb.Get(ctx, datesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, false
	}
	return dates, true
}

// Set stores the set with the configured TTL.  Failures are ignored; the
// cache is an optimization, not a source of truth.
func (d *Dates) Set(ctx context.Context, dates []string) {
	if d == nil || d.rdb == nil {
		return
	}
	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}
	_ = d.rdb.Set(ctx, datesKey, raw, d.ttl).Err()
}

// Invalidate drops the cached set.  Called after every successful
// insert, update or delete so the next fetch recomputes from storage.
func (d *Dates) Invalidate(ctx context.Context) {
	if d == nil || d.rdb == nil {
		return
	}
	_ = d.rdb.Del(ctx, datesKey).Err()
}
