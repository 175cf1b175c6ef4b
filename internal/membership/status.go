package membership

import (
	"fmt"
	"time"
)

// Status is the cached membership state of a client. It is a snapshot
// recomputed on writes and on the explicit status sweep, not a live value.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
)

// DeriveStatus classifies a plan against a reference date. A plan ending on
// the reference date itself is still Active.
func DeriveStatus(planEnd, referenceDate time.Time) Status {
	if DateOnly(planEnd).Before(DateOnly(referenceDate)) {
		return StatusExpired
	}
	return StatusActive
}

// ExpiringSoonWindowDays is the lookahead used by the expiring-soon listing:
// plans ending within this many days of the reference date, inclusive.
const ExpiringSoonWindowDays = 2

// StatusFilter selects which clients a listing returns.
type StatusFilter string

const (
	// FilterAll returns every client and, as the only side-effecting read,
	// refreshes every cached status first.
	FilterAll      StatusFilter = "all"
	FilterActive   StatusFilter = "active"
	FilterInactive StatusFilter = "inactive"
	FilterExpiring StatusFilter = "expiring"
)

// ParseStatusFilter validates a raw filter string from the query boundary.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch StatusFilter(raw) {
	case FilterAll, FilterActive, FilterInactive, FilterExpiring:
		return StatusFilter(raw), nil
	}
	return "", fmt.Errorf("unknown status filter %q", raw)
}
