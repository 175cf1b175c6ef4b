package models

import (
	"time"

	"gym_crm_backend/internal/membership"
)

// Valid gender values for a client record.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Client is a gym membership record. ID is the internal surrogate key;
// CustomID (GS001, ...) is the human-facing identifier shown to staff.
// Status is a cached snapshot, refreshed on writes and on status sweeps.
// AmountPaid holds the amount recorded for the most recent registration or
// renewal; renewals overwrite it rather than accumulate.
type Client struct {
	ID         int64             `json:"id" db:"id"`
	CustomID   string            `json:"custom_id" db:"custom_id"`
	Name       string            `json:"name" db:"name"`
	Phone      string            `json:"phone" db:"phone"`
	Gender     string            `json:"gender" db:"gender"`
	PlanStart  time.Time         `json:"plan_start" db:"plan_start"`
	PlanEnd    time.Time         `json:"plan_end" db:"plan_end"`
	Status     membership.Status `json:"status" db:"status"`
	AmountPaid int               `json:"amount_paid" db:"amount_paid"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
}

// IsValidGender reports whether g is one of the fixed gender values.
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}
