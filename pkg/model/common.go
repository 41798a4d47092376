// Package model defines the core data types of the induction scheduling core.
package model

import (
	"time"

	"github.com/google/uuid"
)

// TrainsetID identifies a trainset.
type TrainsetID = uuid.UUID

// BayID identifies a stabling bay.
type BayID = uuid.UUID

// BaseModel carries the identity fields shared by every entity.
type BaseModel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBaseModel creates a BaseModel with a fresh id and current timestamps.
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateOnly is a calendar date with no time-of-day component, formatted
// "2006-01-02" on the wire, with a parsed type callers can compare and
// do arithmetic on.
type DateOnly string

const dateLayout = "2006-01-02"

// Parse converts the date string to a time.Time at midnight UTC.
// A malformed date parses to the zero time; callers that need to treat
// this conservatively check IsZero explicitly rather than propagating
// the parse error.
func (d DateOnly) Parse() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// DaysUntil returns the whole number of days from d to other (other - d).
func (d DateOnly) DaysUntil(other DateOnly) int {
	from := d.Parse()
	to := other.Parse()
	if from.IsZero() || to.IsZero() {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

// DateOnlyOf formats a time.Time as a DateOnly.
func DateOnlyOf(t time.Time) DateOnly {
	return DateOnly(t.Format(dateLayout))
}
