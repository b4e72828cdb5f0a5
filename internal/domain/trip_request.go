package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// MaxTripDays caps the span a single itinerary may cover.
const MaxTripDays = 30

// Budget is the spending tier a traveller selects.
type Budget string

const (
	BudgetLow    Budget = "budget"
	BudgetMid    Budget = "mid-range"
	BudgetLuxury Budget = "luxury"
)

// Valid reports whether b is one of the fixed budget tiers.
func (b Budget) Valid() bool {
	switch b {
	case BudgetLow, BudgetMid, BudgetLuxury:
		return true
	}
	return false
}

// Pace controls how densely each day is scheduled.
type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PacePacked   Pace = "packed"
)

// Valid reports whether p is one of the fixed pace values.
func (p Pace) Valid() bool {
	switch p {
	case PaceRelaxed, PaceModerate, PacePacked:
		return true
	}
	return false
}

// TripRequestInput is the raw, unvalidated trip request as received from a client.
type TripRequestInput struct {
	Destination string
	StartDate   string
	EndDate     string
	Interests   []string
	Budget      string
	Pace        string
}

// TripRequest is the canonical, validated set of trip constraints.
// It is never stored on its own; an Itinerary carries its fields.
type TripRequest struct {
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"-"`
	EndDate     time.Time `json:"-"`
	Interests   []string  `json:"interests"`
	Budget      Budget    `json:"budget"`
	Pace        Pace      `json:"pace"`
}

// DaySpan returns the number of calendar days covered by the trip, inclusive
// of both the start and end date.
func (r TripRequest) DaySpan() int {
	return DaySpan(r.StartDate, r.EndDate)
}

// Title is the display title derived from the span and destination,
// e.g. "6 Days in Bali, Indonesia".
func (r TripRequest) Title() string {
	n := r.DaySpan()
	if n == 1 {
		return fmt.Sprintf("1 Day in %s", r.Destination)
	}
	return fmt.Sprintf("%d Days in %s", n, r.Destination)
}

// DateOf returns the calendar date of the given 1-based day number.
func (r TripRequest) DateOf(day int) time.Time {
	return r.StartDate.AddDate(0, 0, day-1)
}

// DaySpan counts calendar days from start to end inclusive.
// Returns 0 when end precedes start.
func DaySpan(start, end time.Time) int {
	s := truncateDay(start)
	e := truncateDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s)/(24*time.Hour)) + 1
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
