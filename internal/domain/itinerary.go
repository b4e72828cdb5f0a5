// Package domain contains the core data types for the itinerary planner.
// It depends only on uuid and is imported by every other internal package
// (repo, supply, synth, service, handler).
package domain

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Period is the part of the day a time block belongs to.
// It is informational: blocks are not required to be unique or ordered by period.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// Valid reports whether p is one of the fixed periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return true
	}
	return false
}

// Itinerary is the persisted root record for one planned trip.
// The store owns it; services only hold copies for the duration of a request.
type Itinerary struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Destination string            `json:"destination"`
	StartDate   time.Time         `json:"startDate"`
	EndDate     time.Time         `json:"endDate"`
	Interests   []string          `json:"interests"`
	Budget      Budget            `json:"budget"`
	Pace        Pace              `json:"pace"`
	Days        []ItineraryDay    `json:"days"`
	FlightData  []FlightOption    `json:"flightData,omitempty"`
	HotelData   []HotelOption     `json:"hotelData,omitempty"`
	WeatherData []WeatherForecast `json:"weatherData,omitempty"`
	TotalCost   string            `json:"totalCost,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ItineraryDay is one calendar day of an itinerary. Day is 1-based and dense.
type ItineraryDay struct {
	Day             int         `json:"day"`
	Date            string      `json:"date"`
	Title           string      `json:"title"`
	Weather         DayWeather  `json:"weather"`
	TimeBlocks      []TimeBlock `json:"timeBlocks"`
	TotalCost       float64     `json:"totalCost"`
	WalkingDistance string      `json:"walkingDistance"`
}

// DayWeather is the weather snapshot shown alongside a day.
type DayWeather struct {
	Condition   string `json:"condition"`
	Temperature string `json:"temperature"`
	Icon        string `json:"icon"`
}

// TimeBlock is one scheduled slot within a day. Its position in
// ItineraryDay.TimeBlocks is the timeBlockIndex used by regeneration.
type TimeBlock struct {
	Time     string   `json:"time"`
	Period   Period   `json:"period"`
	Activity Activity `json:"activity"`
}

// Activity is the thing the traveller does during a time block.
type Activity struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Cost        string   `json:"cost"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Location    Location `json:"location"`
}

// Location is a geocoordinate plus a human-readable address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// ItineraryPatch is a top-level shallow update. Nil fields are left untouched;
// a non-nil Days replaces the whole day list and is never merged into it.
type ItineraryPatch struct {
	Title     *string
	Budget    *Budget
	Days      []ItineraryDay
	TotalCost *string
}

// Apply returns a copy of it with the patch applied.
func (p ItineraryPatch) Apply(it Itinerary) Itinerary {
	out := it.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Budget != nil {
		out.Budget = *p.Budget
	}
	if p.Days != nil {
		out.Days = CloneDays(p.Days)
	}
	if p.TotalCost != nil {
		out.TotalCost = *p.TotalCost
	}
	return out
}

// TripRequest rebuilds the constraints the itinerary was generated from.
func (it Itinerary) TripRequest() TripRequest {
	return TripRequest{
		Destination: it.Destination,
		StartDate:   it.StartDate,
		EndDate:     it.EndDate,
		Interests:   slices.Clone(it.Interests),
		Budget:      it.Budget,
		Pace:        it.Pace,
	}
}

// Supply returns the supply snapshot captured when the itinerary was generated.
func (it Itinerary) Supply() SupplySnapshot {
	return SupplySnapshot{
		Flights: slices.Clone(it.FlightData),
		Hotels:  cloneHotels(it.HotelData),
		Weather: slices.Clone(it.WeatherData),
	}
}

// Clone returns a deep copy so callers can mutate the result freely.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Interests = slices.Clone(it.Interests)
	out.Days = CloneDays(it.Days)
	out.FlightData = slices.Clone(it.FlightData)
	out.HotelData = cloneHotels(it.HotelData)
	out.WeatherData = slices.Clone(it.WeatherData)
	return out
}

// CloneDays deep-copies a day list including each day's time blocks.
func CloneDays(days []ItineraryDay) []ItineraryDay {
	if days == nil {
		return nil
	}
	out := make([]ItineraryDay, len(days))
	for i, d := range days {
		out[i] = d
		out[i].TimeBlocks = slices.Clone(d.TimeBlocks)
	}
	return out
}

// SumDayCosts adds up the numeric totals of every day.
func SumDayCosts(days []ItineraryDay) float64 {
	var sum float64
	for _, d := range days {
		sum += d.TotalCost
	}
	return sum
}

// FormatCurrency renders an amount the way totals are displayed, e.g. "$1234".
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.0f", math.Round(amount))
}

func cloneHotels(in []HotelOption) []HotelOption {
	if in == nil {
		return nil
	}
	out := make([]HotelOption, len(in))
	for i, h := range in {
		out[i] = h
		out[i].Amenities = slices.Clone(h.Amenities)
	}
	return out
}
