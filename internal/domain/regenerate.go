package domain

import "github.com/google/uuid"

// Section selects how much of an itinerary a regeneration replaces.
type Section string

const (
	SectionDay       Section = "day"
	SectionTimeBlock Section = "timeBlock"
	SectionEntire    Section = "entire"
)

// Valid reports whether s is one of the fixed sections.
func (s Section) Valid() bool {
	switch s {
	case SectionDay, SectionTimeBlock, SectionEntire:
		return true
	}
	return false
}

// Preferences are optional overrides supplied with a regeneration request.
type Preferences struct {
	Budget *Budget `json:"budget,omitempty"`
	Style  string  `json:"style,omitempty"`
}

// RegenerateRequest asks for part or all of an existing itinerary to be replaced.
// DayNumber is 1-based; TimeBlockIndex is 0-based within that day.
type RegenerateRequest struct {
	ItineraryID    uuid.UUID
	Section        Section
	DayNumber      *int
	TimeBlockIndex *int
	NewPreferences *Preferences
}

// RegenerationScope is a RegenerateRequest resolved against a concrete
// itinerary version: indices are known to be in range and Period is filled in
// for time-block scopes.
type RegenerationScope struct {
	Section        Section
	DayNumber      int
	TimeBlockIndex int
	Period         Period
}
