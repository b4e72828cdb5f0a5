package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/domain"
	"github.com/pkordes/itinerary-planner/internal/service"
)

func TestValidateTripRequest_Valid(t *testing.T) {
	in := baliInput()
	in.Destination = "  Bali, Indonesia  "
	in.Interests = []string{"Photography", " food ", "photography", ""}
	in.Budget = "Mid-Range"

	got, err := service.ValidateTripRequest(in)

	require.NoError(t, err)
	assert.Equal(t, "Bali, Indonesia", got.Destination)
	assert.Equal(t, []string{"photography", "food"}, got.Interests)
	assert.Equal(t, domain.BudgetMid, got.Budget)
	assert.Equal(t, domain.PaceModerate, got.Pace)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got.StartDate)
	assert.Equal(t, 6, got.DaySpan())
	assert.Equal(t, "6 Days in Bali, Indonesia", got.Title())
}

func TestValidateTripRequest_SameDayTrip(t *testing.T) {
	in := baliInput()
	in.EndDate = in.StartDate

	got, err := service.ValidateTripRequest(in)

	require.NoError(t, err)
	assert.Equal(t, "1 Day in Bali, Indonesia", got.Title())
}

func TestValidateTripRequest_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TripRequestInput)
		kind   domain.ValidationKind
		field  string
	}{
		{"blank destination", func(in *domain.TripRequestInput) { in.Destination = "   " }, domain.KindMissingField, "destination"},
		{"missing start", func(in *domain.TripRequestInput) { in.StartDate = "" }, domain.KindMissingField, "startDate"},
		{"missing end", func(in *domain.TripRequestInput) { in.EndDate = "" }, domain.KindMissingField, "endDate"},
		{"unparseable start", func(in *domain.TripRequestInput) { in.StartDate = "15/03/2024" }, domain.KindInvalidFormat, "startDate"},
		{"end before start", func(in *domain.TripRequestInput) { in.EndDate = "2024-03-14" }, domain.KindInvalidRange, "endDate"},
		{"too long", func(in *domain.TripRequestInput) { in.EndDate = "2024-05-15" }, domain.KindInvalidRange, "endDate"},
		{"no interests", func(in *domain.TripRequestInput) { in.Interests = nil }, domain.KindEmptyCollection, "interests"},
		{"blank interests", func(in *domain.TripRequestInput) { in.Interests = []string{" ", ""} }, domain.KindEmptyCollection, "interests"},
		{"bad budget", func(in *domain.TripRequestInput) { in.Budget = "cheap" }, domain.KindInvalidEnum, "budget"},
		{"bad pace", func(in *domain.TripRequestInput) { in.Pace = "frantic" }, domain.KindInvalidEnum, "pace"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := baliInput()
			tc.mutate(&in)

			_, err := service.ValidateTripRequest(in)

			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.kind, ve.Kind)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}
