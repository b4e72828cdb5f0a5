package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

func threeDayTrip() domain.TripRequest {
	return domain.TripRequest{
		Destination: "Lisbon, Portugal",
		StartDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		Interests:   []string{"food"},
		Budget:      domain.BudgetMid,
		Pace:        domain.PaceModerate,
	}
}

func TestParseDays_Envelope(t *testing.T) {
	content := `{"days":[
		{"day":1,"date":"x","title":"A","timeBlocks":[{"time":"9:00 AM","period":"morning","activity":{"name":"Market"}}],"totalCost":20},
		{"day":2,"title":"B","timeBlocks":[],"totalCost":0},
		{"day":3,"title":"C","totalCost":12.5}
	]}`

	days, err := parseDays(content, threeDayTrip(), coverAll).Unwrap()

	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2025-05-01", days[0].Date, "date should be normalized to the trip calendar")
	assert.Equal(t, "2025-05-03", days[2].Date)
	assert.NotNil(t, days[2].TimeBlocks, "missing blocks should decode as an empty list")
	assert.InDelta(t, 12.5, days[2].TotalCost, 0.001)
}

func TestParseDays_BareArray(t *testing.T) {
	content := `[{"day":1,"totalCost":1},{"day":2,"totalCost":2},{"day":3,"totalCost":3}]`

	days, err := parseDays(content, threeDayTrip(), coverAll).Unwrap()

	require.NoError(t, err)
	assert.Len(t, days, 3)
}

func TestParseDays_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cov     coverage
	}{
		{"empty when full coverage required", "  ", coverAll},
		{"not json", "Sure! Here is your itinerary:", allowGaps},
		{"truncated json", `{"days":[{"day":1`, allowGaps},
		{"no days field when full coverage required", `{"itinerary":[]}`, coverAll},
		{"string total", `{"days":[{"day":1,"totalCost":"$20"}]}`, allowGaps},
		{"negative total", `{"days":[{"day":1,"totalCost":-5}]}`, allowGaps},
		{"day zero", `{"days":[{"day":0,"totalCost":1}]}`, allowGaps},
		{"day beyond span", `{"days":[{"day":4,"totalCost":1}]}`, allowGaps},
		{"duplicate day", `{"days":[{"day":1,"totalCost":1},{"day":1,"totalCost":1}]}`, allowGaps},
		{"out of order", `{"days":[{"day":2,"totalCost":1},{"day":1,"totalCost":1}]}`, allowGaps},
		{"bad period", `{"days":[{"day":1,"totalCost":1,"timeBlocks":[{"period":"night"}]}]}`, allowGaps},
		{"gap when full coverage required", `{"days":[{"day":1,"totalCost":1},{"day":3,"totalCost":1}]}`, coverAll},
		{"empty list when full coverage required", `{"days":[]}`, coverAll},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := parseDays(tc.content, threeDayTrip(), tc.cov)

			assert.ErrorIs(t, res.Err, domain.ErrSynthesis)
			assert.Nil(t, res.Days)
		})
	}
}

func TestParseDays_GapsAllowedForRegeneration(t *testing.T) {
	content := `{"days":[{"day":2,"title":"New day two","totalCost":40}]}`

	days, err := parseDays(content, threeDayTrip(), allowGaps).Unwrap()

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].Day)
	assert.Equal(t, "2025-05-02", days[0].Date)
}

func TestParseDays_EmptyListAllowedForRegeneration(t *testing.T) {
	days, err := parseDays(`{"days":[]}`, threeDayTrip(), allowGaps).Unwrap()

	require.NoError(t, err)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestParseDays_BlankOrDaylessMeansNoChangeForRegeneration(t *testing.T) {
	for _, cov := range []coverage{allowGaps, coverAllOrNone} {
		for _, content := range []string{"", "  \n", "{}", `{"itinerary":[]}`, `{"days":[]}`, "[]"} {
			t.Run(content, func(t *testing.T) {
				days, err := parseDays(content, threeDayTrip(), cov).Unwrap()

				require.NoError(t, err)
				assert.NotNil(t, days)
				assert.Empty(t, days)
			})
		}
	}
}

func TestParseDays_EntireRegenerationStillNeedsEveryDay(t *testing.T) {
	res := parseDays(`{"days":[{"day":1,"totalCost":1}]}`, threeDayTrip(), coverAllOrNone)

	assert.ErrorIs(t, res.Err, domain.ErrSynthesis)
}
