package supply

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// MaxForecastDays is how far ahead the weather provider forecasts.
const MaxForecastDays = 16

// MockFlights returns fixed flight offers. It stands in for a real
// flight-search API and never fails.
type MockFlights struct{}

func (MockFlights) SearchFlights(ctx context.Context, q Query) ([]domain.FlightOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	route := fmt.Sprintf("%s → %s", q.Origin, q.Destination)
	dep := q.StartDate.Format(domain.DateLayout)
	return []domain.FlightOption{
		{Airline: "Delta Airlines", Route: route, Price: "$342", Duration: "5h 30m", Departure: dep, Arrival: dep},
		{Airline: "United Airlines", Route: route, Price: "$389", Duration: "6h 15m", Departure: dep, Arrival: dep},
		{Airline: "American Airlines", Route: route, Price: "$298", Duration: "5h 45m", Departure: dep, Arrival: dep},
	}, nil
}

// MockHotels returns fixed hotel offers ordered by how well their nightly
// price fits the requested budget tier.
type MockHotels struct{}

var mockHotelCatalog = []domain.HotelOption{
	{Name: "The Plaza Hotel", Rating: 4.8, Price: "$450/night", Location: "Midtown", Amenities: []string{"Spa", "Restaurant", "Gym", "WiFi"}},
	{Name: "Pod Hotels", Rating: 4.2, Price: "$180/night", Location: "Brooklyn", Amenities: []string{"WiFi", "Gym", "Cafe"}},
	{Name: "1 Hotels Central Park", Rating: 4.6, Price: "$320/night", Location: "Central Park", Amenities: []string{"Spa", "Restaurant", "Eco-friendly", "WiFi"}},
	{Name: "The High Line Hotel", Rating: 4.4, Price: "$275/night", Location: "Chelsea", Amenities: []string{"Restaurant", "Pet-friendly", "WiFi"}},
	{Name: "citizenM New York Bowery", Rating: 4.3, Price: "$210/night", Location: "Lower East Side", Amenities: []string{"Modern design", "WiFi", "Gym"}},
}

// budgetTarget is the nightly rate each tier aims for.
var budgetTarget = map[domain.Budget]int{
	domain.BudgetLow:    150,
	domain.BudgetMid:    275,
	domain.BudgetLuxury: 500,
}

func (MockHotels) SearchHotels(ctx context.Context, q Query) ([]domain.HotelOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.HotelOption, len(mockHotelCatalog))
	for i, h := range mockHotelCatalog {
		out[i] = h
		out[i].Amenities = append([]string(nil), h.Amenities...)
	}

	target, ok := budgetTarget[q.Budget]
	if !ok {
		return out, nil
	}
	sort.SliceStable(out, func(i, j int) bool {
		return abs(nightlyRate(out[i].Price)-target) < abs(nightlyRate(out[j].Price)-target)
	})
	return out, nil
}

// MockWeather returns a repeating forecast pattern, one entry per trip day,
// capped at MaxForecastDays.
type MockWeather struct{}

var mockWeatherPattern = []domain.WeatherForecast{
	{Condition: "Sunny", Temperature: "72°F", Humidity: "45%", Icon: "sun", Advisory: "Perfect weather for outdoor activities"},
	{Condition: "Light Rain", Temperature: "68°F", Humidity: "70%", Icon: "cloud-rain", Advisory: "Pack an umbrella"},
	{Condition: "Partly Cloudy", Temperature: "74°F", Humidity: "50%", Icon: "cloud-sun"},
	{Condition: "Sunny", Temperature: "76°F", Humidity: "40%", Icon: "sun"},
	{Condition: "Clear", Temperature: "78°F", Humidity: "35%", Icon: "sun"},
}

func (MockWeather) Forecast(ctx context.Context, q Query) ([]domain.WeatherForecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := min(domain.DaySpan(q.StartDate, q.EndDate), MaxForecastDays)
	out := make([]domain.WeatherForecast, 0, n)
	for i := range n {
		f := mockWeatherPattern[i%len(mockWeatherPattern)]
		f.Date = q.StartDate.AddDate(0, 0, i).Format(domain.DateLayout)
		out = append(out, f)
	}
	return out, nil
}

// nightlyRate extracts the dollar amount from prices like "$180/night".
func nightlyRate(price string) int {
	s := strings.TrimPrefix(price, "$")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
