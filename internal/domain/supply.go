package domain

// FlightOption is one offer returned by the flight provider.
type FlightOption struct {
	Airline   string `json:"airline"`
	Route     string `json:"route"`
	Price     string `json:"price"`
	Duration  string `json:"duration"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// HotelOption is one offer returned by the hotel provider.
type HotelOption struct {
	Name      string   `json:"name"`
	Rating    float64  `json:"rating"`
	Price     string   `json:"price"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
	ImageURL  string   `json:"imageUrl,omitempty"`
}

// WeatherForecast is the forecast for one calendar day.
type WeatherForecast struct {
	Date        string `json:"date"`
	Condition   string `json:"condition"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Icon        string `json:"icon"`
	Advisory    string `json:"advisory,omitempty"`
}

// SupplySnapshot groups the supply data gathered for one trip.
// Any of the lists may be empty when its provider failed.
type SupplySnapshot struct {
	Flights []FlightOption    `json:"flights"`
	Hotels  []HotelOption     `json:"hotels"`
	Weather []WeatherForecast `json:"weather"`
}

// Truncate returns a snapshot holding at most n entries per category.
// The result never contains nil slices.
func (s SupplySnapshot) Truncate(n int) SupplySnapshot {
	return SupplySnapshot{
		Flights: head(s.Flights, n),
		Hotels:  head(s.Hotels, n),
		Weather: head(s.Weather, n),
	}
}

// ForecastFor returns the forecast for the given date, if any.
func (s SupplySnapshot) ForecastFor(date string) (WeatherForecast, bool) {
	for _, w := range s.Weather {
		if w.Date == date {
			return w, true
		}
	}
	return WeatherForecast{}, false
}

func head[T any](in []T, n int) []T {
	if len(in) > n {
		in = in[:n]
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
