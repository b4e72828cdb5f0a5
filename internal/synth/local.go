package synth

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

var defaultWeather = domain.DayWeather{Condition: "Partly Cloudy", Temperature: "72°F", Icon: "cloud-sun"}

// Local is a deterministic, offline Synthesizer. The same inputs always give
// the same plan; regeneration always changes the targeted day or block.
type Local struct {
	log *slog.Logger
}

// NewLocal returns a Local synthesizer.
func NewLocal(log *slog.Logger) *Local {
	if log == nil {
		log = slog.Default()
	}
	return &Local{log: log}
}

// Synthesize plans every trip day from the interest catalog and supply snapshot.
func (l *Local) Synthesize(ctx context.Context, trip domain.TripRequest, supply domain.SupplySnapshot) ([]domain.ItineraryDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("synth.Local.Synthesize: %w", err)
	}
	p := newPlanner(trip, supply, nil)
	days := p.days(0)
	l.log.DebugContext(ctx, "local itinerary synthesized", "destination", trip.Destination, "days", len(days))
	return days, nil
}

// Resynthesize replans the scope in in, guaranteeing the target changes.
func (l *Local) Resynthesize(ctx context.Context, in ResynthesisInput) ([]domain.ItineraryDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("synth.Local.Resynthesize: %w", err)
	}
	p := newPlanner(in.Trip, in.Supply, in.Preferences)

	switch in.Scope.Section {
	case domain.SectionEntire:
		for v := 1; v <= p.variants(); v++ {
			days := p.days(v)
			if !reflect.DeepEqual(days, in.Days) {
				return days, nil
			}
		}
		return p.days(1), nil

	case domain.SectionDay:
		out := domain.CloneDays(in.Days)
		i := slices.IndexFunc(out, func(d domain.ItineraryDay) bool { return d.Day == in.Scope.DayNumber })
		if i < 0 {
			return nil, fmt.Errorf("synth.Local.Resynthesize: %w: day %d not in itinerary", domain.ErrSynthesis, in.Scope.DayNumber)
		}
		for v := 1; v <= p.variants(); v++ {
			d := p.day(in.Scope.DayNumber, v)
			if !reflect.DeepEqual(d, out[i]) {
				out[i] = d
				break
			}
		}
		return out, nil

	case domain.SectionTimeBlock:
		out := domain.CloneDays(in.Days)
		i := slices.IndexFunc(out, func(d domain.ItineraryDay) bool { return d.Day == in.Scope.DayNumber })
		if i < 0 || in.Scope.TimeBlockIndex < 0 || in.Scope.TimeBlockIndex >= len(out[i].TimeBlocks) {
			return nil, fmt.Errorf("synth.Local.Resynthesize: %w: block %d/%d not in itinerary",
				domain.ErrSynthesis, in.Scope.DayNumber, in.Scope.TimeBlockIndex)
		}
		day := &out[i]
		old := day.TimeBlocks[in.Scope.TimeBlockIndex]
		base := p.offset(in.Scope.DayNumber) + in.Scope.TimeBlockIndex
		for k := 1; k <= len(p.pool); k++ {
			a := p.pool[(base+k)%len(p.pool)]
			if a.Name == old.Activity.Name {
				continue
			}
			nb := p.block(slot{Time: old.Time, Period: old.Period}, a, in.Scope.DayNumber, in.Scope.TimeBlockIndex)
			day.TimeBlocks[in.Scope.TimeBlockIndex] = nb
			break
		}
		day.TotalCost = sumBlockCosts(day.TimeBlocks)
		return out, nil
	}

	return nil, fmt.Errorf("synth.Local.Resynthesize: %w: unknown section %q", domain.ErrSynthesis, in.Scope.Section)
}

// planner lays activities from the trip's interests onto the pace schedule.
type planner struct {
	trip   domain.TripRequest
	supply domain.SupplySnapshot
	prefs  *domain.Preferences
	pool   []activity
	slots  []slot
	factor float64
	lat    float64
	lng    float64
}

func newPlanner(trip domain.TripRequest, supply domain.SupplySnapshot, prefs *domain.Preferences) *planner {
	slots, ok := schedules[trip.Pace]
	if !ok {
		slots = schedules[domain.PaceModerate]
	}
	factor, ok := costFactor[trip.Budget]
	if !ok {
		factor = 1
	}
	lat, lng := anchor(trip.Destination)
	return &planner{
		trip:   trip,
		supply: supply,
		prefs:  prefs,
		pool:   activityPool(trip.Interests),
		slots:  slots,
		factor: factor,
		lat:    lat,
		lng:    lng,
	}
}

// variants bounds how many distinct plans regeneration tries.
func (p *planner) variants() int {
	return len(p.pool) + len(dayThemes)
}

func (p *planner) offset(day int) int {
	return (day - 1) * len(p.slots)
}

func (p *planner) days(variant int) []domain.ItineraryDay {
	n := p.trip.DaySpan()
	out := make([]domain.ItineraryDay, 0, n)
	for d := 1; d <= n; d++ {
		out = append(out, p.day(d, variant))
	}
	return out
}

func (p *planner) day(n, variant int) domain.ItineraryDay {
	date := p.trip.DateOf(n).Format(domain.DateLayout)

	blocks := make([]domain.TimeBlock, len(p.slots))
	base := p.offset(n) + variant
	for i, s := range p.slots {
		blocks[i] = p.block(s, p.pool[(base+i)%len(p.pool)], n, i)
	}

	weather := defaultWeather
	if f, ok := p.supply.ForecastFor(date); ok {
		weather = domain.DayWeather{Condition: f.Condition, Temperature: f.Temperature, Icon: f.Icon}
	}

	theme := dayThemes[(n-1+variant)%len(dayThemes)]
	if p.prefs != nil && p.prefs.Style != "" {
		theme = fmt.Sprintf("%s: %s", p.prefs.Style, theme)
	}

	km := 1.5 + 0.8*float64(len(blocks)) + 0.4*float64((n+variant)%3)
	return domain.ItineraryDay{
		Day:             n,
		Date:            date,
		Title:           theme,
		Weather:         weather,
		TimeBlocks:      blocks,
		TotalCost:       sumBlockCosts(blocks),
		WalkingDistance: fmt.Sprintf("%.1f km", km),
	}
}

func (p *planner) block(s slot, a activity, day, idx int) domain.TimeBlock {
	cost := math.Round(a.BaseCost * p.factor)
	desc := a.Description
	if strings.Contains(desc, "%s") {
		desc = fmt.Sprintf(desc, p.trip.Destination)
	}
	// Spread stops around the destination anchor so each block has its own pin.
	step := float64((day*7+idx*3)%10) - 4.5
	return domain.TimeBlock{
		Time:   s.Time,
		Period: s.Period,
		Activity: domain.Activity{
			Name:        a.Name,
			Description: desc,
			Duration:    a.Duration,
			Cost:        formatCost(cost),
			Location: domain.Location{
				Lat:     round4(p.lat + step*0.01),
				Lng:     round4(p.lng - step*0.008),
				Address: fmt.Sprintf("%s, %s", a.Place, p.trip.Destination),
			},
		},
	}
}

// activityPool interleaves the catalog entries of each interest so that
// consecutive slots rotate through them.
func activityPool(interests []string) []activity {
	var lists [][]activity
	seen := map[string]bool{}
	for _, in := range interests {
		key := strings.ToLower(strings.TrimSpace(in))
		if _, ok := catalog[key]; !ok {
			key = "sightseeing"
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		lists = append(lists, catalog[key])
	}
	if len(lists) == 0 {
		lists = append(lists, catalog["sightseeing"])
	}

	var pool []activity
	for i := 0; ; i++ {
		added := false
		for _, l := range lists {
			if i < len(l) {
				pool = append(pool, l[i])
				added = true
			}
		}
		if !added {
			return pool
		}
	}
}

// anchor derives a stable coordinate for a destination name.
func anchor(destination string) (lat, lng float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(destination)))
	v := h.Sum64()
	lat = float64(v%12000)/100 - 60
	lng = float64((v/12000)%36000)/100 - 180
	return lat, lng
}

func formatCost(amount float64) string {
	if amount <= 0 {
		return "Free"
	}
	return domain.FormatCurrency(amount)
}

// parseCost reads "$45" style amounts; anything else counts as zero.
func parseCost(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func sumBlockCosts(blocks []domain.TimeBlock) float64 {
	var sum float64
	for _, b := range blocks {
		sum += parseCost(b.Activity.Cost)
	}
	return sum
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
