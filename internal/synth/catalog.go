package synth

import "github.com/pkordes/itinerary-planner/internal/domain"

// activity is a catalog entry the Local synthesizer schedules. Description may
// contain a single %s, replaced by the destination.
type activity struct {
	Name        string
	Description string
	Place       string
	Duration    string
	BaseCost    float64
}

// catalog maps an interest tag to its activities. Unknown interests fall back
// to sightseeing.
var catalog = map[string][]activity{
	"photography": {
		{"Sunrise Photo Walk", "Catch the golden hour at the best viewpoints in %s.", "Viewpoint Trail", "2 hours", 0},
		{"Street Photography Tour", "A local photographer leads you through the most photogenic lanes.", "Old Quarter", "3 hours", 45},
		{"Sunset at the Lookout", "Frame the skyline as the light turns.", "Panorama Point", "1.5 hours", 10},
		{"Photo Workshop", "Hands-on composition session with a pro.", "Creative Studio", "2.5 hours", 60},
	},
	"food": {
		{"Morning Market Tasting", "Sample fresh produce and snacks at the central market.", "Central Market", "2 hours", 20},
		{"Cooking Class", "Learn three regional dishes from a local chef.", "Culinary School", "3 hours", 65},
		{"Street Food Crawl", "Five stops of the city's favourite street eats.", "Night Market", "2.5 hours", 35},
		{"Chef's Tasting Dinner", "A seasonal tasting menu showcasing %s cuisine.", "Harbour Restaurant", "2 hours", 90},
	},
	"history": {
		{"Old Town Heritage Walk", "Guided walk through the historic centre of %s.", "Old Town", "2 hours", 15},
		{"National Museum", "Collections spanning the region's history.", "Museum District", "2.5 hours", 18},
		{"Ancient Temple Visit", "Explore one of the oldest sites in the area.", "Temple Grounds", "2 hours", 12},
		{"Fortress Ruins", "Climb the ramparts and hear the stories behind them.", "Hilltop Fortress", "2 hours", 10},
	},
	"adventure": {
		{"Guided Hike", "A half-day trail with sweeping views.", "Ridge Trailhead", "4 hours", 40},
		{"Kayak Excursion", "Paddle the coastline with an experienced guide.", "Bay Launch", "3 hours", 55},
		{"Zipline Park", "Fly over the canopy on a series of lines.", "Adventure Park", "2 hours", 70},
		{"Sunrise Volcano Trek", "Early start for a summit sunrise.", "Summit Base Camp", "5 hours", 85},
	},
	"shopping": {
		{"Artisan Market", "Handmade crafts from local makers.", "Artisan Quarter", "2 hours", 0},
		{"Design District Stroll", "Independent boutiques and concept stores.", "Design District", "2 hours", 0},
		{"Antique Bazaar", "Browse curiosities and vintage finds.", "Bazaar Lane", "1.5 hours", 0},
		{"Flagship Mall", "The main shopping destination in %s.", "City Centre", "2 hours", 0},
	},
	"relaxation": {
		{"Spa Afternoon", "Massage and thermal pools.", "Wellness Spa", "3 hours", 80},
		{"Beach Lounging", "Unwind on the quietest stretch of sand.", "South Beach", "3 hours", 0},
		{"Garden Tea Ceremony", "Slow down with a traditional tea service.", "Botanic Garden", "1.5 hours", 25},
		{"Sunset Yoga", "Gentle flow session overlooking the water.", "Seaside Pavilion", "1 hour", 20},
	},
	"nightlife": {
		{"Rooftop Bar", "Cocktails with a view of %s after dark.", "Skyline Rooftop", "2 hours", 45},
		{"Live Music Venue", "Local bands in an intimate club.", "Music Hall", "3 hours", 30},
		{"Night Food Market", "Late-night bites and lively crowds.", "Night Market", "2 hours", 25},
		{"Evening Harbour Cruise", "See the city lights from the water.", "Harbour Pier", "2 hours", 55},
	},
	"nature": {
		{"Botanical Gardens", "Wander through native and tropical plants.", "Botanic Garden", "2 hours", 10},
		{"Waterfall Trail", "An easy walk to a hidden waterfall.", "Forest Reserve", "3 hours", 15},
		{"Wildlife Sanctuary", "Meet the local wildlife with a ranger.", "Sanctuary Gate", "2.5 hours", 30},
		{"Rice Terrace Walk", "Stroll through terraced fields outside %s.", "Terrace Valley", "2 hours", 8},
	},
	"sightseeing": {
		{"City Highlights Tour", "The essential sights of %s in one loop.", "Main Square", "3 hours", 35},
		{"Cathedral and Square", "Architecture at the heart of the city.", "Main Square", "1.5 hours", 5},
		{"Observation Deck", "Panoramic views over %s.", "Tower Plaza", "1 hour", 25},
		{"Riverside Promenade", "A leisurely walk along the water.", "Riverside", "1.5 hours", 0},
	},
}

// slot is a scheduled time of day.
type slot struct {
	Time   string
	Period domain.Period
}

// schedules gives the time slots for each pace.
var schedules = map[domain.Pace][]slot{
	domain.PaceRelaxed: {
		{"10:00 AM", domain.PeriodMorning},
		{"3:00 PM", domain.PeriodAfternoon},
	},
	domain.PaceModerate: {
		{"9:00 AM", domain.PeriodMorning},
		{"1:00 PM", domain.PeriodAfternoon},
		{"7:00 PM", domain.PeriodEvening},
	},
	domain.PacePacked: {
		{"8:00 AM", domain.PeriodMorning},
		{"11:00 AM", domain.PeriodMorning},
		{"2:00 PM", domain.PeriodAfternoon},
		{"7:00 PM", domain.PeriodEvening},
	},
}

// costFactor scales catalog prices by budget tier.
var costFactor = map[domain.Budget]float64{
	domain.BudgetLow:    0.6,
	domain.BudgetMid:    1.0,
	domain.BudgetLuxury: 1.8,
}

// dayThemes title a day; the style preference, when given, replaces them.
var dayThemes = []string{
	"Arrival and First Impressions",
	"Local Flavours",
	"Hidden Corners",
	"Off the Beaten Path",
	"Culture and Views",
	"Slow Day",
	"Grand Finale",
}
