package domain

// ExportMessage accompanies the export payload. Document rendering happens
// client-side from the returned itinerary.
const ExportMessage = "PDF export data"

// ItineraryExport is the payload returned by the export endpoint.
type ItineraryExport struct {
	Message   string
	Itinerary Itinerary
}

// ExportRow is a single row in the flat itinerary export.
// It is a denormalized view: one row per time block, with day fields repeated
// for every block on that day. Days with no blocks yield one row with zero
// values for all block fields.
type ExportRow struct {
	// Day fields — repeated for every block on the day.
	Day      int
	Date     string // "2006-01-02"
	DayTitle string
	DayCost  float64
	Weather  string

	// Block fields — zero values when the day has no blocks.
	BlockIndex   int
	Time         string
	Period       Period
	ActivityName string
	Duration     string
	Cost         string
	Address      string
}

// ExportRows flattens an itinerary into one ExportRow per time block.
func ExportRows(it Itinerary) []ExportRow {
	rows := make([]ExportRow, 0, len(it.Days)*3)
	for _, d := range it.Days {
		base := ExportRow{
			Day:      d.Day,
			Date:     d.Date,
			DayTitle: d.Title,
			DayCost:  d.TotalCost,
			Weather:  d.Weather.Condition,
		}
		if len(d.TimeBlocks) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, b := range d.TimeBlocks {
			r := base
			r.BlockIndex = i
			r.Time = b.Time
			r.Period = b.Period
			r.ActivityName = b.Activity.Name
			r.Duration = b.Activity.Duration
			r.Cost = b.Activity.Cost
			r.Address = b.Activity.Location.Address
			rows = append(rows, r)
		}
	}
	return rows
}
