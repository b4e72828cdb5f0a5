package synth

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"join": strings.Join,
}).ParseFS(promptFS, "prompts/*.tmpl"))

const (
	generateSystemPrompt   = "You are an expert travel planner. Generate detailed, personalized itineraries in JSON format."
	regenerateSystemPrompt = "You are an expert travel planner. Regenerate travel itineraries in JSON format based on requests."
)

type promptData struct {
	Trip        domain.TripRequest
	Start       string
	End         string
	Span        int
	Supply      domain.SupplySnapshot
	Days        []domain.ItineraryDay
	Scope       domain.RegenerationScope
	Preferences *domain.Preferences
}

func newPromptData(trip domain.TripRequest) promptData {
	return promptData{
		Trip:  trip,
		Start: trip.StartDate.Format(domain.DateLayout),
		End:   trip.EndDate.Format(domain.DateLayout),
		Span:  trip.DaySpan(),
	}
}

// generatePrompt renders the user prompt for full generation.
func generatePrompt(trip domain.TripRequest, supply domain.SupplySnapshot) (string, error) {
	d := newPromptData(trip)
	d.Supply = supply
	return render("generate.tmpl", d)
}

// regeneratePrompt renders the user prompt for the scope in in.
func regeneratePrompt(in ResynthesisInput) (string, error) {
	d := newPromptData(in.Trip)
	d.Supply = in.Supply
	d.Days = in.Days
	d.Scope = in.Scope
	d.Preferences = in.Preferences

	switch in.Scope.Section {
	case domain.SectionDay:
		return render("regenerate_day.tmpl", d)
	case domain.SectionTimeBlock:
		return render("regenerate_block.tmpl", d)
	case domain.SectionEntire:
		return render("regenerate_entire.tmpl", d)
	}
	return "", fmt.Errorf("synth.regeneratePrompt: unknown section %q", in.Scope.Section)
}

func render(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("synth.render %s: %w", name, err)
	}
	return buf.String(), nil
}
