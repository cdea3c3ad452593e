package catalog

import (
	"strings"
	"time"
)

type ItineraryDay struct {
	Day    int    `json:"day"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Accommodation struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Nights   int    `json:"nights,omitempty"`
}

// Package is a sellable travel package on the public catalog.
type Package struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Summary      string `json:"summary,omitempty"`
	Description  string `json:"description,omitempty"`
	Destination  string `json:"destination"`
	DurationDays int    `json:"durationDays"`
	// Price travels as a string; the DB numeric column is authoritative and
	// decimal parsing happens at the validation edge.
	Price          string          `json:"price"`
	Currency       string          `json:"currency"`
	Highlights     []string        `json:"highlights"`
	Inclusions     []string        `json:"inclusions"`
	Exclusions     []string        `json:"exclusions"`
	Itinerary      []ItineraryDay  `json:"itinerary"`
	FAQs           []FAQ           `json:"faqs"`
	Accommodations []Accommodation `json:"accommodations"`
	Featured       bool            `json:"featured"`
	Active         bool            `json:"active"`
	CoverImage     string          `json:"coverImage,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PruneBlank drops whitespace-only entries, preserving order and duplicates.
// Unlike blog tags, highlight/inclusion lists may legitimately repeat.
func PruneBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

// PruneItinerary drops empty rows and renumbers days sequentially so a
// removed middle day doesn't leave a gap.
func PruneItinerary(days []ItineraryDay) []ItineraryDay {
	out := make([]ItineraryDay, 0, len(days))
	for _, d := range days {
		if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Detail) == "" {
			continue
		}
		d.Day = len(out) + 1
		out = append(out, d)
	}
	return out
}

// PruneFAQs drops rows missing either half of the pair.
func PruneFAQs(faqs []FAQ) []FAQ {
	out := make([]FAQ, 0, len(faqs))
	for _, f := range faqs {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// PruneAccommodations drops unnamed rows.
func PruneAccommodations(accs []Accommodation) []Accommodation {
	out := make([]Accommodation, 0, len(accs))
	for _, a := range accs {
		if strings.TrimSpace(a.Name) == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
