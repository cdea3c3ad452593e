package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneBlank(t *testing.T) {
	got := PruneBlank([]string{" breakfast ", "", "transfers", "   ", "breakfast"})
	assert.Equal(t, []string{"breakfast", "transfers", "breakfast"}, got, "order and duplicates preserved")
}

func TestPruneItinerary_RenumbersDays(t *testing.T) {
	got := PruneItinerary([]ItineraryDay{
		{Day: 1, Title: "Arrival"},
		{Day: 2, Title: "", Detail: ""},
		{Day: 3, Title: "Beach day", Detail: "North Goa"},
	})
	if assert.Len(t, got, 2) {
		assert.Equal(t, 1, got[0].Day)
		assert.Equal(t, "Arrival", got[0].Title)
		assert.Equal(t, 2, got[1].Day)
		assert.Equal(t, "Beach day", got[1].Title)
	}
}

func TestPruneFAQs_RequiresBothHalves(t *testing.T) {
	got := PruneFAQs([]FAQ{
		{Question: "Is airfare included?", Answer: "No"},
		{Question: "Unanswered?", Answer: " "},
		{Question: "", Answer: "orphan"},
	})
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Is airfare included?", got[0].Question)
	}
}

func TestPruneAccommodations(t *testing.T) {
	got := PruneAccommodations([]Accommodation{
		{Name: "Taj Holiday Village", Nights: 3},
		{Name: "  "},
	})
	assert.Len(t, got, 1)
}
