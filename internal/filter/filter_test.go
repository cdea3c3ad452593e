package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		fields []string
		want   bool
	}{
		{"empty term matches", "", []string{"anything"}, true},
		{"blank term matches", "   ", []string{}, true},
		{"case insensitive", "GOA", []string{"Amazing Goa trip"}, true},
		{"matches any field", "jane", []string{"John Doe", "jane@example.com"}, true},
		{"no match", "bali", []string{"Goa", "Kerala"}, false},
		{"multi-word is contiguous", "doe john", []string{"John Doe"}, false},
		{"contiguous multi-word matches", "john doe", []string{"John Doe"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.term, tt.fields...))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.True(t, Category("all", "approved"))
	assert.True(t, Category("", "approved"))
	assert.True(t, Category("approved", "approved"))
	assert.False(t, Category("APPROVED", "approved"), "categorical match is exact")
	assert.False(t, Category("pending", "approved"))
}

func TestQueryMatch_Conjunctive(t *testing.T) {
	q := Query{
		Search:     "goa",
		Categories: map[string]string{"status": "approved"},
	}

	approved := map[string]string{"status": "approved"}
	pending := map[string]string{"status": "pending"}

	assert.True(t, q.Match([]string{"Wonderful Goa", "Priya"}, approved))
	assert.False(t, q.Match([]string{"Wonderful Goa", "Priya"}, pending), "status must also hold")
	assert.False(t, q.Match([]string{"Kerala backwaters", "Priya"}, approved), "search must also hold")
}

func TestQueryMatch_NeutralMatchesEverything(t *testing.T) {
	q := Query{Search: "", Categories: map[string]string{"status": All, "type": ""}}

	entities := [][]string{
		{"John Doe", "john@example.com"},
		{"", ""},
		{"anything at all"},
	}
	for _, fields := range entities {
		assert.True(t, q.Match(fields, map[string]string{}))
	}
}

func TestQueryMatch_UnknownDimensionFails(t *testing.T) {
	q := Query{Categories: map[string]string{"destination": "goa"}}
	assert.False(t, q.Match(nil, map[string]string{"status": "new"}))
}
