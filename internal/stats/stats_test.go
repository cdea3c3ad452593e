package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_TotalsAndByStatus(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	points := []Point{
		{Status: "new", CreatedAt: now},
		{Status: "new", CreatedAt: now.AddDate(0, 0, -1)},
		{Status: "resolved", CreatedAt: now.AddDate(0, -3, 0)},
	}

	s := Summarize(points, now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByStatus["new"])
	assert.Equal(t, 1, s.ByStatus["resolved"])
}

func TestSummarize_MonthOverMonth(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	points := []Point{
		{Status: "new", CreatedAt: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{Status: "new", CreatedAt: time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)},
		{Status: "new", CreatedAt: time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{Status: "new", CreatedAt: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}

	s := Summarize(points, now)
	assert.Equal(t, 2, s.ThisMonth)
	assert.Equal(t, 1, s.LastMonth)
	assert.InDelta(t, 100.0, s.ChangePct, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, time.Now())
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByStatus)
	assert.Equal(t, 0.0, s.ChangePct)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.5, AverageRating([]int{4, 5}))
	assert.Equal(t, 4.3, AverageRating([]int{4, 4, 5}))
	assert.Equal(t, 5.0, AverageRating([]int{5}))
}
