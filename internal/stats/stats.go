package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point is the minimal projection of an entity the aggregator needs.
type Point struct {
	Status    string
	CreatedAt time.Time
}

// Summary backs one dashboard card: totals, per-status counts, and the
// month-over-month movement computed from creation timestamps.
type Summary struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"byStatus"`
	ThisMonth int            `json:"thisMonth"`
	LastMonth int            `json:"lastMonth"`
	ChangePct float64        `json:"changePct"`
}

// Summarize aggregates the unfiltered collection in a single pass.
func Summarize(points []Point, now time.Time) Summary {
	s := Summary{ByStatus: map[string]int{}}

	curYear, curMonth, _ := now.Date()
	prev := now.AddDate(0, -1, -now.Day()+1) // first of previous month
	prevYear, prevMonth, _ := prev.Date()

	for _, p := range points {
		s.Total++
		if p.Status != "" {
			s.ByStatus[p.Status]++
		}
		y, m, _ := p.CreatedAt.Date()
		switch {
		case y == curYear && m == curMonth:
			s.ThisMonth++
		case y == prevYear && m == prevMonth:
			s.LastMonth++
		}
	}

	s.ChangePct = changePct(s.ThisMonth, s.LastMonth)
	return s
}

func changePct(cur, prev int) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	d := decimal.NewFromInt(int64(cur - prev)).
		Div(decimal.NewFromInt(int64(prev))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := d.Float64()
	return f
}

// AverageRating is the arithmetic mean rounded to one decimal.
// An empty collection yields 0.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	f, _ := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).Float64()
	return f
}
