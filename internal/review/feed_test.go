package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"travelapi/internal/filter"
)

func TestTransitions_Moderation(t *testing.T) {
	assert.True(t, Transitions.Can(StatusPending, StatusApproved))
	assert.True(t, Transitions.Can(StatusPending, StatusRejected))
	assert.True(t, Transitions.Can(StatusApproved, StatusRejected))
	assert.True(t, Transitions.Can(StatusRejected, StatusApproved))
	assert.False(t, Transitions.Can(StatusApproved, StatusPending), "no re-pending")
	assert.False(t, Transitions.Can(StatusRejected, StatusPending), "no re-pending")
}

func TestMergeFeed_NewestFirstAndTagged(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	reviews := []Review{
		{ID: "r1", AuthorName: "A", Status: StatusApproved, CreatedAt: t0.Add(2 * time.Hour)},
	}
	testimonials := []Testimonial{
		{ID: "t1", AuthorName: "B", Status: StatusPending, CreatedAt: t0.Add(3 * time.Hour)},
		{ID: "t2", AuthorName: "C", Status: StatusApproved, CreatedAt: t0.Add(1 * time.Hour)},
	}

	feed := MergeFeed(reviews, testimonials)
	if assert.Len(t, feed, 3) {
		assert.Equal(t, KindTestimonial, feed[0].Kind)
		assert.Equal(t, "t1", feed[0].Testimonial.ID)
		assert.Equal(t, KindReview, feed[1].Kind)
		assert.Equal(t, "r1", feed[1].Review.ID)
		assert.Equal(t, "t2", feed[2].Testimonial.ID)
	}
	for _, item := range feed {
		switch item.Kind {
		case KindReview:
			assert.NotNil(t, item.Review)
			assert.Nil(t, item.Testimonial)
		case KindTestimonial:
			assert.NotNil(t, item.Testimonial)
			assert.Nil(t, item.Review)
		default:
			t.Fatalf("unexpected kind %q", item.Kind)
		}
	}
}

// Searching "goa" with status=approved over one approved and one pending Goa
// testimonial returns exactly the approved one.
func TestFeedFiltering_SearchPlusStatus(t *testing.T) {
	testimonials := []Testimonial{
		{ID: "t1", AuthorName: "Priya", Message: "Our Goa trip was fantastic", Status: StatusApproved, CreatedAt: time.Now()},
		{ID: "t2", AuthorName: "Arun", Message: "Goa was wonderful", Status: StatusPending, CreatedAt: time.Now()},
		{ID: "t3", AuthorName: "Meera", Message: "Loved Kerala", Status: StatusApproved, CreatedAt: time.Now()},
	}

	q := filter.Query{
		Search:     "goa",
		Categories: map[string]string{"status": string(StatusApproved)},
	}
	var matched []FeedItem
	for _, item := range MergeFeed(nil, testimonials) {
		if q.Match(item.SearchFields(), map[string]string{
			"status": string(item.Status()),
			"kind":   string(item.Kind),
		}) {
			matched = append(matched, item)
		}
	}

	if assert.Len(t, matched, 1) {
		assert.Equal(t, "t1", matched[0].Testimonial.ID)
	}
}

func TestFeedItem_Accessors(t *testing.T) {
	r := FeedItem{Kind: KindReview, Review: &Review{Rating: 4, AuthorName: "A", Title: "T", Comment: "C", Status: StatusPending}}
	assert.Equal(t, 4, r.Rating())
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, []string{"A", "T", "C"}, r.SearchFields())

	tm := FeedItem{Kind: KindTestimonial, Testimonial: &Testimonial{Rating: 5, AuthorName: "B", Location: "Goa", Message: "M", Status: StatusApproved}}
	assert.Equal(t, 5, tm.Rating())
	assert.Equal(t, StatusApproved, tm.Status())
	assert.Equal(t, []string{"B", "Goa", "M"}, tm.SearchFields())
}
