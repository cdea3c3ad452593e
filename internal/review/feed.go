package review

import (
	"sort"
	"time"

	"travelapi/internal/workflow"
)

// Kind tags the two origins merged into one moderation feed.
type Kind string

const (
	KindReview      Kind = "review"
	KindTestimonial Kind = "testimonial"
)

// FeedItem is the tagged union the admin moderation list and the public
// social-proof feed are built from. Exactly one of Review/Testimonial is set,
// matching Kind; consumers switch on Kind exhaustively instead of probing
// fields.
type FeedItem struct {
	Kind        Kind         `json:"kind"`
	Review      *Review      `json:"review,omitempty"`
	Testimonial *Testimonial `json:"testimonial,omitempty"`
}

func (i FeedItem) Status() workflow.Status {
	switch i.Kind {
	case KindReview:
		return i.Review.Status
	case KindTestimonial:
		return i.Testimonial.Status
	}
	return ""
}

func (i FeedItem) Rating() int {
	switch i.Kind {
	case KindReview:
		return i.Review.Rating
	case KindTestimonial:
		return i.Testimonial.Rating
	}
	return 0
}

func (i FeedItem) CreatedAt() time.Time {
	switch i.Kind {
	case KindReview:
		return i.Review.CreatedAt
	case KindTestimonial:
		return i.Testimonial.CreatedAt
	}
	return time.Time{}
}

// SearchFields returns the free-text-searchable fields for this item.
func (i FeedItem) SearchFields() []string {
	switch i.Kind {
	case KindReview:
		return []string{i.Review.AuthorName, i.Review.Title, i.Review.Comment}
	case KindTestimonial:
		return []string{i.Testimonial.AuthorName, i.Testimonial.Location, i.Testimonial.Message}
	}
	return nil
}

// MergeFeed interleaves both origins newest-first.
func MergeFeed(reviews []Review, testimonials []Testimonial) []FeedItem {
	items := make([]FeedItem, 0, len(reviews)+len(testimonials))
	for idx := range reviews {
		items = append(items, FeedItem{Kind: KindReview, Review: &reviews[idx]})
	}
	for idx := range testimonials {
		items = append(items, FeedItem{Kind: KindTestimonial, Testimonial: &testimonials[idx]})
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt().After(items[b].CreatedAt())
	})
	return items
}
