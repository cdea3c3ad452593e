package dashboard

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"travelapi/internal/api"
	"travelapi/internal/audit"
	"travelapi/internal/blog"
	"travelapi/internal/catalog"
	"travelapi/internal/contact"
	"travelapi/internal/enquiry"
	"travelapi/internal/review"
	"travelapi/internal/stats"
)

type Handlers struct {
	Contacts  *contact.Repository
	Enquiries *enquiry.Repository
	Reviews   *review.Repository
	Posts     *blog.Repository
	Packages  *catalog.Repository
	Audit     *audit.Repository
	Log       *logrus.Logger
}

type Response struct {
	Contacts      stats.Summary  `json:"contacts"`
	Enquiries     stats.Summary  `json:"enquiries"`
	Moderation    stats.Summary  `json:"moderation"`
	AverageRating float64        `json:"averageRating"`
	Posts         stats.Summary  `json:"posts"`
	Packages      stats.Summary  `json:"packages"`
	Activity      []audit.Record `json:"activity"`
}

// Overview aggregates every collection for the admin landing page. Counts
// run over the unfiltered collections; the per-card month deltas come from
// creation timestamps rather than hardcoded figures.
func (h Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()

	contacts, err := h.Contacts.List(ctx)
	if err != nil {
		h.fail(w, err, "list contacts")
		return
	}
	enquiries, err := h.Enquiries.List(ctx)
	if err != nil {
		h.fail(w, err, "list enquiries")
		return
	}
	reviews, err := h.Reviews.ListReviews(ctx)
	if err != nil {
		h.fail(w, err, "list reviews")
		return
	}
	testimonials, err := h.Reviews.ListTestimonials(ctx)
	if err != nil {
		h.fail(w, err, "list testimonials")
		return
	}
	posts, err := h.Posts.List(ctx)
	if err != nil {
		h.fail(w, err, "list posts")
		return
	}
	packages, err := h.Packages.List(ctx)
	if err != nil {
		h.fail(w, err, "list packages")
		return
	}
	activity, err := h.Audit.ListRecent(ctx, 20)
	if err != nil {
		h.fail(w, err, "list audit records")
		return
	}

	resp := Response{
		Contacts:  stats.Summarize(contactPoints(contacts), now),
		Enquiries: stats.Summarize(enquiryPoints(enquiries), now),
		Posts:     stats.Summarize(postPoints(posts), now),
		Packages:  stats.Summarize(packagePoints(packages), now),
		Activity:  activity,
	}

	feed := review.MergeFeed(reviews, testimonials)
	moderation := make([]stats.Point, 0, len(feed))
	ratings := make([]int, 0, len(feed))
	for _, item := range feed {
		moderation = append(moderation, stats.Point{Status: string(item.Status()), CreatedAt: item.CreatedAt()})
		ratings = append(ratings, item.Rating())
	}
	resp.Moderation = stats.Summarize(moderation, now)
	resp.AverageRating = stats.AverageRating(ratings)

	api.WriteJSON(w, http.StatusOK, resp)
}

func (h Handlers) fail(w http.ResponseWriter, err error, msg string) {
	h.Log.WithError(err).Error(msg)
	api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
}

func contactPoints(items []contact.Contact) []stats.Point {
	out := make([]stats.Point, len(items))
	for i, c := range items {
		out[i] = stats.Point{Status: string(c.Status), CreatedAt: c.CreatedAt}
	}
	return out
}

func enquiryPoints(items []enquiry.Enquiry) []stats.Point {
	out := make([]stats.Point, len(items))
	for i, e := range items {
		out[i] = stats.Point{Status: string(e.Status), CreatedAt: e.CreatedAt}
	}
	return out
}

func postPoints(items []blog.Post) []stats.Point {
	out := make([]stats.Point, len(items))
	for i, p := range items {
		status := "draft"
		if p.Published {
			status = "published"
		}
		out[i] = stats.Point{Status: status, CreatedAt: p.CreatedAt}
	}
	return out
}

func packagePoints(items []catalog.Package) []stats.Point {
	out := make([]stats.Point, len(items))
	for i, p := range items {
		status := "inactive"
		if p.Active {
			status = "active"
		}
		out[i] = stats.Point{Status: status, CreatedAt: p.CreatedAt}
	}
	return out
}
