package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"travelapi/internal/activity"
	"travelapi/internal/api"
	"travelapi/internal/audit"
	"travelapi/internal/filter"
	"travelapi/internal/stats"
	"travelapi/pkg/db"
)

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
	Log  *logrus.Logger
}

type CreateReviewRequest struct {
	AuthorName string `json:"authorName"`
	Email      string `json:"email"`
	PackageID  string `json:"packageId"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Comment    string `json:"comment"`
}

func (req CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.AuthorName, validation.Required),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Comment, validation.Required, validation.Length(10, 0)),
	)
}

// CreateReview is the public review submission; new reviews start pending
// and only surface once approved.
func (h Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	var pkg *string
	if req.PackageID != "" {
		pkg = &req.PackageID
	}
	v, err := h.Repo.CreateReview(r.Context(), req.AuthorName, req.Email, pkg, req.Rating, req.Title, req.Comment)
	if err != nil {
		h.Log.WithError(err).Error("create review")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, v)
}

// PublicFeed returns the approved social proof for the site: reviews and
// testimonials merged newest-first, optionally narrowed to one package.
func (h Handlers) PublicFeed(w http.ResponseWriter, r *http.Request) {
	packageID := r.URL.Query().Get("packageId")

	reviews, err := h.Repo.ListReviews(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list reviews")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	testimonials, err := h.Repo.ListTestimonials(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list testimonials")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	var ratings []int
	visible := make([]FeedItem, 0, len(reviews)+len(testimonials))
	for _, item := range MergeFeed(reviews, testimonials) {
		if item.Status() != StatusApproved {
			continue
		}
		if packageID != "" {
			// Testimonials are site-wide; a package-scoped feed shows
			// only that package's reviews.
			if item.Kind != KindReview || item.Review.PackageID == nil || *item.Review.PackageID != packageID {
				continue
			}
		}
		ratings = append(ratings, item.Rating())
		visible = append(visible, item)
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"items":         visible,
		"averageRating": stats.AverageRating(ratings),
	})
}

// ListModeration is the admin moderation queue over both origins.
func (h Handlers) ListModeration(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Repo.ListReviews(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list reviews")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	testimonials, err := h.Repo.ListTestimonials(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list testimonials")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	q := filter.Query{
		Search: r.URL.Query().Get("search"),
		Categories: map[string]string{
			"status": r.URL.Query().Get("status"),
			"kind":   r.URL.Query().Get("kind"),
		},
	}
	all := MergeFeed(reviews, testimonials)
	visible := make([]FeedItem, 0, len(all))
	var ratings []int
	for _, item := range all {
		ratings = append(ratings, item.Rating())
		if q.Match(item.SearchFields(), map[string]string{
			"status": string(item.Status()),
			"kind":   string(item.Kind),
		}) {
			visible = append(visible, item)
		}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"items":         visible,
		"averageRating": stats.AverageRating(ratings),
	})
}

func (h Handlers) AdminGetReview(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, KindReview)
}

func (h Handlers) AdminGetTestimonial(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, KindTestimonial)
}

// get returns a single moderation item in the same tagged shape the feed
// uses, so detail and list views stay symmetric.
func (h Handlers) get(w http.ResponseWriter, r *http.Request, kind Kind) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	switch kind {
	case KindReview:
		v, err := h.Repo.GetReview(r.Context(), id)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "review not found")
			return
		}
		api.WriteJSON(w, http.StatusOK, FeedItem{Kind: KindReview, Review: v})
	case KindTestimonial:
		v, err := h.Repo.GetTestimonial(r.Context(), id)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "testimonial not found")
			return
		}
		api.WriteJSON(w, http.StatusOK, FeedItem{Kind: KindTestimonial, Testimonial: v})
	}
}

type PatchStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) PatchReviewStatus(w http.ResponseWriter, r *http.Request) {
	h.patchStatus(w, r, KindReview)
}

func (h Handlers) PatchTestimonialStatus(w http.ResponseWriter, r *http.Request) {
	h.patchStatus(w, r, KindTestimonial)
}

func (h Handlers) patchStatus(w http.ResponseWriter, r *http.Request, kind Kind) {
	admin := api.AdminFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing admin identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	var req PatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}

	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid status")
		return
	}

	var updated FeedItem
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		switch kind {
		case KindReview:
			v, err := GetReviewForUpdate(r.Context(), tx, id)
			if err != nil {
				return err
			}
			if err := Transitions.Check(v.Status, next); err != nil {
				api.WriteError(w, http.StatusConflict, api.CodeInvalidTransition, err.Error())
				return pgx.ErrTxCommitRollback
			}
			if err := UpdateReviewStatus(r.Context(), tx, v.ID, next); err != nil {
				return err
			}
			meta := map[string]any{"from": v.Status, "to": next}
			_ = audit.Insert(r.Context(), tx, string(kind), &v.ID, "STATUS_CHANGED", admin.Email, meta)
			_ = activity.Insert(r.Context(), tx, string(kind), v.ID, "STATUS_CHANGED", "Status changed", admin.Email, time.Now(), meta)
			v.Status = next
			updated = FeedItem{Kind: KindReview, Review: v}

		case KindTestimonial:
			v, err := GetTestimonialForUpdate(r.Context(), tx, id)
			if err != nil {
				return err
			}
			if err := Transitions.Check(v.Status, next); err != nil {
				api.WriteError(w, http.StatusConflict, api.CodeInvalidTransition, err.Error())
				return pgx.ErrTxCommitRollback
			}
			if err := UpdateTestimonialStatus(r.Context(), tx, v.ID, next); err != nil {
				return err
			}
			meta := map[string]any{"from": v.Status, "to": next}
			_ = audit.Insert(r.Context(), tx, string(kind), &v.ID, "STATUS_CHANGED", admin.Email, meta)
			_ = activity.Insert(r.Context(), tx, string(kind), v.ID, "STATUS_CHANGED", "Status changed", admin.Email, time.Now(), meta)
			v.Status = next
			v.Featured = next == StatusApproved
			updated = FeedItem{Kind: KindTestimonial, Testimonial: v}
		}
		return nil
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, string(kind)+" not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, updated)
}

type TestimonialRequest struct {
	AuthorName string `json:"authorName"`
	Location   string `json:"location"`
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
}

func (req TestimonialRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.AuthorName, validation.Required),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Message, validation.Required),
	)
}

func (h Handlers) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	admin := api.AdminFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing admin identity")
		return
	}

	var req TestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	var v *Testimonial
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := CreateTestimonial(r.Context(), tx, req.AuthorName, req.Location, req.Rating, req.Message)
		if err != nil {
			return err
		}
		v = out
		return audit.Insert(r.Context(), tx, string(KindTestimonial), &out.ID, "CREATED", admin.Email, nil)
	})
	if err != nil {
		h.Log.WithError(err).Error("create testimonial")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, v)
}

func (h Handlers) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	admin := api.AdminFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing admin identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	var req TestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	var v *Testimonial
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := UpdateTestimonial(r.Context(), tx, id, req.AuthorName, req.Location, req.Rating, req.Message)
		if err != nil {
			return err
		}
		v = out
		return audit.Insert(r.Context(), tx, string(KindTestimonial), &id, "UPDATED", admin.Email, nil)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "testimonial not found")
			return
		}
		h.Log.WithError(err).Error("update testimonial")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, v)
}

func (h Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, KindReview)
}

func (h Handlers) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, KindTestimonial)
}

func (h Handlers) delete(w http.ResponseWriter, r *http.Request, kind Kind) {
	admin := api.AdminFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing admin identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		var found bool
		var err error
		switch kind {
		case KindReview:
			found, err = DeleteReview(r.Context(), tx, id)
		case KindTestimonial:
			found, err = DeleteTestimonial(r.Context(), tx, id)
		}
		if err != nil {
			return err
		}
		if !found {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, string(kind)+" not found")
			return pgx.ErrTxCommitRollback
		}
		return audit.Insert(r.Context(), tx, string(kind), &id, "DELETED", admin.Email, nil)
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		h.Log.WithError(err).Error("delete " + string(kind))
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
