package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"travelapi/internal/api"
	"travelapi/internal/audit"
	"travelapi/internal/filter"
	"travelapi/internal/slug"
	"travelapi/pkg/db"
)

const entityType = "package"

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
	Log  *logrus.Logger
}

type PackageRequest struct {
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Summary        string          `json:"summary"`
	Description    string          `json:"description"`
	Destination    string          `json:"destination"`
	DurationDays   int             `json:"durationDays"`
	Price          string          `json:"price"`
	Currency       string          `json:"currency"`
	Highlights     []string        `json:"highlights"`
	Inclusions     []string        `json:"inclusions"`
	Exclusions     []string        `json:"exclusions"`
	Itinerary      []ItineraryDay  `json:"itinerary"`
	FAQs           []FAQ           `json:"faqs"`
	Accommodations []Accommodation `json:"accommodations"`
	CoverImage     string          `json:"coverImage"`
}

func (req PackageRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Destination, validation.Required),
		validation.Field(&req.DurationDays, validation.Required, validation.Min(1)),
		validation.Field(&req.Price, validation.Required, validation.By(validPrice)),
	)
}

func validPrice(value any) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("catalog.package.price_invalid", "price must be a number")
	}
	if !d.IsPositive() {
		return validation.NewError("catalog.package.price_not_positive", "price must be greater than zero")
	}
	return nil
}

func (req PackageRequest) params() PackageParams {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	// Normalize the price to its canonical decimal form; Validate has
	// already guaranteed it parses.
	price := req.Price
	if d, err := decimal.NewFromString(req.Price); err == nil {
		price = d.String()
	}
	return PackageParams{
		Title:          req.Title,
		Slug:           req.Slug,
		Summary:        req.Summary,
		Description:    req.Description,
		Destination:    req.Destination,
		DurationDays:   req.DurationDays,
		Price:          price,
		Currency:       currency,
		Highlights:     PruneBlank(req.Highlights),
		Inclusions:     PruneBlank(req.Inclusions),
		Exclusions:     PruneBlank(req.Exclusions),
		Itinerary:      PruneItinerary(req.Itinerary),
		FAQs:           PruneFAQs(req.FAQs),
		Accommodations: PruneAccommodations(req.Accommodations),
		CoverImage:     req.CoverImage,
	}
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	admin := api.AdminFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing admin identity")
		return
	}

	var req PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	p := req.params()
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if p.Slug == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "title does not yield a usable slug")
		return
	}

	var pkg *Package
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := Create(r.Context(), tx, p)
		if err != nil {
			return err
		}
		pkg = out
		meta := map[string]any{"title": out.Title, "slug": out.Slug}
		return audit.Insert(r.Context(), tx, entityType, &out.ID, "CREATED", admin.Email, meta)
	})
	if err != nil {
		h.Log.WithError(err).Error("create package")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, pkg)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
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

	var req PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	existing, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "package not found")
		return
	}

	p := req.params()
	if p.Slug == "" {
		p.Slug = existing.Slug
	}

	var pkg *Package
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := Update(r.Context(), tx, id, p)
		if err != nil {
			return err
		}
		pkg = out
		meta := map[string]any{"title": out.Title, "slug": out.Slug}
		return audit.Insert(r.Context(), tx, entityType, &id, "UPDATED", admin.Email, meta)
	})
	if err != nil {
		h.Log.WithError(err).Error("update package")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, pkg)
}

type PatchFlagsRequest struct {
	Featured *bool `json:"featured,omitempty"`
	Active   *bool `json:"active,omitempty"`
}

func (h Handlers) PatchFlags(w http.ResponseWriter, r *http.Request) {
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

	var req PatchFlagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.Featured == nil && req.Active == nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "nothing to update")
		return
	}

	var pkg *Package
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := UpdateFlags(r.Context(), tx, id, req.Featured, req.Active)
		if err != nil {
			return err
		}
		pkg = out
		meta := map[string]any{"featured": req.Featured, "active": req.Active}
		return audit.Insert(r.Context(), tx, entityType, &id, "FLAGS_CHANGED", admin.Email, meta)
	})
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "package not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, pkg)
}

func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list packages")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	q := filter.Query{
		Search: r.URL.Query().Get("search"),
		Categories: map[string]string{
			"destination": r.URL.Query().Get("destination"),
		},
	}
	visible := make([]Package, 0, len(items))
	for _, p := range items {
		if q.Match(
			[]string{p.Title, p.Summary, p.Destination},
			map[string]string{"destination": p.Destination},
		) {
			visible = append(visible, p)
		}
	}

	api.WriteItems(w, visible)
}

func (h Handlers) AdminGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	pkg, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "package not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, pkg)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
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
		found, err := deletePackage(r.Context(), tx, id, admin.Email)
		if err != nil {
			return err
		}
		if !found {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "package not found")
			return pgx.ErrTxCommitRollback
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		h.Log.WithError(err).Error("delete package")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deletePackage removes the row and records the deletion in the same
// transaction, so the activity feed never misses a content change.
func deletePackage(ctx context.Context, tx pgx.Tx, id, actor string) (bool, error) {
	found, err := Delete(ctx, tx, id)
	if err != nil || !found {
		return found, err
	}
	return true, audit.Insert(ctx, tx, entityType, &id, "DELETED", actor, nil)
}

// PublicList serves the catalog page: active packages narrowed by search,
// destination, featured flag and price bounds.
func (h Handlers) PublicList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list packages")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	query := r.URL.Query()
	search := query.Get("search")
	destination := query.Get("destination")
	featuredOnly := query.Get("featured") == "true"

	var minPrice, maxPrice *decimal.Decimal
	if v := query.Get("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			minPrice = &d
		}
	}
	if v := query.Get("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			maxPrice = &d
		}
	}

	visible := make([]Package, 0, len(items))
	for _, p := range items {
		if !p.Active {
			continue
		}
		if !filter.Text(search, p.Title, p.Summary, p.Destination) {
			continue
		}
		if !filter.Category(destination, p.Destination) {
			continue
		}
		if featuredOnly && !p.Featured {
			continue
		}
		if minPrice != nil || maxPrice != nil {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				continue
			}
			if minPrice != nil && price.LessThan(*minPrice) {
				continue
			}
			if maxPrice != nil && price.GreaterThan(*maxPrice) {
				continue
			}
		}
		visible = append(visible, p)
	}

	api.WriteItems(w, visible)
}

func (h Handlers) PublicGet(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if s == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing slug")
		return
	}

	pkg, err := h.Repo.GetBySlug(r.Context(), s)
	if err != nil || !pkg.Active {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "package not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, pkg)
}
