package blog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"travelapi/internal/api"
	"travelapi/internal/audit"
	"travelapi/internal/filter"
	"travelapi/internal/slug"
	"travelapi/pkg/db"
)

const entityType = "post"

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
	Log  *logrus.Logger
}

type PostRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
	Author     string   `json:"author"`
}

func (req PostRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Body, validation.Required),
		validation.Field(&req.Author, validation.Required),
	)
}

func (req PostRequest) params() PostParams {
	return PostParams{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		Tags:       NormalizeTags(req.Tags),
		CoverImage: req.CoverImage,
		Author:     req.Author,
	}
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	admin := api.AdminFromContext(r.Context())
	if admin == nil {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing admin identity")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	p := req.params()
	// Slug is derived from the title only at creation; an explicit slug wins,
	// and later edits never re-derive it.
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if p.Slug == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "title does not yield a usable slug")
		return
	}

	var post *Post
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := Create(r.Context(), tx, p)
		if err != nil {
			return err
		}
		post = out
		meta := map[string]any{"title": out.Title, "slug": out.Slug}
		return audit.Insert(r.Context(), tx, entityType, &out.ID, "CREATED", admin.Email, meta)
	})
	if err != nil {
		h.Log.WithError(err).Error("create post")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, post)
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

	var req PostRequest
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
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "post not found")
		return
	}

	p := req.params()
	if p.Slug == "" {
		p.Slug = existing.Slug
	}

	var post *Post
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := Update(r.Context(), tx, id, p)
		if err != nil {
			return err
		}
		post = out
		meta := map[string]any{"title": out.Title, "slug": out.Slug}
		return audit.Insert(r.Context(), tx, entityType, &id, "UPDATED", admin.Email, meta)
	})
	if err != nil {
		h.Log.WithError(err).Error("update post")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, post)
}

type PatchFlagsRequest struct {
	Published *bool `json:"published,omitempty"`
	Featured  *bool `json:"featured,omitempty"`
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
	if req.Published == nil && req.Featured == nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "nothing to update")
		return
	}

	var post *Post
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		out, err := UpdateFlags(r.Context(), tx, id, req.Published, req.Featured)
		if err != nil {
			return err
		}
		post = out
		meta := map[string]any{"published": req.Published, "featured": req.Featured}
		return audit.Insert(r.Context(), tx, entityType, &id, "FLAGS_CHANGED", admin.Email, meta)
	})
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "post not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, post)
}

// AdminList returns every post; publication filter accepts
// all|published|draft alongside free-text search.
func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list posts")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	q := filter.Query{
		Search: r.URL.Query().Get("search"),
		Categories: map[string]string{
			"published": r.URL.Query().Get("published"),
		},
	}
	visible := make([]Post, 0, len(items))
	for _, p := range items {
		pub := "draft"
		if p.Published {
			pub = "published"
		}
		if q.Match(
			[]string{p.Title, p.Excerpt, p.Author},
			map[string]string{"published": pub},
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

	post, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "post not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, post)
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
		found, err := deletePost(r.Context(), tx, id, admin.Email)
		if err != nil {
			return err
		}
		if !found {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "post not found")
			return pgx.ErrTxCommitRollback
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		h.Log.WithError(err).Error("delete post")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deletePost removes the row and records the deletion in the same
// transaction, so the activity feed never misses a content change.
func deletePost(ctx context.Context, tx pgx.Tx, id, actor string) (bool, error) {
	found, err := Delete(ctx, tx, id)
	if err != nil || !found {
		return found, err
	}
	return true, audit.Insert(ctx, tx, entityType, &id, "DELETED", actor, nil)
}

// PublicList serves the site blog: published posts only, newest first,
// with optional search and tag narrowing.
func (h Handlers) PublicList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list posts")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	search := r.URL.Query().Get("search")
	tag := r.URL.Query().Get("tag")

	visible := make([]Post, 0, len(items))
	for _, p := range items {
		if !p.Published {
			continue
		}
		if !filter.Text(search, p.Title, p.Excerpt) {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
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

	post, err := h.Repo.GetBySlug(r.Context(), s)
	if err != nil || !post.Published {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "post not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, post)
}
