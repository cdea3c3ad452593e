package contact

import (
	"encoding/json"
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
	"travelapi/pkg/db"
)

const entityType = "contact"

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
	Log  *logrus.Logger
}

type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (req CreateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Subject, validation.Required),
		validation.Field(&req.Message, validation.Required, validation.Length(10, 0)),
	)
}

// Create is the public contact-form submission.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if err := req.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, err.Error())
		return
	}

	c, err := h.Repo.Create(r.Context(), req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err != nil {
		h.Log.WithError(err).Error("create contact")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, c)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list contacts")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	q := filter.Query{
		Search:     r.URL.Query().Get("search"),
		Categories: map[string]string{"status": r.URL.Query().Get("status")},
	}
	visible := make([]Contact, 0, len(items))
	for _, c := range items {
		if q.Match(
			[]string{c.Name, c.Email, c.Message},
			map[string]string{"status": string(c.Status)},
		) {
			visible = append(visible, c)
		}
	}

	api.WriteItems(w, visible)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	c, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "contact not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, c)
}

type PatchStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
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

	var updated *Contact
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		c, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if err := Transitions.Check(c.Status, next); err != nil {
			api.WriteError(w, http.StatusConflict, api.CodeInvalidTransition, err.Error())
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, c.ID, next); err != nil {
			return err
		}

		meta := map[string]any{"from": c.Status, "to": next}
		_ = audit.Insert(r.Context(), tx, entityType, &c.ID, "STATUS_CHANGED", admin.Email, meta)
		_ = activity.Insert(r.Context(), tx, entityType, c.ID, "STATUS_CHANGED", "Status changed", admin.Email, time.Now(), meta)

		c.Status = next
		updated = c
		return nil
	})

	if err != nil {
		// Sentinel: the conflict response was already written inside the tx.
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "contact not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, updated)
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
		found, err := Delete(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if !found {
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "contact not found")
			return pgx.ErrTxCommitRollback
		}
		return audit.Insert(r.Context(), tx, entityType, &id, "DELETED", admin.Email, nil)
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		h.Log.WithError(err).Error("delete contact")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "missing id")
		return
	}

	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "contact not found")
		return
	}

	evs, err := activity.ListByEntity(r.Context(), h.DB, entityType, id)
	if err != nil {
		h.Log.WithError(err).Error("list contact events")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	api.WriteItems(w, evs)
}
