package enquiry

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"travelapi/internal/activity"
	"travelapi/internal/api"
	"travelapi/internal/audit"
	"travelapi/internal/filter"
	"travelapi/pkg/db"
)

const entityType = "enquiry"

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
	Log  *logrus.Logger
}

type CreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PackageID  string `json:"packageId"`
	TravelDate string `json:"travelDate"` // YYYY-MM-DD
	Travellers int    `json:"travellers"`
	Budget     string `json:"budget"`
	Message    string `json:"message"`
}

func (req CreateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Message, validation.Required),
	)
}

// Create is the public package-enquiry submission.
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

	p := CreateParams{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Travellers: req.Travellers,
		Message:    req.Message,
	}
	if p.Travellers < 1 {
		p.Travellers = 1
	}
	if req.PackageID != "" {
		p.PackageID = &req.PackageID
	}
	if req.TravelDate != "" {
		if d, err := time.Parse("2006-01-02", req.TravelDate); err == nil {
			p.TravelDate = &d
		}
	}
	// Lenient budget parse: an unreadable amount is dropped, not rejected.
	if req.Budget != "" {
		if d, err := decimal.NewFromString(req.Budget); err == nil && d.IsPositive() {
			s := d.String()
			p.Budget = &s
		}
	}

	e, err := h.Repo.Create(r.Context(), p)
	if err != nil {
		h.Log.WithError(err).Error("create enquiry")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, e)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("list enquiries")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	q := filter.Query{
		Search: r.URL.Query().Get("search"),
		Categories: map[string]string{
			"status":    r.URL.Query().Get("status"),
			"packageId": r.URL.Query().Get("packageId"),
		},
	}
	visible := make([]Enquiry, 0, len(items))
	for _, e := range items {
		pkg := ""
		if e.PackageID != nil {
			pkg = *e.PackageID
		}
		if q.Match(
			[]string{e.Name, e.Email, e.Message},
			map[string]string{"status": string(e.Status), "packageId": pkg},
		) {
			visible = append(visible, e)
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

	e, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "enquiry not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, e)
}

type PatchStatusRequest struct {
	Status string `json:"status"`
	// QuotedAmount accompanies a transition to quoted.
	QuotedAmount string `json:"quotedAmount,omitempty"`
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

	var quoted *string
	if req.QuotedAmount != "" {
		d, err := decimal.NewFromString(req.QuotedAmount)
		if err != nil || !d.IsPositive() {
			api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid quotedAmount")
			return
		}
		s := d.String()
		quoted = &s
	}

	var updated *Enquiry
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		e, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if err := Transitions.Check(e.Status, next); err != nil {
			api.WriteError(w, http.StatusConflict, api.CodeInvalidTransition, err.Error())
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, e.ID, next, quoted); err != nil {
			return err
		}

		meta := map[string]any{"from": e.Status, "to": next}
		if quoted != nil {
			meta["quotedAmount"] = *quoted
		}
		_ = audit.Insert(r.Context(), tx, entityType, &e.ID, "STATUS_CHANGED", admin.Email, meta)
		_ = activity.Insert(r.Context(), tx, entityType, e.ID, "STATUS_CHANGED", "Status changed", admin.Email, time.Now(), meta)

		e.Status = next
		if quoted != nil {
			e.QuotedAmount = quoted
		}
		updated = e
		return nil
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "enquiry not found")
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
			api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "enquiry not found")
			return pgx.ErrTxCommitRollback
		}
		return audit.Insert(r.Context(), tx, entityType, &id, "DELETED", admin.Email, nil)
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		h.Log.WithError(err).Error("delete enquiry")
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
		api.WriteError(w, http.StatusNotFound, api.CodeNotFound, "enquiry not found")
		return
	}

	evs, err := activity.ListByEntity(r.Context(), h.DB, entityType, id)
	if err != nil {
		h.Log.WithError(err).Error("list enquiry events")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	api.WriteItems(w, evs)
}
