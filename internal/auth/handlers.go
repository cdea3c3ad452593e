package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"travelapi/internal/api"
	"travelapi/pkg/config"
)

type Handlers struct {
	Cfg config.Config
	Log *logrus.Logger
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "email and password are required")
		return
	}

	if h.Cfg.Admin.Password == "" {
		h.Log.Warn("admin login attempted but ADMIN_PASSWORD is not set")
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid credentials")
		return
	}
	if !equal(req.Email, h.Cfg.Admin.Email) || !equal(req.Password, h.Cfg.Admin.Password) {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	tok, err := IssueToken(h.Cfg.Admin, req.Email, now)
	if err != nil {
		h.Log.WithError(err).Error("issue admin token")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:     tok,
		ExpiresAt: now.Add(h.Cfg.Admin.TokenTTL),
	})
}

// equal compares credentials without leaking length/content timing.
func equal(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return hmac.Equal(da[:], db[:])
}
