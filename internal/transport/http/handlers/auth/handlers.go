package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"ferias/internal/auth"
	"ferias/internal/domain/user"
	"ferias/internal/transport/http/api"
	"ferias/internal/transport/http/middleware"
)

type Handler struct {
	Users    *user.Service
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(users *user.Service, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Users: users, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Matricula string `json:"matricula"`
	Password  string `json:"senha"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	u, err := h.Users.Authenticate(r.Context(), payload.Matricula, payload.Password)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", user.ErrInvalidCredentials.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:    u.ID,
		Matricula: u.Matricula,
		Role:      u.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token":   token,
		"usuario": u,
	}, middleware.GetRequestID(r.Context()))
}
