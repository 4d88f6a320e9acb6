package userhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ferias/internal/auth"
	"ferias/internal/domain/user"
	"ferias/internal/transport/http/api"
	"ferias/internal/transport/http/middleware"
)

type Handler struct {
	Service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/usuarios", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{usuarioID}", h.handleGet)
		r.With(middleware.RequireAuth).Get("/matricula/{matricula}", h.handleGetByMatricula)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleRegister)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{usuarioID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{usuarioID}", h.handleDelete)
	})
}

type registerPayload struct {
	Name     string `json:"nome"`
	Role     string `json:"perfil"`
	SectorID string `json:"setorId"`
	Password string `json:"senha"`
}

type updatePayload struct {
	Name     string `json:"nome"`
	Role     string `json:"perfil"`
	SectorID string `json:"setorId"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Get(r.Context(), chi.URLParam(r, "usuarioID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, u, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetByMatricula(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetByMatricula(r.Context(), chi.URLParam(r, "matricula"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, u, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	u, err := h.Service.Register(r.Context(), payload.Name, payload.Role, payload.SectorID, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, u, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	u, err := h.Service.Update(r.Context(), chi.URLParam(r, "usuarioID"), payload.Name, payload.Role, payload.SectorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, u, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "usuarioID")); err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, nil, middleware.GetRequestID(r.Context()))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, user.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, user.ErrNameRequired),
		errors.Is(err, user.ErrPasswordRequired),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrSectorNotFound):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, user.ErrMatriculaExhausted):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
