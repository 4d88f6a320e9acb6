package sectorhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ferias/internal/auth"
	"ferias/internal/domain/sector"
	"ferias/internal/transport/http/api"
	"ferias/internal/transport/http/middleware"
)

type Handler struct {
	Service *sector.Service
}

func NewHandler(service *sector.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/setores", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{setorID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{setorID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{setorID}", h.handleDelete)
	})
}

type sectorPayload struct {
	Name  string `json:"nome"`
	Limit int    `json:"limiteFeriasSimultaneas"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.Service.List(r.Context(), r.URL.Query().Get("nome"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, sectors, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sec, err := h.Service.Get(r.Context(), chi.URLParam(r, "setorID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, sec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload sectorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	sec, err := h.Service.Create(r.Context(), payload.Name, payload.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, sec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload sectorPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	sec, err := h.Service.Update(r.Context(), chi.URLParam(r, "setorID"), payload.Name, payload.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, sec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "setorID")); err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, nil, middleware.GetRequestID(r.Context()))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, sector.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, sector.ErrNameRequired), errors.Is(err, sector.ErrInvalidLimit):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, sector.ErrNameTaken), errors.Is(err, sector.ErrInUse):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
