package vacationhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ferias/internal/auth"
	"ferias/internal/domain/sector"
	"ferias/internal/domain/vacation"
	"ferias/internal/transport/http/api"
	"ferias/internal/transport/http/middleware"
	"ferias/internal/transport/http/shared"
)

type Handler struct {
	Service *vacation.Service
	Sectors *sector.Service
}

func NewHandler(service *vacation.Service, sectors *sector.Service) *Handler {
	return &Handler{Service: service, Sectors: sectors}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ferias", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/solicitar", h.handleSubmit)
		r.With(middleware.RequireAuth).Get("/minhas", h.handleListMine)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Get("/pendentes/{setorID}", h.handleListPending)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Post("/{feriasID}/aprovar", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleManager)).Post("/{feriasID}/negar", h.handleDeny)
		r.With(middleware.RequireAuth).Post("/{feriasID}/cancelar", h.handleCancel)
		r.With(middleware.RequireAuth).Get("/calendario/{setorID}", h.handleCalendar)
		r.With(middleware.RequireAuth).Get("/calendario/{setorID}/export.pdf", h.handleCalendarExport)
	})
}

type periodPayload struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

type submitPayload struct {
	Periods []periodPayload `json:"periodos"`
}

type denyPayload struct {
	Reason string `json:"motivo"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	periods := make([]vacation.Period, 0, len(payload.Periods))
	for i, p := range payload.Periods {
		start, err := shared.ParseDate(p.Start)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", fmt.Sprintf("período %d: início inválido", i+1), middleware.GetRequestID(r.Context()))
			return
		}
		end, err := shared.ParseDate(p.End)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", fmt.Sprintf("período %d: fim inválido", i+1), middleware.GetRequestID(r.Context()))
			return
		}
		periods = append(periods, vacation.Period{Start: start, End: end})
	}

	result, err := h.Service.Submit(r.Context(), user.UserID, periods)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requests, err := h.Service.ListMine(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListPendingBySector(r.Context(), chi.URLParam(r, "setorID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Approve(r.Context(), chi.URLParam(r, "feriasID"), user.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload denyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Deny(r.Context(), chi.URLParam(r, "feriasID"), user.UserID, payload.Reason); err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Cancel(r.Context(), chi.URLParam(r, "feriasID"), user.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, nil, middleware.GetRequestID(r.Context()))
}

func (h *Handler) calendarWindow(r *http.Request) (time.Time, time.Time, error) {
	start, err := shared.ParseDate(r.URL.Query().Get("inicio"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := shared.ParseDate(r.URL.Query().Get("fim"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.calendarWindow(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", vacation.ErrInvalidRange.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	days, err := h.Service.Calendar(r.Context(), chi.URLParam(r, "setorID"), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, days, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.calendarWindow(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", vacation.ErrInvalidRange.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	sectorID := chi.URLParam(r, "setorID")
	sec, err := h.Sectors.Get(r.Context(), sectorID)
	if err != nil {
		if errors.Is(err, sector.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", middleware.GetRequestID(r.Context()))
		return
	}

	days, err := h.Service.Calendar(r.Context(), sectorID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pdfBytes, err := vacation.RenderCalendarPDF(sec.Name, days)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_error", "failed to render calendar", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="calendario-ferias.pdf"`)
	_, _ = w.Write(pdfBytes)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, vacation.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, vacation.ErrInvalidPeriod),
		errors.Is(err, vacation.ErrOverlappingPeriods),
		errors.Is(err, vacation.ErrDurationMismatch),
		errors.Is(err, vacation.ErrMissingReason),
		errors.Is(err, vacation.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, vacation.ErrCapacityExceeded),
		errors.Is(err, vacation.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	case errors.Is(err, vacation.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
