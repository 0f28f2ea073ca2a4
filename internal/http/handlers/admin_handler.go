package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/http/response"
	"github.com/mmttc/workshop-registration/internal/service"
	"github.com/mmttc/workshop-registration/pkg/config"
	"github.com/mmttc/workshop-registration/pkg/logger"
)

type AdminHandler struct {
	Svc      service.RegistrationService
	Workshop config.WorkshopConfig
}

func NewAdminHandler(svc service.RegistrationService, workshop config.WorkshopConfig) *AdminHandler {
	return &AdminHandler{Svc: svc, Workshop: workshop}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	regs, total, err := h.Svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		logger.ErrorContext(r.Context(), "List registrations failed", "error", err)
		response.InternalError(w, "error listing registrations")
		return
	}

	seats := h.Workshop.Capacity - total
	if seats < 0 {
		seats = 0
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"registrations":   regs,
		"total":           total,
		"seats_remaining": seats,
	})
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "invalid id")
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "registration not found")
			return
		}
		logger.ErrorContext(r.Context(), "Delete registration failed", "error", err, "registration_id", id)
		response.InternalError(w, "Failed to delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.Svc.ExportCSV(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			response.Conflict(w, "No data to export.", response.CodeNoData)
			return
		}
		logger.ErrorContext(r.Context(), "CSV export failed", "error", err)
		response.InternalError(w, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}
