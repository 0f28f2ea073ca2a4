package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/http/response"
	"github.com/mmttc/workshop-registration/internal/service"
	"github.com/mmttc/workshop-registration/pkg/config"
	"github.com/mmttc/workshop-registration/pkg/logger"
)

type RegistrationHandler struct {
	Svc      service.RegistrationService
	WorkshopCfg config.WorkshopConfig
}

func NewRegistrationHandler(svc service.RegistrationService, workshop config.WorkshopConfig) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, WorkshopCfg: workshop}
}

func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in domain.RegistrationReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	reg, err := h.Svc.Submit(r.Context(), &in)
	if err != nil {
		h.writeSubmitError(w, r, err)
		return
	}

	// Seats are re-derived by query after a successful create, never by a
	// local decrement.
	seats, serr := h.Svc.SeatsRemaining(r.Context())
	if serr != nil {
		logger.ErrorContext(r.Context(), "Seats re-query failed after create", "error", serr)
	}

	response.JSON(w, http.StatusCreated, map[string]any{
		"registration":    reg,
		"seats_remaining": seats,
		"message":         "Your registration has been received. Please note that participation is based on selection. The list of selected candidates will be communicated by December 12, 2025.",
	})
}

func (h *RegistrationHandler) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, verr.Message)
	case errors.Is(err, domain.ErrCapacityFull):
		response.Conflict(w, "No seats remaining.", response.CodeCapacityFull)
	case errors.Is(err, domain.ErrDuplicateEmail):
		response.Conflict(w, "This email is already registered. If you believe this is an error, please contact the support team.", response.CodeEmailExists)
	case errors.Is(err, domain.ErrVerifyUnavailable):
		response.WriteError(w, http.StatusServiceUnavailable,
			"Unable to verify existing registrations at the moment. Please try again.", response.CodeVerifyUnavailable)
	default:
		logger.ErrorContext(r.Context(), "Registration create failed", "error", err)
		response.WriteErrorWithDetails(w, http.StatusInternalServerError,
			"Registration failed", response.CodeInternalError, err.Error())
	}
}

func (h *RegistrationHandler) Seats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.Svc.SeatsRemaining(r.Context())
	if err != nil {
		response.InternalError(w, "error counting registrations")
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"capacity":        h.WorkshopCfg.Capacity,
		"seats_remaining": seats,
	})
}

func (h *RegistrationHandler) Workshop(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"title":    h.WorkshopCfg.Title,
		"dates":    h.WorkshopCfg.Dates,
		"capacity": h.WorkshopCfg.Capacity,
		"host":     "Malaviya Mission Teacher Training Centre (MMTTC), University of Jammu",
	})
}
