package http

import (
	"errors"
	"net/http"

	"github.com/refugiapp/refugiapp/internal/app"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/internal/utils"
	"github.com/refugiapp/refugiapp/models"
)

func (h *Handler) createResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var resident models.Resident
	if !decodeJSON(w, r, &resident) {
		return
	}

	created, err := h.services.ResidentService.CreateResident(ctx, userID, resident)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResident) {
			// the form shows which field was rejected
			h.logger.Debug().Err(err).Int64("user_id", userID).Msg("resident rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, r, err, "resident creation failed")
		return
	}

	utils.WriteJSON(w, models.CreatedResponse{ID: created.ID}, http.StatusCreated)
}

func (h *Handler) listResidents(w http.ResponseWriter, r *http.Request) {
	residents, err := h.services.ResidentService.ListResidents(r.Context())
	if err != nil {
		writeError(w, r, err, "listing residents failed")
		return
	}
	if residents == nil {
		residents = []models.Resident{}
	}

	utils.WriteJSON(w, residents, http.StatusOK)
}
