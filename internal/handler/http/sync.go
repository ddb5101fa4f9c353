package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.sync").Msg("no user ID was given")
		writeError(w, r, errNoUserInContext)
		return
	}

	var batch models.SyncBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.SyncService.Sync(ctx, userID, batch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("sync failed")
		writeError(w, r, err)
		return
	}

	log.Debug().
		Str("device_id", batch.DeviceID).
		Int("conflicts", len(result.Conflicts)).
		Int("rejected", len(result.Rejected)).
		Msg("sync round served")

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) getServerTime(w http.ResponseWriter, r *http.Request) {
	serverTime := h.services.SyncService.ServerTime(r.Context())

	utils.WriteJSON(w, models.ServerTimeResponse{ServerTime: serverTime}, http.StatusOK)
}
