package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	var req models.TransactionCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createTransaction").Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	transaction, err := h.services.TransactionService.CreateTransaction(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTransaction").Msg("error creating transaction")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, transaction, http.StatusCreated)
}

func (h *Handler) createTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createTransfer").Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.TransactionService.CreateTransfer(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTransfer").Msg("error creating transfer")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	filter, err := transactionFilterFromQuery(r.URL.Query())
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTransactions").Msg("invalid query")
		writeError(w, r, err)
		return
	}

	transactions, err := h.services.TransactionService.ListTransactions(ctx, userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTransactions").Msg("error listing transactions")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, transactions, http.StatusOK)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	transaction, err := h.services.TransactionService.GetTransaction(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, transaction, http.StatusOK)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	var update models.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Str("func", "*Handler.updateTransaction").Msg("Invalid JSON was passed")
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	id := chi.URLParam(r, "id")
	transaction, err := h.services.TransactionService.UpdateTransaction(ctx, userID, id, update)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTransaction").Str("id", id).Msg("error updating transaction")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, transaction, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.services.TransactionService.DeleteTransaction(ctx, userID, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTransaction").Str("id", id).Msg("error deleting transaction")
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
