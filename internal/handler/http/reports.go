package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

func (h *Handler) getMonthlySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	q := r.URL.Query()
	month := q.Get("month")
	if month == "" {
		writeError(w, r, fmt.Errorf("%w: month is required", ErrInvalidQuery))
		return
	}

	summary, err := h.services.ReportService.MonthlySummary(ctx, userID, month, optionalString(q, "accountId"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.getMonthlySummary").Str("month", month).Msg("error building monthly summary")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) getCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	query, err := breakdownQueryFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCategoryBreakdown").Msg("invalid query")
		writeError(w, r, err)
		return
	}

	breakdown, err := h.services.ReportService.CategoryBreakdown(ctx, userID, query)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCategoryBreakdown").Msg("error building category breakdown")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, breakdown, http.StatusOK)
}

func (h *Handler) getBudgetVsActual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		writeError(w, r, errNoUserInContext)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, r, fmt.Errorf("%w: month is required", ErrInvalidQuery))
		return
	}

	report, err := h.services.ReportService.BudgetVsActual(ctx, userID, month)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBudgetVsActual").Str("month", month).Msg("error building budget report")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func breakdownQueryFromRequest(r *http.Request) (models.CategoryBreakdownQuery, error) {
	q := r.URL.Query()

	start, err := requiredDate(q, "startDate", false)
	if err != nil {
		return models.CategoryBreakdownQuery{}, err
	}
	end, err := requiredDate(q, "endDate", true)
	if err != nil {
		return models.CategoryBreakdownQuery{}, err
	}
	typ, err := optionalTransactionType(q, "type")
	if err != nil {
		return models.CategoryBreakdownQuery{}, err
	}

	return models.CategoryBreakdownQuery{
		Start:      start,
		End:        end,
		Type:       typ,
		CategoryID: optionalString(q, "categoryId"),
	}, nil
}
