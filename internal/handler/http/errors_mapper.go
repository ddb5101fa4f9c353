package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/app"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/internal/validators"
	"github.com/MKhiriev/go-finance-tracker/models"
)

type errorStatus struct {
	target error
	status int
	code   string
}

// errorStatuses is checked in order: validation errors wrap both
// service.ErrInvalidDataProvided and the validator's own sentinel, and the
// more specific code must win.
var errorStatuses = []errorStatus{
	{service.ErrInvalidAmount, http.StatusBadRequest, app.CodeInvalidAmount},
	{validators.ErrInvalidAmount, http.StatusBadRequest, app.CodeInvalidAmount},
	{service.ErrSameAccountTransfer, http.StatusBadRequest, app.CodeSameAccountTransfer},
	{service.ErrTransferCannotBeModified, http.StatusBadRequest, app.CodeTransferCannotBeModified},
	{service.ErrAccountNotFound, http.StatusNotFound, app.CodeAccountNotFound},
	{service.ErrTransactionNotFound, http.StatusNotFound, app.CodeTransactionNotFound},

	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.CodeValidationFailed},
	{ErrInvalidJSON, http.StatusBadRequest, app.CodeValidationFailed},
	{ErrInvalidQuery, http.StatusBadRequest, app.CodeValidationFailed},

	{service.ErrNoUserID, http.StatusUnauthorized, app.CodeUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.CodeUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.CodeUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.CodeUnauthorized},
	{ErrEmptyToken, http.StatusUnauthorized, app.CodeUnauthorized},
}

func statusFromError(err error) (int, string) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.target) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, app.CodeInternalServerError
}

// writeError answers the request with the ErrorResponse matching err.
// Internal errors are logged and never exposed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).
			Str("path", r.URL.Path).
			Msg("request failed with internal error")
		message = app.MsgInternalServerError
	}

	writeErrorResponse(w, r, status, code, message)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	utils.WriteJSON(w, models.ErrorResponse{
		StatusCode: status,
		ErrorCode:  code,
		Message:    message,
		Path:       r.URL.Path,
		Timestamp:  time.Now().UTC(),
	}, status)
}
