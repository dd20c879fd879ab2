package http

import (
	"errors"
	"net/http"

	"github.com/refugiapp/refugiapp/internal/app"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; more specific sentinels come first.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrUnsupportedFormat, errorResponse{http.StatusBadRequest, app.MsgUnsupportedFormat}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrInvalidResident, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrNoUserID, errorResponse{http.StatusBadRequest, app.MsgNoUserIDProvided}},
	{service.ErrUnsupportedProvider, errorResponse{http.StatusBadRequest, app.MsgUnsupportedProvider}},

	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgWrongEmailPassword}},
	{service.ErrInvalidAssertion, errorResponse{http.StatusUnauthorized, app.MsgInvalidAssertion}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{service.ErrFederatedDisabled, errorResponse{http.StatusForbidden, app.MsgFederatedDisabled}},

	{service.ErrProviderMismatch, errorResponse{http.StatusConflict, app.MsgProviderMismatch}},
	{store.ErrEmailAlreadyExists, errorResponse{http.StatusConflict, app.MsgEmailAlreadyExists}},

	{store.ErrReportNotFound, errorResponse{http.StatusNotFound, app.MsgReportNotFound}},
	{service.ErrNothingToExport, errorResponse{http.StatusNotFound, app.MsgNothingToExport}},
	{store.ErrResetTokenInvalid, errorResponse{http.StatusBadRequest, app.MsgResetTokenInvalid}},

	{store.ErrTemporarilyUnavailable, errorResponse{http.StatusServiceUnavailable, app.MsgStorageUnavailable}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError logs err and answers with the mapped status and plain-text
// message. Internal details never reach the body.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", resp.status).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", resp.status).Msg(msg)
	}

	http.Error(w, resp.message, resp.status)
}
