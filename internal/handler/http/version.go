package http

import (
	"net/http"

	"github.com/refugiapp/refugiapp/internal/logger"
)

// getServerVersion answers GET /api/version with the plain version text.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(version)); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.getServerVersion").Msg("write version")
	}
}
