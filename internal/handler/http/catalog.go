package http

import (
	"net/http"

	"github.com/refugiapp/refugiapp/internal/utils"
	"github.com/refugiapp/refugiapp/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.services.ItemService.ListItems(r.Context())
	if err != nil {
		writeError(w, r, err, "listing items failed")
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// reports lists the report descriptors, or answers with the rows of one
// report when the id query parameter is present.
func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if query.Has("id") {
		rows, err := h.services.ReportService.ReportRows(ctx, query.Get("id"))
		if err != nil {
			writeError(w, r, err, "building report rows failed")
			return
		}
		if rows == nil {
			rows = []models.Record{}
		}

		utils.WriteJSON(w, models.ReportDetail{Rows: rows}, http.StatusOK)
		return
	}

	reports, err := h.services.ReportService.ListReports(ctx)
	if err != nil {
		writeError(w, r, err, "listing reports failed")
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}

	utils.WriteJSON(w, reports, http.StatusOK)
}

func (h *Handler) downloadReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rendered, err := h.services.ReportService.RenderReport(r.Context(), models.ReportQuery{
		ID:     query.Get("id"),
		Format: query.Get("format"),
	})
	if err != nil {
		writeError(w, r, err, "rendering report failed")
		return
	}

	utils.WriteBlob(w, rendered.ContentType, rendered.Filename, rendered.Data)
}
