package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/refugiapp/refugiapp/internal/app"
	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/service"
	"github.com/refugiapp/refugiapp/internal/store"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListItems(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(1)
	m.items.EXPECT().ListItems(gomock.Any()).Return([]models.Item{{ID: "1", Title: "Mantas", Description: "Invierno"}}, nil)

	rec := serve(h, authedRequest(http.MethodGet, "/api/items", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"1","title":"Mantas","description":"Invierno"}]`, rec.Body.String())
}

func TestReports_List(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(1)
	m.reports.EXPECT().ListReports(gomock.Any()).Return([]models.Report{{ID: "r1", Title: "Habitantes", Kind: models.ReportKindResidents}}, nil)

	rec := serve(h, authedRequest(http.MethodGet, "/api/reports", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"r1","title":"Habitantes","createdAt":"0001-01-01T00:00:00Z"}]`, rec.Body.String())
}

func TestReports_RowsKeepKeyOrder(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(1)
	m.reports.EXPECT().ReportRows(gomock.Any(), "r2").Return([]models.Record{
		models.NewRecord("zona", "Norte", "total", "2"),
	}, nil)

	rec := serve(h, authedRequest(http.MethodGet, "/api/reports?id=r2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"rows":[{"zona":"Norte","total":"2"}]}`, rec.Body.String())
}

func TestReports_UnknownID(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(1)
	m.reports.EXPECT().ReportRows(gomock.Any(), "nope").Return(nil, store.ErrReportNotFound)

	rec := serve(h, authedRequest(http.MethodGet, "/api/reports?id=nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgReportNotFound, strings.TrimSpace(rec.Body.String()))
}

func TestDownloadReport(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(1)
	m.reports.EXPECT().
		RenderReport(gomock.Any(), models.ReportQuery{ID: "r2", Format: "csv"}).
		Return(models.RenderedReport{Filename: "Por_zona.csv", ContentType: export.MimeTypeCSV, Data: []byte("zona,total\nNorte,2")}, nil)

	req := authedRequest(http.MethodGet, "/api/reports/download?id=r2&format=csv", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.MimeTypeCSV, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Por_zona.csv`, rec.Header().Get("Content-Disposition"))
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "zona,total\nNorte,2", rec.Body.String())
}

func TestDownloadReport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"empty report", service.ErrNothingToExport, http.StatusNotFound, app.MsgNothingToExport},
		{"bad format", service.ErrUnsupportedFormat, http.StatusBadRequest, app.MsgUnsupportedFormat},
		{"missing id", service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.expectSession(1)
			m.reports.EXPECT().RenderReport(gomock.Any(), gomock.Any()).Return(models.RenderedReport{}, tt.err)

			rec := serve(h, authedRequest(http.MethodGet, "/api/reports/download?id=r1&format=doc", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}
