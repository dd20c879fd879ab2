package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/refugiapp/refugiapp/internal/adapter"
	"github.com/refugiapp/refugiapp/internal/app"
	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/gateway"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/mock"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// residentsGateway serves a fixed resident snapshot; every other call is
// unused by the export flow.
type residentsGateway struct {
	gateway.Gateway
	residents []models.Resident
	err       error
}

func (g *residentsGateway) ListResidents(context.Context) ([]models.Resident, error) {
	return g.residents, g.err
}

type exportMocks struct {
	reports *mock.MockServerAdapter
	saver   *mock.MockSaver
}

func newTestExportSvc(ctrl *gomock.Controller, gw gateway.Gateway) (*clientExportService, exportMocks) {
	m := exportMocks{
		reports: mock.NewMockServerAdapter(ctrl),
		saver:   mock.NewMockSaver(ctrl),
	}
	svc := NewClientExportService(gw, m.reports, m.saver, time.Second, logger.Nop()).(*clientExportService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 20, 30, 123e6, time.UTC) }
	return svc, m
}

// ── ListReports ──

func TestClientExport_ListReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	want := []models.Report{{ID: "r1", Title: "Habitantes"}}
	m.reports.EXPECT().ListReports(gomock.Any()).Return(want, nil)

	assert.Equal(t, want, svc.ListReports(context.Background()))
}

func TestClientExport_ListReports_FailureIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "server error", err: fmt.Errorf("%w: boom", adapter.ErrInternalServerError)},
		{name: "not found", err: fmt.Errorf("%w: 404 page not found", adapter.ErrNotFound)},
		{name: "transport", err: errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m := newTestExportSvc(ctrl, &residentsGateway{})
			m.reports.EXPECT().ListReports(gomock.Any()).Return(nil, tt.err)

			got := svc.ListReports(context.Background())
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

// ── ExportResidents ──

func TestClientExport_ExportResidents(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{residents: []models.Resident{
		{ID: "a", FullName: "Ana", Sex: models.SexFemale, Zone: "Norte"},
		{ID: "b", FullName: "Luis, hijo", Sex: models.SexMale, Zone: "Sur"},
	}})

	wantCSV := "id,nombreCompleto,sexo,zona\n" +
		"a,Ana,Femenino,Norte\n" +
		"b,\"Luis, hijo\",Masculino,Sur"
	m.saver.EXPECT().
		Save("habitantes_2024-05-01T10-20-30.123Z.csv", export.MimeTypeCSV, []byte(wantCSV)).
		Return("/tmp/habitantes.csv", nil)

	res, err := svc.ExportResidents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ExportResult{Path: "/tmp/habitantes.csv", Rows: 2}, res)
}

func TestClientExport_ExportResidents_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})
	m.saver.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := svc.ExportResidents(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Empty(t, res.Path)
}

func TestClientExport_ExportResidents_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetchErr := &gateway.PersistenceError{Op: "list residents", Err: errors.New("offline")}
	svc, m := newTestExportSvc(ctrl, &residentsGateway{err: fetchErr})
	m.saver.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.ExportResidents(context.Background())

	var exportErr *export.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "fetch", exportErr.Op)
	assert.ErrorIs(t, err, fetchErr)
}

func TestClientExport_ExportResidents_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{residents: []models.Resident{
		{FullName: "Ana", Sex: models.SexFemale, Zone: "Norte"},
	}})
	diskErr := errors.New("disk full")
	m.saver.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("", diskErr)

	_, err := svc.ExportResidents(context.Background())

	var exportErr *export.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "save", exportErr.Op)
	assert.ErrorIs(t, err, diskErr)
}

// ── ExportReport ──

func TestClientExport_ExportReport_EmbeddedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	report := models.Report{ID: "r2", Title: "Por zona", Rows: []models.Record{
		models.NewRecord("zona", "Norte", "total", "2"),
	}}
	m.reports.EXPECT().ReportRows(gomock.Any(), gomock.Any()).Times(0)
	m.saver.EXPECT().Save("Por_zona.csv", export.MimeTypeCSV, []byte("zona,total\nNorte,2")).Return("/tmp/Por_zona.csv", nil)

	res, err := svc.ExportReport(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
}

func TestClientExport_ExportReport_FetchesRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	m.reports.EXPECT().ReportRows(gomock.Any(), "r2").Return([]models.Record{
		models.NewRecord("zona", "Sur", "total", "1"),
	}, nil)
	m.saver.EXPECT().Save("Por_zona.csv", export.MimeTypeCSV, []byte("zona,total\nSur,1")).Return("/tmp/Por_zona.csv", nil)

	res, err := svc.ExportReport(context.Background(), models.Report{ID: "r2", Title: "Por zona"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/Por_zona.csv", res.Path)
}

func TestClientExport_ExportReport_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	m.reports.EXPECT().ReportRows(gomock.Any(), "gone").
		Return(nil, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgReportNotFound))

	_, err := svc.ExportReport(context.Background(), models.Report{ID: "gone", Title: "Viejo"})

	var exportErr *export.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "Viejo", exportErr.Name)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestClientExport_ExportReport_NoRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	m.reports.EXPECT().ReportRows(gomock.Any(), "r1").Return([]models.Record{}, nil)
	m.saver.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := svc.ExportReport(context.Background(), models.Report{ID: "r1", Title: "Habitantes"})
	require.NoError(t, err)
	assert.True(t, res.Empty)
}

// ── DownloadReport ──

func TestClientExport_DownloadReport(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantName    string
	}{
		{name: "pdf", contentType: "application/pdf", wantName: "Reporte__1.pdf"},
		{name: "xlsx", contentType: export.MimeTypeXLSX, wantName: "Reporte__1.xlsx"},
		{name: "unknown", contentType: "application/octet-stream", wantName: "Reporte__1.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m := newTestExportSvc(ctrl, &residentsGateway{})

			blob := []byte{0x25, 0x50, 0x44, 0x46}
			m.reports.EXPECT().DownloadReport(gomock.Any(), "r1", "").
				Return(models.RenderedReport{ContentType: tt.contentType, Data: blob}, nil)
			m.saver.EXPECT().Save(tt.wantName, tt.contentType, blob).Return("/tmp/"+tt.wantName, nil)

			res, err := svc.DownloadReport(context.Background(), models.Report{ID: "r1", Title: "Reporte #1"}, "")
			require.NoError(t, err)
			assert.Equal(t, "/tmp/"+tt.wantName, res.Path)
		})
	}
}

func TestClientExport_DownloadReport_NothingToExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	m.reports.EXPECT().DownloadReport(gomock.Any(), "r1", "csv").
		Return(models.RenderedReport{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgNothingToExport))
	m.saver.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := svc.DownloadReport(context.Background(), models.Report{ID: "r1", Title: "Habitantes"}, "csv")
	require.NoError(t, err)
	assert.True(t, res.Empty)
}

func TestClientExport_DownloadReport_UnsupportedFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestExportSvc(ctrl, &residentsGateway{})

	m.reports.EXPECT().DownloadReport(gomock.Any(), "r1", "doc").
		Return(models.RenderedReport{}, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgUnsupportedFormat))

	_, err := svc.DownloadReport(context.Background(), models.Report{ID: "r1", Title: "Habitantes"}, "doc")

	var exportErr *export.ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "download", exportErr.Op)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
