package service

import (
	"context"
	"errors"
	"time"

	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/gateway"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
)

// residentsExportName names the resident export in errors, before the
// timestamped file name is known.
const residentsExportName = "habitantes"

type clientExportService struct {
	gateway gateway.Gateway
	reports ReportsClient
	saver   export.Saver

	timeout time.Duration

	// now is replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewClientExportService wires the export flow. Calls to the reports client
// are bounded by timeout when it is positive; gateway calls carry their own.
func NewClientExportService(gw gateway.Gateway, reports ReportsClient, saver export.Saver, timeout time.Duration, logger *logger.Logger) ClientExportService {
	return &clientExportService{
		gateway: gw,
		reports: reports,
		saver:   saver,
		timeout: timeout,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *clientExportService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *clientExportService) ListReports(ctx context.Context) []models.Report {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reports, err := s.reports.ListReports(ctx)
	if err != nil {
		unavailable := &export.ReportingUnavailable{Err: err}
		s.logger.Warn().Err(unavailable).Str("func", "clientExportService.ListReports").Msg("showing no reports")
		return []models.Report{}
	}
	if reports == nil {
		return []models.Report{}
	}
	return reports
}

func (s *clientExportService) ExportResidents(ctx context.Context) (models.ExportResult, error) {
	residents, err := s.gateway.ListResidents(ctx)
	if err != nil {
		return models.ExportResult{}, &export.ExportError{Op: "fetch", Name: residentsExportName, Err: err}
	}

	return s.saveCSV(models.ResidentRecords(residents), export.ResidentsFilename(s.now()))
}

func (s *clientExportService) ExportReport(ctx context.Context, report models.Report) (models.ExportResult, error) {
	rows := report.Rows
	if rows == nil {
		fetchCtx, cancel := s.withTimeout(ctx)
		defer cancel()

		var err error
		rows, err = s.reports.ReportRows(fetchCtx, report.ID)
		if err != nil {
			return models.ExportResult{}, &export.ExportError{Op: "fetch", Name: report.Title, Err: mapAdapterError(err)}
		}
	}

	return s.saveCSV(rows, export.ReportFilename(report.Title))
}

func (s *clientExportService) saveCSV(rows []models.Record, name string) (models.ExportResult, error) {
	text, ok := export.RecordsToCSV(rows)
	if !ok {
		s.logger.Info().Str("name", name).Msg("nothing to export")
		return models.ExportResult{Empty: true}, nil
	}

	path, err := s.saver.Save(name, export.MimeTypeCSV, []byte(text))
	if err != nil {
		return models.ExportResult{}, asExportError("save", name, err)
	}

	s.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("csv exported")
	return models.ExportResult{Path: path, Rows: len(rows)}, nil
}

// DownloadReport saves the blob as SanitizeFilename(title) with the
// extension its content type implies.
func (s *clientExportService) DownloadReport(ctx context.Context, report models.Report, format string) (models.ExportResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rendered, err := s.reports.DownloadReport(ctx, report.ID, format)
	if err != nil {
		mapped := mapAdapterError(err)
		if errors.Is(mapped, ErrNothingToExport) {
			return models.ExportResult{Empty: true}, nil
		}
		return models.ExportResult{}, &export.ExportError{Op: "download", Name: report.Title, Err: mapped}
	}

	name := export.DownloadFilename(report.Title, export.ExtensionFromContentType(rendered.ContentType))
	path, err := s.saver.Save(name, rendered.ContentType, rendered.Data)
	if err != nil {
		return models.ExportResult{}, asExportError("save", name, err)
	}

	s.logger.Info().Str("path", path).Str("content_type", rendered.ContentType).Msg("report downloaded")
	return models.ExportResult{Path: path}, nil
}

func asExportError(op, name string, err error) error {
	var exportErr *export.ExportError
	if errors.As(err, &exportErr) {
		return err
	}
	return &export.ExportError{Op: op, Name: name, Err: err}
}
