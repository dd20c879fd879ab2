package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/refugiapp/refugiapp/internal/export"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/store"
	"github.com/refugiapp/refugiapp/internal/validators"
	"github.com/refugiapp/refugiapp/models"
)

type itemService struct {
	itemRepository store.ItemRepository

	logger *logger.Logger
}

func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{itemRepository: itemRepository, logger: logger}
}

func (s *itemService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.itemRepository.ListItems(ctx)
}

// reportService derives report rows from the resident collection according
// to the descriptor's kind.
type reportService struct {
	reportRepository   store.ReportRepository
	residentRepository store.ResidentRepository
	validator          validators.Validator

	logger *logger.Logger
}

func NewReportService(reportRepository store.ReportRepository, residentRepository store.ResidentRepository, logger *logger.Logger) ReportService {
	return &reportService{
		reportRepository:   reportRepository,
		residentRepository: residentRepository,
		validator:          validators.NewReportQueryValidator(),
		logger:             logger,
	}
}

func (s *reportService) ListReports(ctx context.Context) ([]models.Report, error) {
	return s.reportRepository.ListReports(ctx)
}

func (s *reportService) ReportRows(ctx context.Context, id string) ([]models.Record, error) {
	if err := s.validator.Validate(ctx, models.ReportQuery{ID: id}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	report, err := s.reportRepository.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.rows(ctx, report)
}

func (s *reportService) rows(ctx context.Context, report models.Report) ([]models.Record, error) {
	switch report.Kind {
	case models.ReportKindResidents:
		residents, err := s.residentRepository.ListResidents(ctx)
		if err != nil {
			return nil, err
		}
		return models.ResidentRecords(residents), nil

	case models.ReportKindResidentsByZone:
		return s.residentRepository.CountResidentsByZone(ctx)
	}

	logger.FromContext(ctx).Error().Str("id", report.ID).Str("kind", string(report.Kind)).Msg("report has an unknown kind")
	return nil, fmt.Errorf("%w: %s", ErrUnknownReportKind, report.Kind)
}

// RenderReport renders the rows of q.ID. An empty report cannot be
// rendered and yields ErrNothingToExport.
func (s *reportService) RenderReport(ctx context.Context, q models.ReportQuery) (models.RenderedReport, error) {
	if err := s.validator.Validate(ctx, q); err != nil {
		if q.ID != "" {
			return models.RenderedReport{}, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return models.RenderedReport{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	report, err := s.reportRepository.FindReport(ctx, q.ID)
	if err != nil {
		return models.RenderedReport{}, err
	}

	rows, err := s.rows(ctx, report)
	if err != nil {
		return models.RenderedReport{}, err
	}
	if len(rows) == 0 {
		return models.RenderedReport{}, ErrNothingToExport
	}

	format := q.Format
	if format == "" {
		format = models.ReportFormatCSV
	}

	out := models.RenderedReport{Filename: export.DownloadFilename(report.Title, format)}
	switch format {
	case models.ReportFormatCSV:
		text, _ := export.RecordsToCSV(rows)
		out.ContentType = export.MimeTypeCSV
		out.Data = []byte(text)

	case models.ReportFormatJSON:
		out.ContentType = "application/json"
		out.Data, err = json.Marshal(rows)

	case models.ReportFormatXLSX:
		out.ContentType = export.MimeTypeXLSX
		out.Data, err = export.RecordsToXLSX(report.Title, rows)
	}
	if err != nil {
		return models.RenderedReport{}, fmt.Errorf("rendering report %q as %s: %w", report.ID, format, err)
	}

	return out, nil
}
