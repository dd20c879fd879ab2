package service

import (
	"context"

	"github.com/refugiapp/refugiapp/models"
)

// ReportsClient is the part of the backend adapter the export flow reads
// reports through.
type ReportsClient interface {
	ListReports(ctx context.Context) ([]models.Report, error)
	ReportRows(ctx context.Context, id string) ([]models.Record, error)
	DownloadReport(ctx context.Context, id, format string) (models.RenderedReport, error)
}

// ClientExportService turns residents and server reports into files saved
// on the user's machine.
//
// Every error it returns is an *export.ExportError. An export with no rows
// is not an error: the result has Empty set and no file is written.
type ClientExportService interface {
	// ListReports lists the server's reports. The reporting endpoint is
	// optional, so any failure yields an empty list.
	ListReports(ctx context.Context) []models.Report

	// ExportResidents saves every resident as a CSV file.
	ExportResidents(ctx context.Context) (models.ExportResult, error)

	// ExportReport saves the rows of report as a CSV file. Rows missing from
	// the descriptor are fetched by id.
	ExportReport(ctx context.Context, report models.Report) (models.ExportResult, error)

	// DownloadReport saves the server-rendered blob of report. format may be
	// empty to let the server choose.
	DownloadReport(ctx context.Context, report models.Report, format string) (models.ExportResult, error)
}
