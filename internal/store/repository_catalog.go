package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
)

type itemRepository struct {
	*DB
	logger *logger.Logger
}

func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{DB: db, logger: logger}
}

func (r *itemRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("id", "title", "description").
		From(models.Item{}.TableName()).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ListItems").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	items := make([]models.Item, 0, 8)
	for rows.Next() {
		var item models.Item
		if err = rows.Scan(&item.ID, &item.Title, &item.Description); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

type reportRepository struct {
	*DB
	logger *logger.Logger
}

func NewReportRepository(db *DB, logger *logger.Logger) ReportRepository {
	logger.Debug().Msg("creating report repository")
	return &reportRepository{DB: db, logger: logger}
}

func (r *reportRepository) ListReports(ctx context.Context) ([]models.Report, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("id", "title", "kind", "created_at").
		From(models.Report{}.TableName()).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reportRepository.ListReports").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	reports := make([]models.Report, 0, 4)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return reports, nil
}

func (r *reportRepository) FindReport(ctx context.Context, id string) (models.Report, error) {
	query, args, err := r.builder.
		Select("id", "title", "kind", "created_at").
		From(models.Report{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	report, err := scanReport(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrReportNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reportRepository.FindReport").Str("id", id).Msg("failed to scan report")
		return models.Report{}, err
	}

	return report, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.Report, error) {
	var (
		report models.Report
		kind   string
	)
	if err := row.Scan(&report.ID, &report.Title, &kind, &report.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, err
		}
		return models.Report{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	report.Kind = models.ReportKind(kind)
	return report, nil
}
