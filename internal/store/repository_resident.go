package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
)

// residentRepository stores each resident as a JSON document in the
// "residents" table. The id lives in its own column and is never part of
// the stored document; zone is denormalised for grouping.
type residentRepository struct {
	*DB
	ids    IDGenerator
	logger *logger.Logger
}

func NewResidentRepository(db *DB, ids IDGenerator, logger *logger.Logger) ResidentRepository {
	logger.Debug().Msg("creating resident repository")
	return &residentRepository{
		DB:     db,
		ids:    ids,
		logger: logger,
	}
}

// CreateResident assigns a fresh id, overwriting any id the caller sent.
func (r *residentRepository) CreateResident(ctx context.Context, resident models.Resident) (models.Resident, error) {
	log := logger.FromContext(ctx)

	resident.ID = ""
	document, err := json.Marshal(resident.Record())
	if err != nil {
		return models.Resident{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	resident.ID = r.ids.Generate()
	if resident.CreatedAt.IsZero() {
		resident.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.builder.
		Insert(resident.TableName()).
		Columns("id", "document", "zone", "created_by", "created_at").
		Values(resident.ID, string(document), resident.Zone, resident.CreatedBy, resident.CreatedAt).
		ToSql()
	if err != nil {
		return models.Resident{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*residentRepository.CreateResident").Int64("created_by", resident.CreatedBy).Msg("error inserting resident")
		return models.Resident{}, fmt.Errorf("%w: %w", ErrExecutingStatement, r.classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Resident{}, ErrResidentNotSaved
	}

	log.Debug().Str("func", "*residentRepository.CreateResident").Str("id", resident.ID).Msg("resident saved")
	return resident, nil
}

func (r *residentRepository) ListResidents(ctx context.Context) ([]models.Resident, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("id", "document", "created_by", "created_at").
		From(models.Resident{}.TableName()).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*residentRepository.ListResidents").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	residents := make([]models.Resident, 0, 64)
	for rows.Next() {
		var (
			id, document string
			resident     models.Resident
			createdBy    int64
			createdAt    time.Time
		)
		if err = rows.Scan(&id, &document, &createdBy, &createdAt); err != nil {
			log.Err(err).Str("func", "*residentRepository.ListResidents").Msg("failed to scan resident row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if err = json.Unmarshal([]byte(document), &resident); err != nil {
			log.Err(err).Str("func", "*residentRepository.ListResidents").Str("id", id).Msg("failed to decode resident document")
			return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
		}
		resident.ID = id
		resident.CreatedBy = createdBy
		resident.CreatedAt = createdAt

		residents = append(residents, resident)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*residentRepository.ListResidents").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return residents, nil
}

func (r *residentRepository) CountResidentsByZone(ctx context.Context) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("zone", "COUNT(*)").
		From(models.Resident{}.TableName()).
		GroupBy("zone").
		OrderBy("zone").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*residentRepository.CountResidentsByZone").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.classify(err))
	}
	defer rows.Close()

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		var (
			zone  string
			total int64
		)
		if err = rows.Scan(&zone, &total); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		records = append(records, models.NewRecord(models.ResidentKeyZone, zone, "total", fmt.Sprint(total)))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
