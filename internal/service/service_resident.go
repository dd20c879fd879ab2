package service

import (
	"context"
	"fmt"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/store"
	"github.com/refugiapp/refugiapp/models"
)

type residentService struct {
	residentRepository store.ResidentRepository

	logger *logger.Logger
}

func NewResidentService(residentRepository store.ResidentRepository, logger *logger.Logger) ResidentService {
	return &residentService{
		residentRepository: residentRepository,
		logger:             logger,
	}
}

// CreateResident stores the document. Any id sent by the client is dropped;
// the store assigns one.
func (r *residentService) CreateResident(ctx context.Context, userID int64, resident models.Resident) (models.Resident, error) {
	resident.ID = ""
	resident.CreatedBy = userID

	saved, err := r.residentRepository.CreateResident(ctx, resident)
	if err != nil {
		return models.Resident{}, fmt.Errorf("resident creation ended with error: %w", err)
	}
	return saved, nil
}

func (r *residentService) ListResidents(ctx context.Context) ([]models.Resident, error) {
	return r.residentRepository.ListResidents(ctx)
}
