package service

import (
	"context"
	"fmt"

	"github.com/refugiapp/refugiapp/internal/validators"
	"github.com/refugiapp/refugiapp/models"
)

// ResidentServiceWrapper decorates a ResidentService, e.g. with validation.
type ResidentServiceWrapper interface {
	Wrap(ResidentService) ResidentService
}

// ResidentValidationService rejects documents that miss required fields
// before they reach the wrapped service.
type ResidentValidationService struct {
	inner     ResidentService
	validator validators.Validator
}

func NewResidentValidationService() ResidentServiceWrapper {
	return &ResidentValidationService{
		validator: validators.NewResidentValidator(),
	}
}

func (v *ResidentValidationService) CreateResident(ctx context.Context, userID int64, resident models.Resident) (models.Resident, error) {
	if userID <= 0 {
		return models.Resident{}, ErrNoUserID
	}
	if err := v.validator.Validate(ctx, resident); err != nil {
		return models.Resident{}, fmt.Errorf("%w: %w", ErrInvalidResident, err)
	}

	return v.inner.CreateResident(ctx, userID, resident)
}

func (v *ResidentValidationService) ListResidents(ctx context.Context) ([]models.Resident, error) {
	return v.inner.ListResidents(ctx)
}

func (v *ResidentValidationService) Wrap(inner ResidentService) ResidentService {
	v.inner = inner
	return v
}
