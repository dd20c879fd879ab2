package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/refugiapp/refugiapp/models"
)

// ReportQueryValidator checks [models.ReportQuery] values.
type ReportQueryValidator struct{}

func NewReportQueryValidator() Validator {
	return &ReportQueryValidator{}
}

// Validate requires an id and, when set, one of the known formats.
func (v *ReportQueryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var q models.ReportQuery
	switch value := obj.(type) {
	case models.ReportQuery:
		q = value
	case *models.ReportQuery:
		q = *value
	default:
		return ErrUnsupportedType
	}

	if strings.TrimSpace(q.ID) == "" {
		return ErrEmptyIdentifier
	}
	switch q.Format {
	case "", models.ReportFormatCSV, models.ReportFormatJSON, models.ReportFormatXLSX:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, q.Format)
}
