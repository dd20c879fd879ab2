package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/refugiapp/refugiapp/models"
)

// Field names accepted by [ResidentValidator]. They are the document keys.
const (
	FieldFullName  = models.ResidentKeyFullName
	FieldZone      = models.ResidentKeyZone
	FieldSex       = models.ResidentKeySex
	FieldBirthDate = models.ResidentKeyBirthDate
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ResidentValidator checks resident documents before they are stored.
//
// By default the required fields of the current form revision are checked
// (nombreCompleto, zona, sexo) together with the birth date, which may be
// free text but must be a real day when written as YYYY-MM-DD.
type ResidentValidator struct{}

func NewResidentValidator() Validator {
	return &ResidentValidator{}
}

func (v *ResidentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Resident:
		return v.validateResident(value, fields...)
	case *models.Resident:
		return v.validateResident(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ResidentValidator) validateResident(r models.Resident, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFullName, FieldZone, FieldSex, FieldBirthDate}
	}

	var missing []string
	for _, f := range fields {
		switch f {
		case FieldFullName:
			if strings.TrimSpace(r.FullName) == "" {
				missing = append(missing, f)
			}
		case FieldZone:
			if strings.TrimSpace(r.Zone) == "" {
				missing = append(missing, f)
			}
		case FieldSex:
			if r.Sex == "" {
				missing = append(missing, f)
			} else if !r.Sex.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidSex, r.Sex)
			}
		case FieldBirthDate:
			if isoDate.MatchString(r.BirthDate) {
				if _, err := time.Parse(time.DateOnly, r.BirthDate); err != nil {
					return fmt.Errorf("%w: %q", ErrInvalidBirthDate, r.BirthDate)
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}
