package models

import (
	"sort"
	"strings"
	"time"
)

// Sex is the enumerated sex value captured by the registration form.
type Sex string

const (
	SexMale        Sex = "Masculino"
	SexFemale      Sex = "Femenino"
	SexUnspecified Sex = "Sin especificar"
)

// Sexes lists the accepted Sex values in the order the form offers them.
var Sexes = []Sex{SexMale, SexFemale, SexUnspecified}

// Valid reports whether s is one of the enumerated values.
func (s Sex) Valid() bool {
	for _, v := range Sexes {
		if s == v {
			return true
		}
	}
	return false
}

// Wire keys of the resident document. They match the keys the registration
// form has always emitted, so documents written by earlier form revisions
// stay readable.
const (
	ResidentKeyID           = "id"
	ResidentKeyFullName     = "nombreCompleto"
	ResidentKeyAlias        = "alias"
	ResidentKeyBirthDate    = "fechaNacimiento"
	ResidentKeySex          = "sexo"
	ResidentKeyNationality  = "nacionalidad"
	ResidentKeyZone         = "zona"
	ResidentKeyTimeOnStreet = "tiempoEnCalle"
	ResidentKeyNotes        = "notas"
)

var residentKnownKeys = map[string]struct{}{
	ResidentKeyID:           {},
	ResidentKeyFullName:     {},
	ResidentKeyAlias:        {},
	ResidentKeyBirthDate:    {},
	ResidentKeySex:          {},
	ResidentKeyNationality:  {},
	ResidentKeyZone:         {},
	ResidentKeyTimeOnStreet: {},
	ResidentKeyNotes:        {},
}

// Resident is one person's intake data, stored as a single document.
//
// FullName, Zone and Sex are required by the current form revision; every
// other field is optional. Keys the form does not know about are kept in
// Extra so that documents written by other clients survive a round trip.
type Resident struct {
	// ID is assigned by the store on create. Clients never set it.
	ID string

	FullName     string
	Alias        string
	BirthDate    string
	Sex          Sex
	Nationality  string
	Zone         string
	TimeOnStreet string
	Notes        string

	// Extra holds fields outside the known set.
	Extra map[string]string

	// CreatedBy is the account that registered the resident. Not part of
	// the document.
	CreatedBy int64

	// CreatedAt is set by the store. Not part of the document.
	CreatedAt time.Time
}

// MarshalJSON encodes the resident as one flat document (see [Resident.Record]).
func (r Resident) MarshalJSON() ([]byte, error) {
	return r.Record().MarshalJSON()
}

// UnmarshalJSON decodes a flat document into the resident.
func (r *Resident) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := rec.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = ResidentFromRecord(rec)
	return nil
}

// Missing returns the wire keys of required fields that are blank.
func (r Resident) Missing() []string {
	var missing []string
	if strings.TrimSpace(r.FullName) == "" {
		missing = append(missing, ResidentKeyFullName)
	}
	if strings.TrimSpace(r.Zone) == "" {
		missing = append(missing, ResidentKeyZone)
	}
	if !r.Sex.Valid() {
		missing = append(missing, ResidentKeySex)
	}
	return missing
}

// Record flattens the resident into an ordered record: id first when
// assigned, then the known fields in form order (optional ones only when
// non-empty), then extension fields in lexical order.
func (r Resident) Record() Record {
	var rec Record
	if r.ID != "" {
		rec.Set(ResidentKeyID, r.ID)
	}
	rec.Set(ResidentKeyFullName, r.FullName)
	setIfNotEmpty(&rec, ResidentKeyAlias, r.Alias)
	setIfNotEmpty(&rec, ResidentKeyBirthDate, r.BirthDate)
	rec.Set(ResidentKeySex, string(r.Sex))
	setIfNotEmpty(&rec, ResidentKeyNationality, r.Nationality)
	rec.Set(ResidentKeyZone, r.Zone)
	setIfNotEmpty(&rec, ResidentKeyTimeOnStreet, r.TimeOnStreet)
	setIfNotEmpty(&rec, ResidentKeyNotes, r.Notes)

	extraKeys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if _, known := residentKnownKeys[k]; !known {
			extraKeys = append(extraKeys, k)
		}
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		rec.Set(k, r.Extra[k])
	}

	return rec
}

// ResidentFromRecord is the inverse of [Resident.Record]: known keys fill the
// struct fields and everything else lands in Extra.
func ResidentFromRecord(rec Record) Resident {
	var r Resident
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		switch k {
		case ResidentKeyID:
			r.ID = v
		case ResidentKeyFullName:
			r.FullName = v
		case ResidentKeyAlias:
			r.Alias = v
		case ResidentKeyBirthDate:
			r.BirthDate = v
		case ResidentKeySex:
			r.Sex = Sex(v)
		case ResidentKeyNationality:
			r.Nationality = v
		case ResidentKeyZone:
			r.Zone = v
		case ResidentKeyTimeOnStreet:
			r.TimeOnStreet = v
		case ResidentKeyNotes:
			r.Notes = v
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[k] = v
		}
	}
	return r
}

// ResidentRecords flattens a slice of residents, preserving order.
func ResidentRecords(residents []Resident) []Record {
	records := make([]Record, 0, len(residents))
	for _, r := range residents {
		records = append(records, r.Record())
	}
	return records
}

// TableName returns the name of the database table associated with Resident.
func (r Resident) TableName() string {
	return "residents"
}

func setIfNotEmpty(rec *Record, key, value string) {
	if value != "" {
		rec.Set(key, value)
	}
}
