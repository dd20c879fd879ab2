package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// reportTimeLayouts are tried in order when decoding a report timestamp.
var reportTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ReportTime is the creation time of a report as published by the reports
// endpoint. Values that match none of the known layouts are kept in Raw and
// leave Time zero, so one odd entry does not fail the whole listing.
type ReportTime struct {
	time.Time
	Raw string
}

// NewReportTime wraps t.
func NewReportTime(t time.Time) ReportTime {
	return ReportTime{Time: t}
}

// ParseReportTime never fails: unknown layouts end up in Raw.
func ParseReportTime(s string) ReportTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return ReportTime{}
	}
	for _, layout := range reportTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ReportTime{Time: t, Raw: s}
		}
	}
	return ReportTime{Raw: s}
}

func (t *ReportTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ReportTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// epoch millis
		var ms int64
		if numErr := json.Unmarshal(data, &ms); numErr != nil {
			*t = ReportTime{Raw: string(data)}
			return nil
		}
		*t = ReportTime{Time: time.UnixMilli(ms).UTC(), Raw: string(data)}
		return nil
	}
	*t = ParseReportTime(s)
	return nil
}

func (t ReportTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() && t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return t.Time.MarshalJSON()
}

// Scan implements sql.Scanner.
func (t *ReportTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ReportTime{}
	case time.Time:
		*t = ReportTime{Time: v}
	case string:
		*t = ParseReportTime(v)
	case []byte:
		*t = ParseReportTime(string(v))
	default:
		return fmt.Errorf("report time: unsupported type %T", src)
	}
	return nil
}

// String is the display form: the parsed time, or Raw when unparsed.
func (t ReportTime) String() string {
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.Time.Format(time.RFC3339)
}
