package export

import (
	"mime"
	"strings"
	"time"
)

const (
	residentsFilenamePrefix = "habitantes_"
	defaultReportFilename   = "reporte"
)

// SanitizeFilename replaces every character outside [a-zA-Z0-9_.-] with an
// underscore, one for one.
//
//	SanitizeFilename("Reporte #1/2024") // "Reporte__1_2024"
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
}

// ResidentsFilename names the resident export taken at now, e.g.
// "habitantes_2024-05-01T10-20-30.123Z.csv". Colons of the timestamp become
// dashes.
func ResidentsFilename(now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return residentsFilenamePrefix + strings.ReplaceAll(stamp, ":", "-") + ".csv"
}

// ReportFilename names the CSV export of a report titled title.
func ReportFilename(title string) string {
	return DownloadFilename(title, "csv")
}

// DownloadFilename names a server-rendered report download.
func DownloadFilename(title, extension string) string {
	if strings.TrimSpace(title) == "" {
		title = defaultReportFilename
	}
	return SanitizeFilename(title) + "." + extension
}

// ExtensionFromContentType picks a file extension for a downloaded blob:
// pdf, csv, json or xlsx when the media type names one of them, bin
// otherwise.
func ExtensionFromContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case strings.Contains(mediaType, "pdf"):
		return "pdf"
	case strings.Contains(mediaType, "csv"):
		return "csv"
	case strings.Contains(mediaType, "json"):
		return "json"
	case strings.Contains(mediaType, "spreadsheetml"):
		return "xlsx"
	}
	return "bin"
}
