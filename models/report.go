package models

// ReportKind selects how the rows of a report are produced.
type ReportKind string

const (
	// ReportKindResidents lists every resident document.
	ReportKindResidents ReportKind = "residents"
	// ReportKindResidentsByZone counts residents per zone.
	ReportKindResidentsByZone ReportKind = "residents_by_zone"
)

// Report describes a downloadable report. Rows is optional: when absent the
// client fetches it lazily by ID.
type Report struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt ReportTime `json:"createdAt"`
	Kind      ReportKind `json:"-"`
	Rows      []Record   `json:"rows,omitempty"`
}

// TableName returns the name of the database table associated with Report.
func (r Report) TableName() string {
	return "reports"
}

// ReportDetail is the body of GET /api/reports?id=.
type ReportDetail struct {
	Rows []Record `json:"rows"`
}

// Item is an entry of the generic items collection.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TableName returns the name of the database table associated with Item.
func (i Item) TableName() string {
	return "items"
}

// Report download formats.
const (
	ReportFormatCSV  = "csv"
	ReportFormatJSON = "json"
	ReportFormatXLSX = "xlsx"
)

// ReportQuery is the parsed query of GET /api/reports?id= and
// GET /api/reports/download?id=&format=.
type ReportQuery struct {
	ID     string
	Format string
}

// RenderedReport is a report ready to be sent as a download.
type RenderedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportResult describes a finished client-side export. Empty is set when
// there were no rows and therefore no file was written.
type ExportResult struct {
	Path  string
	Rows  int
	Empty bool
}
