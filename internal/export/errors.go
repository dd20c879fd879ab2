package export

import "fmt"

// ExportError reports a failure to produce or save an artifact.
type ExportError struct {
	// Op is the step that failed, e.g. "render" or "save".
	Op string
	// Name is the artifact file name, when known.
	Name string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("export %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("export %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ReportingUnavailable reports that the optional reporting endpoint could
// not be reached or answered with a non-success status. Callers listing
// reports absorb it.
type ReportingUnavailable struct {
	Err error
}

func (e *ReportingUnavailable) Error() string {
	return fmt.Sprintf("reporting endpoint unavailable: %v", e.Err)
}

func (e *ReportingUnavailable) Unwrap() error {
	return e.Err
}
