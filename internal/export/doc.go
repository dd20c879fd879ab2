// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package export turns heterogeneous records into downloadable artifacts.
//
// Records may carry different field sets; every artifact uses the union of
// their field names in first-seen order ([Columns]). [RecordsToCSV] renders
// the comma separated text the reports screen saves, [RecordsToXLSX] renders
// the same table as a spreadsheet for server-side downloads, and [FileSaver]
// writes finished artifacts into the export directory.
package export
