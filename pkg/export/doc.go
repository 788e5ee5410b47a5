// Package export turns chart projections into downloadable artifacts:
// spreadsheets, paginated PDF documents, and standalone images.
//
// # Artifacts
//
// Three encoders cover the export surface:
//
//   - [Spreadsheet] writes a styled .xlsx workbook via excelize with
//     bucket-colored value cells and frozen header panes.
//   - [Document] writes a paginated PDF, tiling matrices that exceed one
//     page into row/column blocks with repeated headers and labels.
//   - [Image] writes a single PNG of the heatmap, bubble, or ranked
//     scatter view.
//
// All three honor the no-data state by emitting a "No data available"
// placeholder rather than failing.
//
// # Determinism
//
// Every embedded timestamp (sheet properties, PDF metadata, page headers)
// comes from [Options.GeneratedAt]. Exporting the same projection twice
// with the same options yields byte-identical files, which keeps artifact
// caching and golden tests honest.
//
// # Filenames
//
// [SpreadsheetName], [DocumentName], [ImageName], and [WebName] derive the
// stable download filenames, e.g. "patient_042_symptom_2024-03-01.xlsx".
// [WriteFile] persists any artifact atomically via a temp file and rename.
package export
