// Package io provides JSON import and export for pivot matrices.
//
// # Overview
//
// This package reads and writes the pivot matrix wire format produced by the
// extraction backends. The format is designed for:
//
//   - Hand-off between upstream extraction and the visualization engine
//   - Archiving fetched matrices alongside their exported artifacts
//   - Round-trip preservation: fetch, export, re-import, and render identically
//
// # JSON Format
//
// The format is a single JSON object with label arrays and a sparse cell map:
//
//	{
//	  "subject": "patient-042",
//	  "category": "symptom",
//	  "rows": ["Headache", "Nausea"],
//	  "columns": ["01/15/24", "01/16/24"],
//	  "data": {
//	    "Headache": {"01/15/24": 5},
//	    "Nausea": {"01/15/24": 1, "01/16/24": 3}
//	  },
//	  "maxValue": 5
//	}
//
// Required:
//   - rows, columns: label arrays in display order
//   - data: row → column → count; absent cells mean zero
//
// Optional:
//   - subject, category: provenance carried into chart titles and file names
//   - maxValue: declared maximum; recomputed on import when absent or inconsistent
//
// # Import
//
// Use [ImportMatrix] to read a matrix from a file path, or [ReadMatrix] to
// read from any io.Reader:
//
//	m, err := io.ImportMatrix("matrix.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the payload the way the fetch stage does: cells
// must reference declared labels, counts must be non-negative, and the
// declared maxValue is treated as untrusted input. Structural violations are
// rejected with a MATRIX_INTEGRITY error; malformed JSON is INVALID_INPUT.
//
// # Export
//
// Use [ExportMatrix] to write a matrix to a file, or [WriteMatrix] to write
// to any io.Writer:
//
//	err := io.ExportMatrix(m, "matrix.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The output is the indented canonical wire format and re-imports
// identically: labels keep their order, cells keep their counts, and the
// written maxValue matches the true maximum.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same matrix, but not with concurrent modifications. The
// [ReadMatrix] and [ImportMatrix] functions return independent matrices
// that can be used and modified freely after import.
package io
