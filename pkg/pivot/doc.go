// Package pivot defines the normalized item×date occurrence matrix that
// every visualization and export consumes.
//
// A pivot matrix has rows (clinical items: symptoms, diagnoses, diagnostic
// categories, or HRSN indicators), columns (dates of service in their
// original string form), and a sparse cell map of non-negative occurrence
// counts. Absent cells mean zero. The matrix also carries the matrix-wide
// maximum cell value used for relative scaling.
//
// # Trust Boundary
//
// Matrices arrive from external collaborators (a pivot API, files, or a
// document store) and are not trusted: Decode recomputes the true maximum
// and rejects structural violations, and Verify enforces the full set of
// integrity invariants before any rendering proceeds. A matrix that passes
// Verify is safe for every downstream component.
//
// # Lifecycle
//
// A matrix is fetched fresh per (subject, category) selection and treated
// as immutable for the duration of a render. Everything derived from it
// (rankings, buckets, page blocks) is recomputed per render request; no
// component of this package caches.
package pivot
