package io

import (
	"fmt"
	"io"
	"os"

	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// ReadMatrix decodes a pivot matrix from r.
//
// The input must be a JSON object in the wire format described in the
// package documentation. ReadMatrix returns an error if:
//   - The JSON is malformed
//   - Cells reference a row or column that is not declared
//   - A label is declared twice
//   - A cell count is negative
//
// The declared maxValue is untrusted and recomputed from the cells, so a
// producer that approximates or omits it still imports cleanly.
//
// The returned matrix is independent of r and can be modified safely after
// ReadMatrix returns. ReadMatrix does not close r.
func ReadMatrix(r io.Reader) (*pivot.Matrix, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return pivot.Decode(data)
}

// ImportMatrix reads a JSON file at path and returns the decoded matrix.
//
// ImportMatrix opens the file, decodes it using [ReadMatrix], and closes
// the file. If the file cannot be opened the error wraps the underlying
// cause with the file path for context.
//
// ImportMatrix returns the same validation errors as [ReadMatrix] for
// malformed payloads or integrity violations.
func ImportMatrix(path string) (*pivot.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMatrix(f)
}
