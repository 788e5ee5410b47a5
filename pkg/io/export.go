package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// WriteMatrix encodes a matrix as indented JSON and writes it to w.
// The output is the canonical wire format and can be re-imported with
// [ReadMatrix] for round-trip processing.
func WriteMatrix(m *pivot.Matrix, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportMatrix writes a matrix to a JSON file at path.
// This is a convenience wrapper around [WriteMatrix] for file-based output.
func ExportMatrix(m *pivot.Matrix, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteMatrix(m, f)
}
