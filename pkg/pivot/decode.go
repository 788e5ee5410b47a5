package pivot

import (
	"encoding/json"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// wireMatrix mirrors the input contract from pivot producers:
// {rows, columns, data, maxValue?}. The pointer distinguishes an absent
// maxValue from an explicit zero.
type wireMatrix struct {
	Subject  string                    `json:"subject"`
	Category string                    `json:"category"`
	Rows     []string                  `json:"rows"`
	Columns  []string                  `json:"columns"`
	Data     map[string]map[string]int `json:"data"`
	MaxValue *int                      `json:"maxValue"`
}

// Decode parses a pivot payload and returns a verified matrix.
//
// The declared maxValue is untrusted: some producers approximate it or
// omit it entirely, so Decode always recomputes the true maximum and uses
// that. Structural violations (unknown cell references, duplicate labels,
// negative counts) are rejected with a MATRIX_INTEGRITY error; malformed
// JSON is INVALID_INPUT. The returned matrix always passes Verify.
func Decode(data []byte) (*Matrix, error) {
	var w wireMatrix
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed pivot payload")
	}

	m := &Matrix{
		Subject: w.Subject,
		Rows:    w.Rows,
		Columns: w.Columns,
		Cells:   w.Data,
	}
	if w.Category != "" {
		cat, err := ParseCategory(w.Category)
		if err != nil {
			return nil, err
		}
		m.Category = cat
	}
	if m.Cells == nil {
		m.Cells = map[string]map[string]int{}
	}

	m.MaxValue = m.TrueMax()

	if err := m.Verify(); err != nil {
		return nil, err
	}
	return m, nil
}
