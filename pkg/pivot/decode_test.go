package pivot

import (
	"testing"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

func TestDecode(t *testing.T) {
	payload := []byte(`{
		"rows": ["A", "B"],
		"columns": ["01/01/24", "01/02/24"],
		"data": {
			"A": {"01/01/24": 5, "01/02/24": 0},
			"B": {"01/01/24": 1, "01/02/24": 3}
		},
		"maxValue": 5
	}`)

	m, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	if len(m.Rows) != 2 || m.Rows[0] != "A" || m.Rows[1] != "B" {
		t.Errorf("Rows = %v, want [A B]", m.Rows)
	}
	if len(m.Columns) != 2 {
		t.Errorf("Columns = %v, want 2 entries", m.Columns)
	}
	if m.MaxValue != 5 {
		t.Errorf("MaxValue = %d, want 5", m.MaxValue)
	}
	if got := m.Value("B", "01/02/24"); got != 3 {
		t.Errorf("Value(B, 01/02/24) = %d, want 3", got)
	}
	if err := m.Verify(); err != nil {
		t.Errorf("decoded matrix fails Verify: %v", err)
	}
}

func TestDecodeRecomputesMaxValue(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		m, err := Decode([]byte(`{
			"rows": ["A"],
			"columns": ["01/01/24"],
			"data": {"A": {"01/01/24": 7}}
		}`))
		if err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if m.MaxValue != 7 {
			t.Errorf("MaxValue = %d, want recomputed 7", m.MaxValue)
		}
	})

	t.Run("understated", func(t *testing.T) {
		m, err := Decode([]byte(`{
			"rows": ["A"],
			"columns": ["01/01/24"],
			"data": {"A": {"01/01/24": 7}},
			"maxValue": 2
		}`))
		if err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if m.MaxValue != 7 {
			t.Errorf("MaxValue = %d, want recomputed 7", m.MaxValue)
		}
	})

	t.Run("overstated", func(t *testing.T) {
		m, err := Decode([]byte(`{
			"rows": ["A"],
			"columns": ["01/01/24"],
			"data": {"A": {"01/01/24": 7}},
			"maxValue": 99
		}`))
		if err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if m.MaxValue != 7 {
			t.Errorf("MaxValue = %d, want recomputed 7", m.MaxValue)
		}
	})
}

func TestDecodeSubjectAndCategory(t *testing.T) {
	m, err := Decode([]byte(`{
		"subject": "patient-042",
		"category": "Symptoms",
		"rows": ["Cough"],
		"columns": ["01/01/24"],
		"data": {"Cough": {"01/01/24": 2}}
	}`))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if m.Subject != "patient-042" {
		t.Errorf("Subject = %q, want patient-042", m.Subject)
	}
	if m.Category != CategorySymptom {
		t.Errorf("Category = %v, want %v", m.Category, CategorySymptom)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		code    errors.Code
	}{
		{
			"malformed json",
			`{"rows": [`,
			errors.ErrCodeInvalidInput,
		},
		{
			"negative count",
			`{"rows":["A"],"columns":["01/01/24"],"data":{"A":{"01/01/24":-3}}}`,
			errors.ErrCodeMatrixIntegrity,
		},
		{
			"undeclared row",
			`{"rows":["A"],"columns":["01/01/24"],"data":{"B":{"01/01/24":1}}}`,
			errors.ErrCodeMatrixIntegrity,
		},
		{
			"undeclared column",
			`{"rows":["A"],"columns":["01/01/24"],"data":{"A":{"02/01/24":1}}}`,
			errors.ErrCodeMatrixIntegrity,
		},
		{
			"duplicate row label",
			`{"rows":["A","A"],"columns":["01/01/24"],"data":{}}`,
			errors.ErrCodeMatrixIntegrity,
		},
		{
			"unknown category",
			`{"category":"vitals","rows":["A"],"columns":["01/01/24"],"data":{}}`,
			errors.ErrCodeInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			if err == nil {
				t.Fatal("Decode() expected error, got nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestDecodeEmptyMatrix(t *testing.T) {
	// Zero rows/columns is the defined no-data state, not a decode error.
	m, err := Decode([]byte(`{"rows":[],"columns":[],"data":{}}`))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if !m.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
	if m.MaxValue != 0 {
		t.Errorf("MaxValue = %d, want 0", m.MaxValue)
	}
}
