package source

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/clinigrid/clinigrid/pkg/errors"
	"github.com/clinigrid/clinigrid/pkg/pivot"
)

// TestMongoSource runs against a real MongoDB when CLINIGRID_MONGO_URI is
// set, e.g. mongodb://localhost:27017.
func TestMongoSource(t *testing.T) {
	uri := os.Getenv("CLINIGRID_MONGO_URI")
	if uri == "" {
		t.Skip("CLINIGRID_MONGO_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoSource(ctx, uri, "clinigrid_test")
	if err != nil {
		t.Fatalf("NewMongoSource() error: %v", err)
	}
	defer s.Close(ctx)

	// Seed two documents so Fetch must pick the newest.
	if err := s.coll.Drop(ctx); err != nil {
		t.Fatalf("drop collection: %v", err)
	}
	stale := pivotDocument{
		Subject:   "patient-042",
		Category:  "symptom",
		FetchedAt: time.Now().Add(-time.Hour),
		Matrix: &pivot.Matrix{
			Rows:     []string{"Cough"},
			Columns:  []string{"01/01/24"},
			Cells:    map[string]map[string]int{"Cough": {"01/01/24": 1}},
			MaxValue: 1,
		},
	}
	fresh := pivotDocument{
		Subject:   "patient-042",
		Category:  "symptom",
		FetchedAt: time.Now(),
		Matrix: &pivot.Matrix{
			Rows:     []string{"Cough"},
			Columns:  []string{"01/01/24"},
			Cells:    map[string]map[string]int{"Cough": {"01/01/24": 7}},
			MaxValue: 7,
		},
	}
	for _, doc := range []pivotDocument{stale, fresh} {
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			t.Fatalf("insert fixture: %v", err)
		}
	}

	m, err := s.Fetch(ctx, Ref{Subject: "patient-042", Category: pivot.CategorySymptom})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got := m.Value("Cough", "01/01/24"); got != 7 {
		t.Errorf("Value = %d, want 7 from the newest document", got)
	}

	_, err = s.Fetch(ctx, Ref{Subject: "nobody", Category: pivot.CategorySymptom})
	if !errors.Is(err, errors.ErrCodePivotNotFound) {
		t.Errorf("missing subject code = %v, want PIVOT_NOT_FOUND", errors.GetCode(err))
	}
}
