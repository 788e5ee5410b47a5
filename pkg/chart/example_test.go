package chart_test

import (
	"fmt"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/pivot"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

func ExampleNew() {
	m := &pivot.Matrix{
		Rows:    []string{"Cough", "Fever"},
		Columns: []string{"01/02/24", "01/01/24"},
		Cells: map[string]map[string]int{
			"Cough": {"01/01/24": 3, "01/02/24": 1},
			"Fever": {"01/02/24": 2},
		},
		MaxValue: 3,
	}

	p, err := chart.New(m, scale.Default())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("columns:", p.Columns())
	for _, row := range p.Ranked() {
		fmt.Println(row.Label())
	}
	fmt.Println("bubbles:", len(p.BubblePoints()))
	// Output:
	// columns: [01/01/24 01/02/24]
	// 1. Cough (4)
	// 2. Fever (2)
	// bubbles: 3
}
