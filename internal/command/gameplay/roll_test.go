package gameplay

import (
	"strings"
	"testing"
)

func TestEvalFormulaConstants(t *testing.T) {
	tests := []struct {
		formula string
		want    int
	}{
		{"7", 7},
		{"1+2", 3},
		{"10-4", 6},
		{"2*3", 6},
		{"8/2", 4},
		{"1+2*3", 7},
		{"10-6/2", 7},
		{"2*3+4*5", 26},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			_, total, err := evalFormula(tt.formula)
			if err != nil {
				t.Fatalf("evalFormula(%q): %v", tt.formula, err)
			}
			if total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}
}

func TestEvalFormulaDiceBounds(t *testing.T) {
	for i := 0; i < 20; i++ {
		_, total, err := evalFormula("3d6")
		if err != nil {
			t.Fatalf("evalFormula: %v", err)
		}
		if total < 3 || total > 18 {
			t.Fatalf("3d6 total = %d, outside [3, 18]", total)
		}
	}

	pretty, _, err := evalFormula("2d4+1")
	if err != nil {
		t.Fatalf("evalFormula: %v", err)
	}
	if !strings.Contains(pretty, "[") {
		t.Errorf("breakdown %q should list the individual rolls", pretty)
	}
}

func TestEvalFormulaErrors(t *testing.T) {
	tests := []struct {
		name    string
		formula string
	}{
		{"empty", ""},
		{"no operands", "banana"},
		{"divide by zero", "4/0"},
		{"leading multiply", "*3"},
		{"too many dice", "200d6"},
		{"too many sides", "1d2000"},
		{"one-sided die", "1d1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := evalFormula(tt.formula); err == nil {
				t.Fatalf("evalFormula(%q) should fail", tt.formula)
			}
		})
	}
}
