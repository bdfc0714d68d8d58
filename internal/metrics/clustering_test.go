package metrics

import (
	"math"
	"testing"
)

func TestAdjustedRandIndex(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want float64
	}{
		{"identical", []int{0, 0, 1, 1, 2, 2}, []int{0, 0, 1, 1, 2, 2}, 1},
		{"relabelled", []int{0, 0, 1, 1, 2, 2}, []int{5, 5, 3, 3, 9, 9}, 1},
		{"length mismatch", []int{0, 1}, []int{0}, 0},
		{"single point", []int{0}, []int{0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustedRandIndex(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AdjustedRandIndex = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjustedRandIndex_Dissimilar(t *testing.T) {
	ari := AdjustedRandIndex([]int{0, 0, 0, 1, 1, 1}, []int{0, 1, 0, 1, 0, 1})
	if ari > 0.5 {
		t.Errorf("AdjustedRandIndex = %v, want near 0 for unrelated partitions", ari)
	}
}

func TestVariationOfInformation(t *testing.T) {
	if vi := VariationOfInformation([]int{0, 0, 1, 1}, []int{1, 1, 0, 0}); vi > 1e-9 {
		t.Errorf("VariationOfInformation = %v, want 0 for relabelled partitions", vi)
	}
	// two independent balanced splits: H(A|B) = H(B|A) = 1 bit
	vi := VariationOfInformation([]int{0, 0, 1, 1}, []int{0, 1, 0, 1})
	if math.Abs(vi-2) > 1e-9 {
		t.Errorf("VariationOfInformation = %v, want 2", vi)
	}
}
