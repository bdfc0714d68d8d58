package utils

import (
	"math"
	"testing"
)

func TestClampAndRound(t *testing.T) {
	if got := Clamp(1.4, 0, 1); got != 1 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-2, 0, 1); got != 0 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(math.NaN(), 0, 100); got != 0 {
		t.Errorf("Clamp NaN = %v, want 0", got)
	}
	if got := RoundTo(2.34567, 2); got != 2.35 {
		t.Errorf("RoundTo = %v", got)
	}
}

func TestMedianMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		median float64
		mean   float64
	}{
		{"odd", []float64{3, 1, 2}, 2, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5, 2.5},
		{"skips nan", []float64{1, math.NaN(), 5}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.median {
				t.Errorf("Median = %v, want %v", got, tt.median)
			}
			if got := Mean(tt.values); got != tt.mean {
				t.Errorf("Mean = %v, want %v", got, tt.mean)
			}
		})
	}

	if !math.IsNaN(Median(nil)) || !math.IsNaN(Mean([]float64{math.NaN()})) {
		t.Error("empty input should give NaN")
	}
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 || in[1] != 1 {
		t.Errorf("input reordered: %v", in)
	}
}

func TestMinMax(t *testing.T) {
	lo, hi, ok := MinMax([]float64{2, math.Inf(1), -1, 7})
	if !ok || lo != -1 || hi != 7 {
		t.Errorf("MinMax = %v, %v, %v", lo, hi, ok)
	}
	if _, _, ok := MinMax([]float64{math.NaN()}); ok {
		t.Error("MinMax of NaN reported ok")
	}
}

func TestPopMeanStd(t *testing.T) {
	mean, std := PopMeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9, math.NaN()})
	if mean != 5 || std != 2 {
		t.Errorf("PopMeanStd = %v, %v, want 5, 2", mean, std)
	}
	if mean, _ := PopMeanStd(nil); !math.IsNaN(mean) {
		t.Errorf("empty PopMeanStd mean = %v, want NaN", mean)
	}
}

func TestMode(t *testing.T) {
	if got := Mode([]string{"b", "a", "b", "", "a", "c"}); got != "a" {
		t.Errorf("tie Mode = %q, want a", got)
	}
	if got := Mode([]string{"x", "y", "y"}); got != "y" {
		t.Errorf("Mode = %q", got)
	}
	if got := Mode([]string{"", ""}); got != "" {
		t.Errorf("empty Mode = %q", got)
	}
}
