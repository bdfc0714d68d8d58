package utils

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Clamp limits a value between min and max. NaN clamps to min.
func Clamp(value, min, max float64) float64 {
	if value < min || math.IsNaN(value) {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Finite drops NaN and infinite entries, preserving order.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Median returns the median of the finite values, or NaN when there are none.
// The even case averages the two middle values.
func Median(values []float64) float64 {
	vals := Finite(values)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return stat.Mean(vals[mid-1:mid+1], nil)
}

// Mean returns the arithmetic mean of the finite values, or NaN when there are none.
func Mean(values []float64) float64 {
	vals := Finite(values)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// PopMeanStd returns the mean and population standard deviation of the finite values
func PopMeanStd(values []float64) (mean, std float64) {
	vals := Finite(values)
	if len(vals) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.PopMeanStdDev(vals, nil)
}

// MinMax returns the smallest and largest finite values.
// ok is false when values holds nothing finite.
func MinMax(values []float64) (min, max float64, ok bool) {
	vals := Finite(values)
	if len(vals) == 0 {
		return 0, 0, false
	}
	return floats.Min(vals), floats.Max(vals), true
}

// Mode returns the most frequent non-empty string. Ties resolve to the
// lexicographically smallest value; "" when there is nothing to count.
func Mode(values []string) string {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}
