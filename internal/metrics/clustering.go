package metrics

import "math"

// contingency is the cross-tabulation of two labelings of the same points
type contingency struct {
	n     int
	cells [][]int
	rows  []int
	cols  []int
}

func newContingency(a, b []int) contingency {
	ai, bi := indexLabels(a), indexLabels(b)
	c := contingency{
		n:     len(a),
		cells: make([][]int, len(ai)),
		rows:  make([]int, len(ai)),
		cols:  make([]int, len(bi)),
	}
	for i := range c.cells {
		c.cells[i] = make([]int, len(bi))
	}
	for k := range a {
		i, j := ai[a[k]], bi[b[k]]
		c.cells[i][j]++
		c.rows[i]++
		c.cols[j]++
	}
	return c
}

// AdjustedRandIndex measures agreement between two partitions of the same points,
// corrected for chance. 1 means identical partitions, around 0 means unrelated ones.
// Mismatched lengths or fewer than two points score 0.
func AdjustedRandIndex(a, b []int) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return 0
	}
	c := newContingency(a, b)

	var sumCells, sumRows, sumCols float64
	for i := range c.cells {
		for _, n := range c.cells[i] {
			sumCells += pairs(n)
		}
	}
	for _, n := range c.rows {
		sumRows += pairs(n)
	}
	for _, n := range c.cols {
		sumCols += pairs(n)
	}

	expected := sumRows * sumCols / pairs(c.n)
	max := (sumRows + sumCols) / 2
	den := max - expected
	if math.Abs(den) < 1e-12 {
		return 1
	}
	return (sumCells - expected) / den
}

// VariationOfInformation is the information distance H(A|B) + H(B|A) in bits.
// 0 means identical partitions; larger is further apart.
func VariationOfInformation(a, b []int) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return 0
	}
	c := newContingency(a, b)
	n := float64(c.n)

	var vi float64
	for i := range c.cells {
		for j, nij := range c.cells[i] {
			if nij == 0 {
				continue
			}
			p := float64(nij) / n
			vi -= p * math.Log2(float64(nij)/float64(c.cols[j]))
			vi -= p * math.Log2(float64(nij)/float64(c.rows[i]))
		}
	}
	return vi
}

func pairs(n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(n) * float64(n-1) / 2
}

// indexLabels maps each distinct label to a dense index in first-seen order
func indexLabels(labels []int) map[int]int {
	idx := make(map[int]int)
	for _, l := range labels {
		if _, ok := idx[l]; !ok {
			idx[l] = len(idx)
		}
	}
	return idx
}
