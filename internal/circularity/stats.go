package circularity

import (
	"math"

	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// columnStats are the dataset-wide fill and scoring statistics of one numeric column
type columnStats struct {
	Median float64
	Mean   float64
	Min    float64
	Max    float64
}

// Range returns max - min, or 1 when the column is constant
func (s columnStats) Range() float64 {
	r := s.Max - s.Min
	if r == 0 {
		return 1
	}
	return r
}

func computeStats(values []float64) columnStats {
	med := utils.Median(values)
	if math.IsNaN(med) {
		return columnStats{}
	}
	lo, hi, _ := utils.MinMax(values)
	return columnStats{
		Median: med,
		Mean:   utils.Mean(values),
		Min:    lo,
		Max:    hi,
	}
}

// clusterStats holds the benchmark values of one peer cluster
type clusterStats struct {
	count   int
	means   map[string]float64
	medians map[string]float64
}

func computeClusterStats(ds *Dataset, labels []int, k int) map[int]clusterStats {
	members := make([][]int, k)
	for i, l := range labels {
		members[l] = append(members[l], i)
	}
	out := make(map[int]clusterStats, k)
	for id, rows := range members {
		if len(rows) == 0 {
			continue
		}
		cs := clusterStats{
			count:   len(rows),
			means:   make(map[string]float64),
			medians: make(map[string]float64),
		}
		buf := make([]float64, len(rows))
		for _, col := range ds.Columns() {
			if col.Kind != domain.KindNumeric {
				continue
			}
			for j, r := range rows {
				buf[j] = col.Num[r]
			}
			m := utils.Mean(buf)
			if math.IsNaN(m) {
				continue
			}
			cs.means[col.Name] = m
			cs.medians[col.Name] = utils.Median(buf)
		}
		out[id] = cs
	}
	return out
}
