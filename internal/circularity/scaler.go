package circularity

import (
	"math"

	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// scaler standardizes numeric features with reference statistics. Gaps are
// imputed with the column median before centring.
type scaler struct {
	names   []string
	medians []float64
	means   []float64
	scales  []float64
}

func fitScaler(names []string, cols [][]float64, medians []float64) *scaler {
	s := &scaler{
		names:   names,
		medians: medians,
		means:   make([]float64, len(names)),
		scales:  make([]float64, len(names)),
	}
	for j, col := range cols {
		imputed := make([]float64, len(col))
		for i, v := range col {
			imputed[i] = s.impute(j, v)
		}
		mean, std := utils.PopMeanStd(imputed)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.means[j] = mean
		s.scales[j] = std
	}
	return s
}

func (s *scaler) impute(j int, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s.medians[j]
	}
	return v
}

// transform standardizes one observation given in s.names order
func (s *scaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (s.impute(j, v) - s.means[j]) / s.scales[j]
	}
	return out
}

// matrix standardizes column-major reference data into row-major observations
func (s *scaler) matrix(cols [][]float64, rows int) [][]float64 {
	out := make([][]float64, rows)
	x := make([]float64, len(cols))
	for i := 0; i < rows; i++ {
		for j := range cols {
			x[j] = cols[j][i]
		}
		out[i] = s.transform(x)
	}
	return out
}
