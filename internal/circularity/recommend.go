package circularity

import (
	"fmt"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// Recommend compares row against its peer cluster means, or the global means
// when clusterID is nil or unknown. Detrimental parameters above the benchmark
// come first, then beneficial parameters below it, each in configured order.
// A parameter the cluster has no mean for is skipped.
func (e *Engine) Recommend(row domain.Row, clusterID *int) []string {
	bench := e.globalMean
	if clusterID != nil {
		if cs, ok := e.clusters[*clusterID]; ok {
			bench = func(p string) (float64, bool) {
				m, ok := cs.means[p]
				return m, ok
			}
		}
	}

	recs := []string{}
	for _, p := range e.detrimental {
		v, ok := row.Num(p)
		m, known := bench(p)
		if ok && known && v > m {
			recs = append(recs, e.message(p, "above"))
		}
	}
	for _, p := range e.beneficial {
		v, ok := row.Num(p)
		m, known := bench(p)
		if ok && known && v < m {
			recs = append(recs, e.message(p, "below"))
		}
	}
	return recs
}

func (e *Engine) globalMean(p string) (float64, bool) {
	st, ok := e.stats[p]
	return st.Mean, ok
}

func (e *Engine) message(param, side string) string {
	if t, ok := e.cfg.Templates[param]; ok && t != "" {
		return t
	}
	return fmt.Sprintf("%s: %s peer average.", param, side)
}
