package circularity

import "github.com/alibaba1709/SIH-25069/internal/domain"

// Optimize moves every beneficial parameter below the global median up to it
// and every detrimental parameter above the global median down to it.
// The input row is not modified.
func (e *Engine) Optimize(row domain.Row) domain.Row {
	out := row.Clone()
	for _, p := range e.beneficial {
		if v, ok := out.Num(p); ok && v < e.stats[p].Median {
			out = out.WithNum(p, e.stats[p].Median)
		}
	}
	for _, p := range e.detrimental {
		if v, ok := out.Num(p); ok && v > e.stats[p].Median {
			out = out.WithNum(p, e.stats[p].Median)
		}
	}
	return out
}
