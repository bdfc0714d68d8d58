package circularity

import (
	"math"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

type paramRole uint8

const (
	roleNeutral paramRole = iota
	roleBeneficial
	roleDetrimental
)

// IdealRow builds the best attainable row: beneficial parameters at the
// dataset maximum, detrimental at the minimum, other numerics at the
// median and categoricals at the mode.
func (e *Engine) IdealRow() domain.Row {
	values := make([]domain.Value, e.schema.Len())
	for i, f := range e.schema.Fields() {
		if f.Kind == domain.KindCategorical {
			values[i] = domain.Category(e.modes[f.Name])
			continue
		}
		st := e.stats[f.Name]
		switch e.roles[f.Name] {
		case roleBeneficial:
			values[i] = domain.Number(st.Max)
		case roleDetrimental:
			values[i] = domain.Number(st.Min)
		default:
			values[i] = domain.Number(st.Median)
		}
	}
	row, err := domain.NewRow(e.schema, values)
	if err != nil {
		panic(err)
	}
	return row
}

// Composite scores how close row is to ideal, in [0, 1]. Each numeric column
// contributes one term; the composite is their mean.
func (e *Engine) Composite(row, ideal domain.Row) float64 {
	var sum float64
	var n int
	for _, name := range e.schema.NumericNames() {
		v, ok := row.Num(name)
		if !ok {
			continue
		}
		iv, _ := ideal.Num(name)
		sum += e.term(name, v, iv)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (e *Engine) term(name string, v, ideal float64) float64 {
	var s float64
	switch e.roles[name] {
	case roleBeneficial:
		if ideal > 0 {
			s = math.Min(1, v/ideal)
		}
	case roleDetrimental:
		if v > 0 {
			s = math.Min(1, ideal/v)
		}
	default:
		st := e.stats[name]
		s = 1 - math.Min(1, math.Abs(v-st.Median)/st.Range())
	}
	if s < 0 || math.IsNaN(s) {
		return 0
	}
	return s
}
