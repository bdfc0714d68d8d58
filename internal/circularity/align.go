package circularity

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

// Align projects an arbitrary field mapping onto the feature schema. Missing or
// unusable numeric values take the global median, missing categorical values
// the global mode. It never fails; every substitution is reported as a warning.
func (e *Engine) Align(fields map[string]any) (domain.Row, []domain.Warning) {
	var warnings []domain.Warning
	values := make([]domain.Value, e.schema.Len())

	for i, f := range e.schema.Fields() {
		raw, present := fields[f.Name]
		if f.Kind == domain.KindCategorical {
			s := ""
			if present {
				s = toCategory(raw)
			}
			if s == "" {
				s = e.modes[f.Name]
				warnings = append(warnings, domain.Warning{
					Field:   f.Name,
					Code:    domain.WarnMissingField,
					Message: fmt.Sprintf("%s not provided, using mode %q", f.Name, s),
				})
			}
			values[i] = domain.Category(s)
			continue
		}

		fill := e.stats[f.Name].Median
		if !present || raw == nil {
			warnings = append(warnings, domain.Warning{
				Field:   f.Name,
				Code:    domain.WarnMissingField,
				Message: fmt.Sprintf("%s not provided, using median %g", f.Name, fill),
			})
			values[i] = domain.Number(fill)
			continue
		}
		v, ok := ToFloat(raw)
		if !ok {
			warnings = append(warnings, domain.Warning{
				Field:   f.Name,
				Code:    domain.WarnNonNumeric,
				Message: fmt.Sprintf("%s value %v is not numeric, using median %g", f.Name, raw, fill),
			})
			values[i] = domain.Number(fill)
			continue
		}
		if r, ok := e.cfg.NumericRanges[f.Name]; ok && !r.Contains(v) {
			warnings = append(warnings, domain.Warning{
				Field:   f.Name,
				Code:    domain.WarnOutOfRange,
				Message: fmt.Sprintf("%s value %g outside expected range [%g, %g]", f.Name, v, r.Min, r.Max),
			})
		}
		values[i] = domain.Number(v)
	}

	var unknown []string
	for name := range fields {
		if !e.schema.Has(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		warnings = append(warnings, domain.Warning{
			Field:   name,
			Code:    domain.WarnUnknownField,
			Message: fmt.Sprintf("%s is not a feature column and was ignored", name),
		})
	}

	row, err := domain.NewRow(e.schema, values)
	if err != nil {
		// values are built from the schema itself
		panic(err)
	}
	return row, warnings
}

// ToFloat coerces a decoded JSON / YAML / CSV value. NaN and infinities are rejected.
func ToFloat(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = f
	case bool:
		if x {
			v = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func toCategory(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
