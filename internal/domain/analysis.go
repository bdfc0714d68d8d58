package domain

// WarningCode classifies a soft, per-row issue that was absorbed by a fallback
type WarningCode string

const (
	WarnMissingField      WarningCode = "missing_field"
	WarnNonNumeric        WarningCode = "non_numeric"
	WarnUnknownField      WarningCode = "unknown_field"
	WarnOutOfRange        WarningCode = "out_of_range"
	WarnClusterUnassigned WarningCode = "cluster_unassigned"
	WarnScoreUndefined    WarningCode = "score_undefined"
)

// Warning records that a documented fallback replaced a computed value
type Warning struct {
	Field   string      `json:"field,omitempty"`
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// Snapshot scores one of the baseline / optimized rows
type Snapshot struct {
	MCI           float64 `json:"mci"`
	Composite     float64 `json:"composite"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// IdealSnapshot scores the synthetic ideal row
type IdealSnapshot struct {
	MCI       float64 `json:"mci"`
	Composite float64 `json:"composite"`
}

// AnalysisResult is the output of one benchmark analysis. It is built fresh
// per call and never stored by the engine.
type AnalysisResult struct {
	ClusterID       *int          `json:"cluster_id"`
	Baseline        Snapshot      `json:"baseline"`
	Optimized       Snapshot      `json:"optimized"`
	Ideal           IdealSnapshot `json:"ideal"`
	Recommendations []string      `json:"recommendations"`
	AlignedInput    Row           `json:"aligned_input"`
	OptimizedInput  Row           `json:"optimized_input"`
	IdealInput      Row           `json:"ideal_input"`
	Warnings        []Warning     `json:"warnings"`
}

// Degraded reports whether any fallback was used while producing the result
func (r *AnalysisResult) Degraded() bool {
	return len(r.Warnings) > 0
}

// HasWarning reports whether a warning with the given code was recorded for field.
// An empty field matches any field.
func (r *AnalysisResult) HasWarning(code WarningCode, field string) bool {
	for _, w := range r.Warnings {
		if w.Code == code && (field == "" || w.Field == field) {
			return true
		}
	}
	return false
}
