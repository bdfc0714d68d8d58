package circularity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/internal/metrics"
	"github.com/alibaba1709/SIH-25069/internal/platform/logger"
	"github.com/alibaba1709/SIH-25069/pkg/utils"
)

// Engine benchmarks feature rows against a clustered reference dataset.
//
// Construction through New is a one-time setup step. Afterwards the engine is
// read-only and Analyze may be called from any number of goroutines.
type Engine struct {
	cfg    Config
	ds     *Dataset
	schema *domain.Schema
	log    *logger.Logger

	stats map[string]columnStats
	modes map[string]string
	roles map[string]paramRole

	beneficial  []string
	detrimental []string

	scaler    *scaler
	centroids [][]float64
	labels    []int
	clusters  map[int]clusterStats
	diag      Diagnostics
}

// Option customizes engine construction
type Option func(*Engine)

// WithLogger routes initialization messages to l
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// ClusterBenchmark is the published summary of one peer cluster
type ClusterBenchmark struct {
	ID      int                `json:"id"`
	Count   int                `json:"count"`
	Means   map[string]float64 `json:"means"`
	Medians map[string]float64 `json:"medians"`
}

// Diagnostics describes the clustering chosen at initialization
type Diagnostics struct {
	ClusterCount int     `json:"cluster_count"`
	Inertia      float64 `json:"inertia"`
	Iterations   int     `json:"iterations"`
	Sizes        []int   `json:"sizes"`
	// RestartStability is the adjusted Rand index between the best and the
	// runner-up restart; nil with a single restart.
	RestartStability *float64 `json:"restart_stability"`
	// RestartDistance is the variation of information in bits between the
	// same two restarts; 0 means identical partitions.
	RestartDistance *float64 `json:"restart_distance"`
	NumericFeatures []string `json:"numeric_features"`
}

// MaterialSummary aggregates the reference rows of one material
type MaterialSummary struct {
	Rows    int      `json:"rows"`
	MeanMCI *float64 `json:"mean_mci"`
}

// NewFromCSV loads the reference dataset from path and builds an engine
func NewFromCSV(path string, cfg Config, opts ...Option) (*Engine, error) {
	ds, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return New(ds, cfg, opts...)
}

// New fits the engine to a reference dataset
func New(ds *Dataset, cfg Config, opts ...Option) (*Engine, error) {
	if ds == nil {
		return nil, &DataLoadError{Reason: "no dataset"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds.Rows() == 0 {
		return nil, &DataLoadError{Reason: "no data rows"}
	}
	if cfg.ClusterCount > ds.Rows() {
		return nil, &ConfigurationError{
			Field:  "cluster_count",
			Value:  cfg.ClusterCount,
			Reason: fmt.Sprintf("exceeds the %d reference rows", ds.Rows()),
		}
	}

	e := &Engine{
		cfg:   cfg,
		ds:    ds,
		log:   logger.Nop(),
		stats: make(map[string]columnStats),
		modes: make(map[string]string),
		roles: make(map[string]paramRole),
	}
	for _, opt := range opts {
		opt(e)
	}

	targets := make(map[string]bool, len(cfg.Targets))
	foundTarget := false
	for _, t := range cfg.Targets {
		targets[t] = true
		if _, ok := ds.Column(t); ok {
			foundTarget = true
		}
	}
	if !foundTarget {
		return nil, &DataLoadError{Reason: fmt.Sprintf("none of the target columns %v is present", cfg.Targets)}
	}

	var fields []domain.Field
	for _, col := range ds.Columns() {
		switch col.Kind {
		case domain.KindNumeric:
			st := computeStats(col.Num)
			if len(utils.Finite(col.Num)) == 0 {
				e.log.Warn("numeric column has no values, filling with 0", "column", col.Name)
			}
			e.stats[col.Name] = st
		case domain.KindCategorical:
			e.modes[col.Name] = utils.Mode(col.Str)
		}
		if targets[col.Name] || col.Name == cfg.ClusterColumn {
			continue
		}
		fields = append(fields, domain.Field{Name: col.Name, Kind: col.Kind})
	}
	schema, err := domain.NewSchema(fields)
	if err != nil {
		return nil, &DataLoadError{Reason: "invalid feature schema", Err: err}
	}
	e.schema = schema

	numeric := schema.NumericNames()
	if len(numeric) == 0 {
		return nil, &DataLoadError{Reason: "feature schema has no numeric column"}
	}

	e.beneficial = e.classify(cfg.Beneficial, roleBeneficial)
	e.detrimental = e.classify(cfg.Detrimental, roleDetrimental)

	cols := make([][]float64, len(numeric))
	medians := make([]float64, len(numeric))
	for j, name := range numeric {
		col, _ := ds.Column(name)
		cols[j] = col.Num
		medians[j] = e.stats[name].Median
	}
	e.scaler = fitScaler(numeric, cols, medians)

	res := kmeans(e.scaler.matrix(cols, ds.Rows()), kmeansParams{
		K:         cfg.ClusterCount,
		Seed:      cfg.Seed,
		NInit:     cfg.NInit,
		MaxIter:   cfg.MaxIter,
		Tolerance: cfg.Tolerance,
	})
	e.centroids = res.Centroids
	e.labels = res.Labels
	e.clusters = computeClusterStats(ds, res.Labels, cfg.ClusterCount)

	sizes := make([]int, cfg.ClusterCount)
	for _, l := range res.Labels {
		sizes[l]++
	}
	e.diag = Diagnostics{
		ClusterCount:    cfg.ClusterCount,
		Inertia:         res.Inertia,
		Iterations:      res.Iterations,
		Sizes:           sizes,
		NumericFeatures: numeric,
	}
	if res.RunnerUp != nil {
		ari := metrics.AdjustedRandIndex(res.Labels, res.RunnerUp)
		vi := metrics.VariationOfInformation(res.Labels, res.RunnerUp)
		e.diag.RestartStability = &ari
		e.diag.RestartDistance = &vi
	}

	e.log.Info("circularity engine ready",
		"rows", ds.Rows(),
		"features", schema.Len(),
		"numeric", len(numeric),
		"clusters", cfg.ClusterCount,
		"inertia", res.Inertia,
	)
	return e, nil
}

func (e *Engine) classify(params []string, role paramRole) []string {
	var out []string
	for _, p := range params {
		i, ok := e.schema.Lookup(p)
		if !ok || e.schema.Field(i).Kind != domain.KindNumeric {
			e.log.Debug("configured parameter is not a numeric feature, ignoring", "param", p)
			continue
		}
		e.roles[p] = role
		out = append(out, p)
	}
	return out
}

// Schema returns the feature schema every row is aligned to
func (e *Engine) Schema() *domain.Schema { return e.schema }

// Config returns the settings the engine was built with
func (e *Engine) Config() Config { return e.cfg }

// Rows returns the number of reference records
func (e *Engine) Rows() int { return e.ds.Rows() }

// FillValues returns the value Align substitutes for each missing feature
func (e *Engine) FillValues() map[string]any {
	out := make(map[string]any, e.schema.Len())
	for _, f := range e.schema.Fields() {
		if f.Kind == domain.KindNumeric {
			out[f.Name] = e.stats[f.Name].Median
		} else {
			out[f.Name] = e.modes[f.Name]
		}
	}
	return out
}

// Categories returns the distinct non-empty values of a categorical feature, sorted
func (e *Engine) Categories(name string) []string {
	col, ok := e.ds.Column(name)
	if !ok || col.Kind != domain.KindCategorical {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range col.Str {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// MaterialColumn returns the first categorical feature whose name mentions a metal or material
func (e *Engine) MaterialColumn() (string, bool) {
	for _, name := range e.schema.CategoricalNames() {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "metal") || strings.Contains(lower, "material") {
			return name, true
		}
	}
	return "", false
}

// MaterialSummaries groups reference rows by material and averages the first
// MCI target column found.
func (e *Engine) MaterialSummaries() map[string]MaterialSummary {
	name, ok := e.MaterialColumn()
	if !ok {
		return nil
	}
	col, _ := e.ds.Column(name)

	var mci []float64
	for _, t := range []string{"MCI_percent", "MCI"} {
		if c, ok := e.ds.Column(t); ok && c.Kind == domain.KindNumeric {
			mci = c.Num
			break
		}
	}

	groups := make(map[string][]float64)
	counts := make(map[string]int)
	for i, m := range col.Str {
		if m == "" {
			continue
		}
		counts[m]++
		if mci != nil {
			groups[m] = append(groups[m], mci[i])
		}
	}
	out := make(map[string]MaterialSummary, len(counts))
	for m, n := range counts {
		s := MaterialSummary{Rows: n}
		if mean := utils.Mean(groups[m]); !math.IsNaN(mean) {
			mean = utils.RoundTo(mean, 2)
			s.MeanMCI = &mean
		}
		out[m] = s
	}
	return out
}

// AssignCluster returns the nearest peer cluster of an aligned row, using the
// scaler and centroids fitted at initialization.
func (e *Engine) AssignCluster(row domain.Row) (int, error) {
	if row.Schema() != e.schema {
		return 0, errors.New("circularity: row is not aligned to the engine schema")
	}
	x := make([]float64, len(e.scaler.names))
	for j, name := range e.scaler.names {
		v, ok := row.Num(name)
		if !ok {
			return 0, fmt.Errorf("circularity: row has no numeric %q", name)
		}
		x[j] = v
	}
	c, _ := nearest(e.scaler.transform(x), e.centroids)
	return c, nil
}

// Labels returns the cluster id of every reference row
func (e *Engine) Labels() []int {
	out := make([]int, len(e.labels))
	copy(out, e.labels)
	return out
}

// Clusters returns the benchmark of every non-empty cluster ordered by id
func (e *Engine) Clusters() []ClusterBenchmark {
	ids := make([]int, 0, len(e.clusters))
	for id := range e.clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]ClusterBenchmark, 0, len(ids))
	for _, id := range ids {
		cs := e.clusters[id]
		b := ClusterBenchmark{
			ID:      id,
			Count:   cs.count,
			Means:   make(map[string]float64, len(cs.means)),
			Medians: make(map[string]float64, len(cs.medians)),
		}
		for k, v := range cs.means {
			b.Means[k] = v
		}
		for k, v := range cs.medians {
			b.Medians[k] = v
		}
		out = append(out, b)
	}
	return out
}

// Diagnostics reports how the clustering was fitted
func (e *Engine) Diagnostics() Diagnostics {
	d := e.diag
	d.Sizes = append([]int(nil), e.diag.Sizes...)
	d.NumericFeatures = append([]string(nil), e.diag.NumericFeatures...)
	return d
}

// Analyze aligns a user submission and scores it against the ideal row and
// its peer cluster. It only fails on an engine that was never initialized;
// every per-row problem is absorbed and reported in the result's warnings.
func (e *Engine) Analyze(fields map[string]any) (*domain.AnalysisResult, error) {
	if e == nil || e.schema == nil {
		return nil, ErrNotInitialized
	}

	aligned, warnings := e.Align(fields)

	var clusterID *int
	if id, err := e.AssignCluster(aligned); err != nil {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnClusterUnassigned,
			Message: err.Error(),
		})
	} else {
		clusterID = &id
	}

	optimized := e.Optimize(aligned)
	ideal := e.IdealRow()

	baseMCI := ComputeMCI(aligned)
	optMCI := ComputeMCI(optimized)
	for _, s := range []struct {
		name string
		mci  MCIBreakdown
	}{{"baseline", baseMCI}, {"optimized", optMCI}} {
		if s.mci.Undefined {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnScoreUndefined,
				Message: fmt.Sprintf("%s MCI terms overflow, scored 0", s.name),
			})
		}
	}

	baseComp := e.Composite(aligned, ideal)
	optComp := e.Composite(optimized, ideal)
	idealComp := e.Composite(ideal, ideal)

	if warnings == nil {
		warnings = []domain.Warning{}
	}
	return &domain.AnalysisResult{
		ClusterID: clusterID,
		Baseline: domain.Snapshot{
			MCI:           baseMCI.Score,
			Composite:     utils.RoundTo(baseComp, 3),
			EfficiencyPct: efficiency(baseComp, idealComp),
		},
		Optimized: domain.Snapshot{
			MCI:           optMCI.Score,
			Composite:     utils.RoundTo(optComp, 3),
			EfficiencyPct: efficiency(optComp, idealComp),
		},
		Ideal: domain.IdealSnapshot{
			MCI:       MCI(ideal),
			Composite: utils.RoundTo(idealComp, 3),
		},
		Recommendations: e.Recommend(aligned, clusterID),
		AlignedInput:    aligned,
		OptimizedInput:  optimized,
		IdealInput:      ideal,
		Warnings:        warnings,
	}, nil
}

func efficiency(own, ideal float64) float64 {
	if ideal == 0 {
		return 0
	}
	return utils.RoundTo(100*own/ideal, 1)
}
