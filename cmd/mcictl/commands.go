package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/domain"
	"github.com/alibaba1709/SIH-25069/internal/platform/logger"
	"github.com/alibaba1709/SIH-25069/internal/report"
	"github.com/alibaba1709/SIH-25069/internal/service"
)

type engineOptions struct {
	data     string
	config   string
	clusters int
	verbose  bool
}

func (o *engineOptions) build() (*circularity.Engine, error) {
	cfg := circularity.DefaultConfig()
	if o.config != "" {
		loaded, err := circularity.LoadConfig(o.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.clusters != 0 {
		cfg.ClusterCount = o.clusters
	}

	log := logger.Nop()
	if o.verbose {
		l, err := logger.New("development")
		if err != nil {
			return nil, err
		}
		log = l
	}
	return circularity.NewFromCSV(o.data, cfg, circularity.WithLogger(log))
}

func analyzeCmd(opts *engineOptions) *cobra.Command {
	var (
		input  string
		format string
		out    string
		metal  string
		mlURL  string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Benchmark one input row against the reference dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.build()
			if err != nil {
				return err
			}
			fields, err := readFields(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			if metal != "" {
				if col, ok := engine.MaterialColumn(); ok {
					fields[col] = metal
				}
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("mcictl: failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return runAnalyze(cmd.Context(), engine, fields, metal, format, mlURL, w)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON object of feature values, a file path or - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, csv, xlsx or png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&metal, "metal", "m", "", "metal to assess")
	cmd.Flags().StringVar(&mlURL, "ml-url", "http://localhost:8000", "model service URL for the secondary MCI estimate")
	return cmd
}

func runAnalyze(ctx context.Context, engine *circularity.Engine, fields map[string]any, metal, format, mlURL string, w io.Writer) error {
	result, err := engine.Analyze(fields)
	if err != nil {
		return err
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	prediction, err := service.NewMLBridge(mlURL, nil, nil).Predict(ctx, result.AlignedInput, metal)
	if err != nil {
		return err
	}
	return report.Write(w, f, []domain.Assessment{{
		Metal:      metal,
		Analysis:   result,
		Prediction: prediction,
		Drivers:    service.DriverRecommendations(prediction.Contributions),
	}})
}

// readFields decodes the input object; an empty source means no fields
func readFields(stdin io.Reader, source string) (map[string]any, error) {
	var raw []byte
	var err error
	switch {
	case source == "":
		return map[string]any{}, nil
	case source == "-":
		raw, err = io.ReadAll(stdin)
	case len(source) > 0 && source[0] == '{':
		raw = []byte(source)
	default:
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("mcictl: failed to read input: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("mcictl: input must be a JSON object: %w", err)
	}
	return fields, nil
}

func clustersCmd(opts *engineOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Show peer cluster sizes and benchmark means",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.build()
			if err != nil {
				return err
			}
			return printClusters(cmd.OutOrStdout(), engine)
		},
	}
}

func printClusters(w io.Writer, engine *circularity.Engine) error {
	d := engine.Diagnostics()
	fmt.Fprintf(w, "clusters: %d  inertia: %.3f  iterations: %d", d.ClusterCount, d.Inertia, d.Iterations)
	if d.RestartStability != nil {
		fmt.Fprintf(w, "  restart ARI: %.3f", *d.RestartStability)
	}
	if d.RestartDistance != nil {
		fmt.Fprintf(w, "  restart VI: %.3f bits", *d.RestartDistance)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "cluster\tcount")
	for _, name := range d.NumericFeatures {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)
	for _, c := range engine.Clusters() {
		fmt.Fprintf(tw, "%d\t%d", c.ID, c.Count)
		for _, name := range d.NumericFeatures {
			fmt.Fprintf(tw, "\t%.3f", c.Means[name])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func schemaCmd(opts *engineOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the feature columns and their fill values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.build()
			if err != nil {
				return err
			}
			return printSchema(cmd.OutOrStdout(), engine)
		},
	}
}

func printSchema(w io.Writer, engine *circularity.Engine) error {
	cfg := engine.Config()
	role := make(map[string]string)
	for _, p := range cfg.Beneficial {
		role[p] = "beneficial"
	}
	for _, p := range cfg.Detrimental {
		role[p] = "detrimental"
	}

	fill := engine.FillValues()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "field\tkind\trole\tdefault")
	for _, f := range engine.Schema().Fields() {
		r := role[f.Name]
		if r == "" {
			r = "neutral"
		}
		if f.Kind == domain.KindCategorical {
			r = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", f.Name, f.Kind, r, fill[f.Name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if cats := categoricalSummary(engine); len(cats) > 0 {
		fmt.Fprintln(w)
		for _, line := range cats {
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func categoricalSummary(engine *circularity.Engine) []string {
	var lines []string
	names := engine.Schema().CategoricalNames()
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %v", name, engine.Categories(name)))
	}
	return lines
}
