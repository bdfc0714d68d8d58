package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alibaba1709/SIH-25069/internal/domain"
)

var (
	mciColor       = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	compositeColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

func chartTitle(metal string) string {
	if metal == "" {
		return "MCI benchmark"
	}
	return "MCI benchmark: " + metal
}

// WriteChart draws MCI and composite (scaled to 0-100) for the baseline,
// optimized and ideal snapshots as a grouped bar chart PNG
func WriteChart(w io.Writer, res *domain.AnalysisResult, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Score (0-100)"
	p.Y.Min = 0
	p.Y.Max = 100

	mci := plotter.Values{res.Baseline.MCI, res.Optimized.MCI, res.Ideal.MCI}
	composite := plotter.Values{res.Baseline.Composite * 100, res.Optimized.Composite * 100, res.Ideal.Composite * 100}

	width := vg.Points(18)
	mciBars, err := plotter.NewBarChart(mci, width)
	if err != nil {
		return fmt.Errorf("report: failed to build MCI bars: %w", err)
	}
	mciBars.Color = mciColor
	mciBars.LineStyle.Width = vg.Length(0)
	mciBars.Offset = -width / 2

	compBars, err := plotter.NewBarChart(composite, width)
	if err != nil {
		return fmt.Errorf("report: failed to build composite bars: %w", err)
	}
	compBars.Color = compositeColor
	compBars.LineStyle.Width = vg.Length(0)
	compBars.Offset = width / 2

	p.Add(mciBars, compBars, plotter.NewGrid())
	p.Legend.Add("MCI", mciBars)
	p.Legend.Add("Composite x100", compBars)
	p.Legend.Top = true
	p.NominalX("Baseline", "Optimized", "Ideal")

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("report: failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("report: failed to write chart: %w", err)
	}
	return nil
}
