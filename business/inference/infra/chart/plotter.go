// Package chart renders batches and rankings as PNG charts with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ChiaviniK/ComexioCase/business/inference/app"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

const (
	histogramBins = 10

	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// DefaultAccent is the colour used when a presentation variant sets none.
var DefaultAccent = color.RGBA{R: 0x0d, G: 0x47, B: 0xa1, A: 0xff}

// Renderer writes chart files into a directory.
type Renderer struct {
	dir    string
	accent color.Color
}

// NewRenderer creates a Renderer. A nil accent uses DefaultAccent.
func NewRenderer(dir string, accent color.Color) *Renderer {
	if accent == nil {
		accent = DefaultAccent
	}
	return &Renderer{dir: dir, accent: accent}
}

// Batch renders the weight × FOB scatter and the FOB histogram of b and
// returns the written paths.
func (r *Renderer) Batch(b *app.Batch) ([]string, error) {
	if b.IsEmpty() {
		return nil, apperror.New(apperror.CodeChartFailed, apperror.WithContext("batch has no records"))
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, apperror.Internal(apperror.CodeChartFailed, r.dir, err)
	}

	xys := make(plotter.XYs, len(b.Records))
	fobs := make(plotter.Values, len(b.Records))
	for i, rec := range b.Records {
		xys[i].X = rec.EstimatedWeightKg.InexactFloat64()
		xys[i].Y = rec.EstimatedFOB.InexactFloat64()
		fobs[i] = rec.EstimatedFOB.InexactFloat64()
	}

	scatterPath := filepath.Join(r.dir, b.Category.ID+"_scatter.png")
	if err := r.scatter(b.Category.DisplayName(), xys, scatterPath); err != nil {
		return nil, err
	}

	histPath := filepath.Join(r.dir, b.Category.ID+"_fob_hist.png")
	if err := r.histogram(b.Category.DisplayName(), fobs, histPath); err != nil {
		return nil, err
	}

	return []string{scatterPath, histPath}, nil
}

func (r *Renderer) scatter(title string, xys plotter.XYs, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: peso x valor FOB", title)
	p.X.Label.Text = "Peso (kg)"
	p.Y.Label.Text = "Valor FOB (USD)"
	p.Add(plotter.NewGrid())

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return apperror.Internal(apperror.CodeChartFailed, "scatter", err)
	}
	s.GlyphStyle.Color = r.accent
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)

	return save(p, path)
}

func (r *Renderer) histogram(title string, values plotter.Values, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: distribuicao FOB", title)
	p.X.Label.Text = "Valor FOB (USD)"
	p.Y.Label.Text = "Itens"

	h, err := plotter.NewHist(values, histogramBins)
	if err != nil {
		return apperror.Internal(apperror.CodeChartFailed, "histogram", err)
	}
	h.FillColor = r.accent
	p.Add(h)

	return save(p, path)
}

// Ranking renders a bar chart of values labelled by labels, in order.
func (r *Renderer) Ranking(title string, labels []string, values []float64, name string) (string, error) {
	if len(labels) == 0 || len(labels) != len(values) {
		return "", apperror.New(apperror.CodeChartFailed,
			apperror.WithContext(fmt.Sprintf("%d labels for %d values", len(labels), len(values))))
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", apperror.Internal(apperror.CodeChartFailed, r.dir, err)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Variacao (%)"

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(24))
	if err != nil {
		return "", apperror.Internal(apperror.CodeChartFailed, "bars", err)
	}
	bars.Color = r.accent
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	path := filepath.Join(r.dir, name)
	if err := save(p, path); err != nil {
		return "", err
	}
	return path, nil
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(width, height, path); err != nil {
		return apperror.Internal(apperror.CodeChartFailed, path, err)
	}
	return nil
}
