// Package plotting renders the histogram/boxplot composite used to inspect a
// single numeric column.
package plotting

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"statbook/domain/core"
	"statbook/domain/dataset"
	"statbook/internal/errors"
)

// matplotlib's default cycle; C1..C3 mark mean, median and mode
var (
	colorC0  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	colorC1  = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	colorC2  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	colorC3  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	gridGray = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}

	dashes = []vg.Length{vg.Points(4), vg.Points(2)}
)

const (
	boxPanelRatio = 0.15
	kdeSamples    = 200
)

// Format is the encoding of a rendered figure
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Options controls the figure size and encoding
type Options struct {
	Width  vg.Length
	Height vg.Length
	Format Format
	Bins   Bins
}

// DefaultOptions returns a 16x12 cm PNG with automatic binning
func DefaultOptions() Options {
	return Options{Width: 16 * vg.Centimeter, Height: 12 * vg.Centimeter, Format: PNG, Bins: AutoBins}
}

// canvasWriter is a canvas that can encode itself once drawn
type canvasWriter interface {
	vg.CanvasSizer
	io.WriterTo
}

// HistBox draws a horizontal box plot above a histogram with a density
// overlay for column, sharing the x axis, and writes the encoded figure to out.
// The histogram marks the mean, median and first mode.
func HistBox(ds *dataset.Dataset, column string, out io.Writer, opts Options) (Summary, error) {
	col, err := ds.Column(column)
	if err != nil {
		return Summary{}, errors.Wrap(err, "histogram/boxplot composite")
	}
	summary, err := Summarize(col.Values)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "column %q", column)
	}
	summary.Bins = opts.Bins.binCount(summary)
	values := plotter.Values(col.Observed())

	box, err := boxPanel(values, summary)
	if err != nil {
		return Summary{}, err
	}
	hist, err := histPanel(column, values, summary)
	if err != nil {
		return Summary{}, err
	}

	// share the x range between both panels
	xmin, xmax := hist.X.Min, hist.X.Max
	box.X.Min, box.X.Max = xmin, xmax

	cw, err := newCanvas(opts)
	if err != nil {
		return Summary{}, err
	}
	dc := draw.New(cw)
	boxHeight := vg.Length(boxPanelRatio) * opts.Height

	histCanvas := draw.Crop(dc, 0, 0, 0, -boxHeight)
	hist.Draw(histCanvas)

	// align the box panel with the histogram's data area
	data := hist.DataCanvas(histCanvas)
	boxCanvas := draw.Canvas{
		Canvas: dc.Canvas,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: data.Min.X, Y: dc.Max.Y - boxHeight},
			Max: vg.Point{X: data.Max.X, Y: dc.Max.Y},
		},
	}
	box.Draw(boxCanvas)

	if _, err := cw.WriteTo(out); err != nil {
		return Summary{}, fmt.Errorf("failed to encode figure: %w", err)
	}
	return summary, nil
}

func newCanvas(opts Options) (canvasWriter, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, core.NewOptionError("size", fmt.Sprintf("%vx%v", opts.Width, opts.Height))
	}
	switch Format(strings.ToLower(string(opts.Format))) {
	case PNG, "":
		return vgimg.PngCanvas{Canvas: vgimg.New(opts.Width, opts.Height)}, nil
	case SVG:
		return vgsvg.New(opts.Width, opts.Height), nil
	}
	return nil, core.NewOptionError("format", string(opts.Format))
}

func boxPanel(values plotter.Values, s Summary) (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()
	p.X.Padding, p.Y.Padding = 0, 0

	box, err := plotter.NewBoxPlot(vg.Points(18), 0, values)
	if err != nil {
		return nil, fmt.Errorf("failed to build box plot: %w", err)
	}
	box.Horizontal = true
	box.FillColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x60}

	mean, err := verticalLine(s.Mean, -0.4, 0.4, colorC1)
	if err != nil {
		return nil, err
	}
	median, err := verticalLine(s.Median, -0.4, 0.4, colorC2)
	if err != nil {
		return nil, err
	}

	p.Add(dashedGrid(), box, mean, median)
	p.Y.Min, p.Y.Max = -1, 1
	return p, nil
}

func histPanel(column string, values plotter.Values, s Summary) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = column
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(values, s.Bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}
	hist.FillColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x99}
	hist.LineStyle.Color = colorC0

	top := 0.0
	for _, b := range hist.Bins {
		top = math.Max(top, b.Weight)
	}
	p.Add(dashedGrid(), hist)

	if kde, ok, err := densityLine(values, s, hist.Width); err != nil {
		return nil, err
	} else if ok {
		p.Add(kde)
	}

	marks := []struct {
		label string
		x     float64
		c     color.Color
	}{
		{"Mean", s.Mean, colorC1},
		{"Median", s.Median, colorC2},
		{"Mode", s.Mode, colorC3},
	}
	for _, m := range marks {
		line, err := verticalLine(m.x, 0, top*1.05, m.c)
		if err != nil {
			return nil, err
		}
		p.Add(line)
		p.Legend.Add(m.label, line)
	}
	p.Legend.Top = true

	p.X.Min, p.X.Max = hist.Bins[0].Min, hist.Bins[len(hist.Bins)-1].Max
	p.Y.Min, p.Y.Max = 0, top*1.1
	return p, nil
}

// densityLine is a Gaussian KDE with Scott's bandwidth, scaled to the
// histogram's counts and evaluated over the data range.
func densityLine(values plotter.Values, s Summary, binWidth float64) (*plotter.Line, bool, error) {
	sd := stat.StdDev(values, nil)
	if s.N < 2 || sd == 0 || math.IsNaN(sd) {
		return nil, false, nil
	}
	n := float64(s.N)
	h := sd * math.Pow(n, -0.2)
	scale := n * binWidth / (n * h * math.Sqrt(2*math.Pi))

	xys := make(plotter.XYs, kdeSamples)
	step := (s.Max - s.Min) / float64(kdeSamples-1)
	for i := range xys {
		x := s.Min + float64(i)*step
		var density float64
		for _, v := range values {
			u := (x - v) / h
			density += math.Exp(-0.5 * u * u)
		}
		xys[i] = plotter.XY{X: x, Y: density * scale}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build density line: %w", err)
	}
	line.LineStyle.Color = colorC0
	line.LineStyle.Width = vg.Points(1.5)
	return line, true, nil
}

func verticalLine(x, y0, y1 float64, c color.Color) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}})
	if err != nil {
		return nil, fmt.Errorf("failed to build reference line: %w", err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = dashes
	return line, nil
}

func dashedGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Color = gridGray
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Color = gridGray
	grid.Horizontal.Dashes = dashes
	return grid
}
