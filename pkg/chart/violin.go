package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/tobgu/qframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"antibio/pkg/data"
	"antibio/pkg/stats"
)

const (
	// violinCut extends each density this many bandwidths past the data.
	violinCut = 2
	// violinGridSize is the number of points each density is evaluated at.
	violinGridSize = 100
	// groupWidth is the share of one nominal x slot taken by its violins.
	groupWidth = 0.8
)

// Half selects which side of its centre a violin is drawn on.
type Half int

const (
	Both Half = iota
	Left
	Right
)

// muted is the seaborn "muted" palette.
var muted = []color.Color{
	color.RGBA{R: 0x48, G: 0x78, B: 0xd0, A: 0xff},
	color.RGBA{R: 0xee, G: 0x85, B: 0x4a, A: 0xff},
	color.RGBA{R: 0x6a, G: 0xcc, B: 0x64, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x5f, B: 0x5f, A: 0xff},
	color.RGBA{R: 0x95, G: 0x6c, B: 0xb4, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x61, B: 0x3c, A: 0xff},
	color.RGBA{R: 0xdc, G: 0x7e, B: 0xc0, A: 0xff},
	color.RGBA{R: 0x79, G: 0x79, B: 0x79, A: 0xff},
	color.RGBA{R: 0xd5, G: 0xbb, B: 0x67, A: 0xff},
	color.RGBA{R: 0x82, G: 0xc6, B: 0xe2, A: 0xff},
}

// MutedColor returns the i-th colour of the muted palette, cycling.
func MutedColor(i int) color.Color {
	return muted[i%len(muted)]
}

// ViolinGroup holds the measurements of one treatment.
type ViolinGroup struct {
	Treatment string
	Values    []float64
}

// ViolinGroupsOf splits a distribution view by treatment, in order of
// first appearance. Blank (NaN) frequencies are dropped, and a treatment
// with no remaining value gets no group.
func ViolinGroupsOf(qf qframe.QFrame) ([]ViolinGroup, error) {
	treatments, err := data.Strings(qf, data.ColTreatment)
	if err != nil {
		return nil, err
	}
	freqs, err := data.Floats(qf, data.ColLiveFrequency)
	if err != nil {
		return nil, err
	}

	var groups []ViolinGroup
	idx := make(map[string]int)
	for i, t := range treatments {
		if math.IsNaN(freqs[i]) {
			continue
		}
		g, ok := idx[t]
		if !ok {
			g = len(groups)
			idx[t] = g
			groups = append(groups, ViolinGroup{Treatment: t})
		}
		groups[g].Values = append(groups[g].Values, freqs[i])
	}
	return groups, nil
}

// Violin draws a kernel density estimate mirrored around Center. Width is
// the full width at the densest point, in data units.
type Violin struct {
	Center float64
	Width  float64
	Half   Half

	FillColor color.Color
	LineStyle draw.LineStyle

	// QuartileStyle draws the first and third quartiles; the median uses
	// LineStyle.
	QuartileStyle draw.LineStyle

	grid      []float64
	halfWidth []float64

	q1, q2, q3 float64
}

// NewViolin estimates the density of values. values must not be empty.
func NewViolin(values []float64, center, width float64, half Half) (*Violin, error) {
	if len(values) == 0 {
		return nil, errors.New("violin needs at least one value")
	}
	bw := stats.ScottBandwidth(values)
	lo, hi := stats.MinMax(values)
	grid := stats.Linspace(lo-violinCut*bw, hi+violinCut*bw, violinGridSize)
	density := stats.GaussianKDE(values, bw, grid)

	_, peak := stats.MinMax(density)
	hw := make([]float64, len(density))
	for i, d := range density {
		if peak > 0 {
			hw[i] = d / peak * width / 2
		}
	}

	return &Violin{
		Center:        center,
		Width:         width,
		Half:          half,
		FillColor:     color.Gray{Y: 0xc0},
		LineStyle:     plotter.DefaultLineStyle,
		QuartileStyle: draw.LineStyle{Color: color.Black, Width: vg.Points(0.75), Dashes: []vg.Length{vg.Points(3), vg.Points(2)}},
		grid:          grid,
		halfWidth:     hw,
		q1:            stats.Percentile(values, 25),
		q2:            stats.Percentile(values, 50),
		q3:            stats.Percentile(values, 75),
	}, nil
}

// Quartiles returns the first quartile, median and third quartile.
func (v *Violin) Quartiles() (q1, median, q3 float64) {
	return v.q1, v.q2, v.q3
}

func (v *Violin) edges(hw float64) (left, right float64) {
	switch v.Half {
	case Left:
		return v.Center - hw, v.Center
	case Right:
		return v.Center, v.Center + hw
	default:
		return v.Center - hw, v.Center + hw
	}
}

// halfWidthAt interpolates the drawn half width at y.
func (v *Violin) halfWidthAt(y float64) float64 {
	n := len(v.grid)
	if n == 0 || y <= v.grid[0] || y >= v.grid[n-1] {
		return 0
	}
	for i := 1; i < n; i++ {
		if y <= v.grid[i] {
			t := (y - v.grid[i-1]) / (v.grid[i] - v.grid[i-1])
			return v.halfWidth[i-1] + t*(v.halfWidth[i]-v.halfWidth[i-1])
		}
	}
	return 0
}

// Plot implements the plot.Plotter interface.
func (v *Violin) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	n := len(v.grid)
	outline := make([]vg.Point, 0, 2*n+1)
	for i := 0; i < n; i++ {
		_, r := v.edges(v.halfWidth[i])
		outline = append(outline, vg.Point{X: trX(r), Y: trY(v.grid[i])})
	}
	for i := n - 1; i >= 0; i-- {
		l, _ := v.edges(v.halfWidth[i])
		outline = append(outline, vg.Point{X: trX(l), Y: trY(v.grid[i])})
	}
	if v.FillColor != nil {
		c.FillPolygon(v.FillColor, c.ClipPolygonXY(outline))
	}
	outline = append(outline, outline[0])
	c.StrokeLines(v.LineStyle, c.ClipLinesXY(outline)...)

	mark := func(y float64, sty draw.LineStyle) {
		l, r := v.edges(v.halfWidthAt(y))
		seg := []vg.Point{{X: trX(l), Y: trY(y)}, {X: trX(r), Y: trY(y)}}
		c.StrokeLines(sty, c.ClipLinesXY(seg)...)
	}
	mark(v.q1, v.QuartileStyle)
	mark(v.q3, v.QuartileStyle)
	mark(v.q2, v.LineStyle)
}

// DataRange implements the plot.DataRanger interface.
func (v *Violin) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = v.edges(v.Width / 2)
	return xmin, xmax, v.grid[0], v.grid[len(v.grid)-1]
}

// Thumbnail implements the plot.Thumbnailer interface.
func (v *Violin) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	if v.FillColor != nil {
		c.FillPolygon(v.FillColor, c.ClipPolygonY(pts))
	}
	pts = append(pts, pts[0])
	c.StrokeLines(v.LineStyle, c.ClipLinesY(pts)...)
}

// ViolinPlot builds the distribution chart of one sample type, one violin
// (or violin half) per treatment.
func ViolinPlot(qf qframe.QFrame, sampleType string) (*plot.Plot, error) {
	groups, err := ViolinGroupsOf(qf)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}
	violins, err := layoutViolins(groups)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Bacteria Dispersion in %s Samples", capitalize(sampleType))
	p.X.Label.Text = "Sample Type"
	p.Y.Label.Text = "Percentage of Live Bacteria"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, v := range violins {
		p.Add(v)
		p.Legend.Add(groups[i].Treatment, v)
	}
	p.NominalX(sampleType)
	p.X.Min, p.X.Max = -0.5, 0.5
	return p, nil
}

// layoutViolins places the groups inside the single nominal slot at x=0.
// Two groups share one split violin; any other count is dodged side by
// side.
func layoutViolins(groups []ViolinGroup) ([]*Violin, error) {
	out := make([]*Violin, 0, len(groups))
	for i, g := range groups {
		center, width, half := 0.0, groupWidth, Both
		switch {
		case len(groups) == 2 && i == 0:
			half = Left
		case len(groups) == 2:
			half = Right
		default:
			width = groupWidth / float64(len(groups))
			center = -groupWidth/2 + (float64(i)+0.5)*width
		}
		v, err := NewViolin(g.Values, center, width, half)
		if err != nil {
			return nil, fmt.Errorf("treatment %s: %w", g.Treatment, err)
		}
		v.FillColor = MutedColor(i)
		out = append(out, v)
	}
	return out, nil
}
