package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/tobgu/qframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"antibio/pkg/data"
	"antibio/pkg/stats"
)

// LineSeries is the trajectory of one mouse under one treatment. Points
// are sorted by day; repeated measurements on a day are averaged. Rows
// with a blank (NaN) day or frequency are dropped.
type LineSeries struct {
	Treatment string
	MouseID   string
	Points    plotter.XYs
}

// LineSeriesOf groups a line view into per-mouse trajectories, ordered by
// first appearance of the treatment and then of the mouse.
func LineSeriesOf(qf qframe.QFrame) ([]LineSeries, error) {
	treatments, err := data.Strings(qf, data.ColTreatment)
	if err != nil {
		return nil, err
	}
	mice, err := data.Strings(qf, data.ColMouseID)
	if err != nil {
		return nil, err
	}
	days, err := data.Floats(qf, data.ColDay)
	if err != nil {
		return nil, err
	}
	freqs, err := data.Floats(qf, data.ColLiveFrequency)
	if err != nil {
		return nil, err
	}

	type key struct{ treatment, mouse string }
	var order []key
	byDay := make(map[key]map[float64][]float64)
	for _, t := range data.Distinct(treatments) {
		for i := range treatments {
			if treatments[i] != t || math.IsNaN(days[i]) || math.IsNaN(freqs[i]) {
				continue
			}
			k := key{t, mice[i]}
			if _, ok := byDay[k]; !ok {
				byDay[k] = make(map[float64][]float64)
				order = append(order, k)
			}
			byDay[k][days[i]] = append(byDay[k][days[i]], freqs[i])
		}
	}

	series := make([]LineSeries, 0, len(order))
	for _, k := range order {
		pts := make(plotter.XYs, 0, len(byDay[k]))
		for day, vals := range byDay[k] {
			pts = append(pts, plotter.XY{X: day, Y: stats.Mean(vals)})
		}
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
		series = append(series, LineSeries{Treatment: k.treatment, MouseID: k.mouse, Points: pts})
	}
	return series, nil
}

// LinePlot builds the fecal evolution chart: colour encodes the
// treatment, glyph shape encodes the mouse.
func LinePlot(qf qframe.QFrame) (*plot.Plot, error) {
	series, err := LineSeriesOf(qf)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Fecal Bacteria Evolution"
	p.X.Label.Text = "Experimental Day"
	p.Y.Label.Text = "Percentage of Live Bacteria"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	treatmentIdx := make(map[string]int)
	mouseIdx := make(map[string]int)
	for _, s := range series {
		ti, seen := treatmentIdx[s.Treatment]
		if !seen {
			ti = len(treatmentIdx)
			treatmentIdx[s.Treatment] = ti
		}
		mi, ok := mouseIdx[s.MouseID]
		if !ok {
			mi = len(mouseIdx)
			mouseIdx[s.MouseID] = mi
		}

		line, points, err := plotter.NewLinePoints(s.Points)
		if err != nil {
			return nil, fmt.Errorf("series %s/%s: %w", s.Treatment, s.MouseID, err)
		}
		clr := plotutil.Color(ti)
		line.Color = clr
		line.Width = vg.Points(1.5)
		points.Color = clr
		points.Shape = plotutil.Shape(mi)
		points.Radius = vg.Points(3)
		p.Add(line, points)

		if !seen {
			p.Legend.Add(s.Treatment, line)
		}
	}
	return p, nil
}
