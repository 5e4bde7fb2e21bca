// Package chart draws the experiment views as PNG images with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tobgu/qframe"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"antibio/pkg/logging"
)

// DPI of the written images. A 10x6 inch chart is 1000x600 pixels.
const DPI = 100

// ErrNoData is returned by the plot builders when a view has rows but no
// plottable value.
var ErrNoData = errors.New("no plottable values")

// Renderer writes chart images into Dir.
type Renderer struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
	log    *zap.Logger
}

// NewRenderer returns a Renderer drawing width x height images into dir.
func NewRenderer(dir string, width, height vg.Length, log *zap.Logger) *Renderer {
	return &Renderer{Dir: dir, Width: width, Height: height, log: logging.OrNop(log)}
}

// RenderLine draws the fecal line chart to Dir/line_graph.png. An empty
// view is skipped with a warning and yields an empty path.
func (r *Renderer) RenderLine(qf qframe.QFrame) (string, error) {
	log := logging.OrNop(r.log)
	if qf.Len() == 0 {
		log.Warn("No data for line graph")
		return "", nil
	}
	p, err := LinePlot(qf)
	if errors.Is(err, ErrNoData) {
		log.Warn("No data for line graph", zap.Int("rows", qf.Len()))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("line graph: %w", err)
	}
	path := filepath.Join(r.Dir, "line_graph.png")
	if err := savePNG(p, r.Width, r.Height, path); err != nil {
		return "", err
	}
	log.Info("Line graph saved", zap.String("path", path))
	return path, nil
}

// RenderViolin draws the distribution chart of one sample type to
// Dir/violin_graph_<sampleType>.png.
func (r *Renderer) RenderViolin(qf qframe.QFrame, sampleType string) (string, error) {
	log := logging.OrNop(r.log)
	if qf.Len() == 0 {
		log.Warn("No data for violin graph", zap.String("sample_type", sampleType))
		return "", nil
	}
	p, err := ViolinPlot(qf, sampleType)
	if errors.Is(err, ErrNoData) {
		log.Warn("No data for violin graph", zap.String("sample_type", sampleType), zap.Int("rows", qf.Len()))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s violin graph: %w", sampleType, err)
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("violin_graph_%s.png", sampleType))
	if err := savePNG(p, r.Width, r.Height, path); err != nil {
		return "", err
	}
	log.Info(capitalize(sampleType)+" violin graph saved", zap.String("path", path))
	return path, nil
}

// savePNG draws p on a canvas that lives only for this call and writes it
// to path. The file is closed on every return path.
func savePNG(p *plot.Plot, w, h vg.Length, path string) (err error) {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(DPI))
	p.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
