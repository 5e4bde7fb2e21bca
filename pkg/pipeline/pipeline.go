package pipeline

import (
	"errors"

	"github.com/tobgu/qframe"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"antibio/pkg/artifact"
	"antibio/pkg/chart"
	"antibio/pkg/config"
	"antibio/pkg/data"
	"antibio/pkg/logging"
)

// ViewWriter persists a view as a delimited file named name. It returns
// the path written, or "" when the view was empty.
type ViewWriter interface {
	Write(qf qframe.QFrame, name string) (string, error)
}

// ViewRenderer draws the charts of the views. Each method returns the
// image path, or "" when the view was empty.
type ViewRenderer interface {
	RenderLine(qf qframe.QFrame) (string, error)
	RenderViolin(qf qframe.QFrame, sampleType string) (string, error)
}

// Result lists the artifacts a run produced.
type Result struct {
	CSVs   []string
	Images []string
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithWriter replaces the CSV writer.
func WithWriter(w ViewWriter) Option {
	return func(p *Pipeline) { p.writer = w }
}

// WithRenderer replaces the chart renderer.
func WithRenderer(r ViewRenderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

// Pipeline runs the batch: load the table, validate it, derive the
// fecal, cecal and ileal views, write them and chart them.
type Pipeline struct {
	cfg      config.Config
	log      *zap.Logger
	filter   *Filter
	writer   ViewWriter
	renderer ViewRenderer
}

// New builds a Pipeline writing into the directories of cfg.
func New(cfg config.Config, log *zap.Logger, opts ...Option) *Pipeline {
	log = logging.OrNop(log)
	p := &Pipeline{
		cfg:    cfg,
		log:    log,
		filter: NewFilter(cfg.DistributionDay, log),
		writer: artifact.NewWriter(cfg.OutputDir, log),
		renderer: chart.NewRenderer(cfg.ImagesDir,
			vg.Length(cfg.Chart.WidthIn)*vg.Inch,
			vg.Length(cfg.Chart.HeightIn)*vg.Inch,
			log),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type view struct {
	sampleType string
	csvName    string
	line       bool
	table      qframe.QFrame
}

// Run executes the pipeline once.
func (p *Pipeline) Run() error {
	_, err := p.RunWithResult()
	return err
}

// RunWithResult executes the pipeline and reports the files it wrote.
// Any fatal condition is logged before it is returned.
func (p *Pipeline) RunWithResult() (Result, error) {
	var res Result

	if err := p.cfg.EnsureDirs(); err != nil {
		p.log.Error("Cannot create working directories", zap.Error(err))
		return res, err
	}

	qf, err := p.load()
	if err != nil {
		return res, err
	}

	required := RequiredColumns()
	if p.cfg.DistributionDay != nil {
		required = union(required, []string{data.ColDay})
	}
	if err := Validate(qf, required); err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			p.log.Error("Missing required columns", zap.Strings("columns", se.Missing))
		} else {
			p.log.Error("Invalid table", zap.Error(err))
		}
		return res, err
	}

	views := []view{
		{sampleType: SampleFecal, csvName: "line_data.csv", line: true},
		{sampleType: SampleCecal, csvName: "cecal_data.csv"},
		{sampleType: SampleIleal, csvName: "ileal_data.csv"},
	}
	for i := range views {
		if views[i].line {
			views[i].table = p.filter.LineView(qf)
		} else {
			views[i].table = p.filter.DistributionView(qf, views[i].sampleType)
		}
		p.log.Debug("View derived",
			zap.String("sample_type", views[i].sampleType),
			zap.Int("rows", views[i].table.Len()))
	}

	for _, v := range views {
		path, err := p.writer.Write(v.table, v.csvName)
		if err != nil {
			p.log.Error("Cannot save filtered data", zap.String("file", v.csvName), zap.Error(err))
			return res, err
		}
		if path != "" {
			res.CSVs = append(res.CSVs, path)
		}
	}

	for _, v := range views {
		var path string
		if v.line {
			path, err = p.renderer.RenderLine(v.table)
		} else {
			path, err = p.renderer.RenderViolin(v.table, v.sampleType)
		}
		if err != nil {
			p.log.Error("Cannot render chart", zap.String("sample_type", v.sampleType), zap.Error(err))
			return res, err
		}
		if path != "" {
			res.Images = append(res.Images, path)
		}
	}

	p.log.Info("Processing complete",
		zap.String("output_dir", p.cfg.OutputDir),
		zap.String("images_dir", p.cfg.ImagesDir))
	return res, nil
}

func (p *Pipeline) load() (qframe.QFrame, error) {
	path := p.cfg.InputPath()
	p.log.Info("Processing file", zap.String("file", p.cfg.InputFile))

	qf, err := data.LoadTable(path, p.cfg.Delimiter())
	switch {
	case errors.Is(err, data.ErrMissingInput):
		p.log.Error("Input file not found",
			zap.String("file", p.cfg.InputFile), zap.String("dir", p.cfg.InputDir))
		return qf, err
	case err != nil:
		p.log.Error("Error loading file", zap.String("file", p.cfg.InputFile), zap.Error(err))
		return qf, err
	}
	p.log.Debug("Table loaded", zap.Int("rows", qf.Len()), zap.Strings("columns", qf.ColumnNames()))
	return qf, nil
}
