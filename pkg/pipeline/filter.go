package pipeline

import (
	"github.com/tobgu/qframe"
	"github.com/tobgu/qframe/types"
	"go.uber.org/zap"

	"antibio/pkg/data"
	"antibio/pkg/logging"
)

// Sample types the views are cut on.
const (
	SampleFecal = "fecal"
	SampleCecal = "cecal"
	SampleIleal = "ileal"
)

// Filter derives the chart views from the experiment table. Both views
// check their own columns again so they are safe to call without the
// global validation: a table missing a column yields an empty view.
type Filter struct {
	// DistributionDay, when set, keeps only that experimental day in the
	// distribution views.
	DistributionDay *int

	log *zap.Logger
}

// NewFilter returns a Filter that logs schema warnings to log.
func NewFilter(distributionDay *int, log *zap.Logger) *Filter {
	return &Filter{DistributionDay: distributionDay, log: logging.OrNop(log)}
}

// LineView keeps the fecal rows, projected onto LineSchema. Row order is
// the table's.
func (f *Filter) LineView(qf qframe.QFrame) qframe.QFrame {
	if missing := MissingColumns(qf, LineSchema.Columns); len(missing) > 0 {
		f.logger().Warn("Missing columns for the line graph", zap.Strings("columns", missing))
		return data.Empty()
	}
	return f.project(qf.Filter(sampleTypeIs(SampleFecal)), LineSchema.Columns)
}

// DistributionView keeps the rows of one sample type, projected onto
// DistributionSchema.
func (f *Filter) DistributionView(qf qframe.QFrame, sampleType string) qframe.QFrame {
	required := DistributionSchema.Columns
	if f.DistributionDay != nil {
		required = union(required, []string{data.ColDay})
	}
	if missing := MissingColumns(qf, required); len(missing) > 0 {
		f.logger().Warn("Missing columns for the violin graph",
			zap.String("sample_type", sampleType), zap.Strings("columns", missing))
		return data.Empty()
	}

	var clause qframe.FilterClause = sampleTypeIs(sampleType)
	if f.DistributionDay != nil {
		clause = qframe.And(clause, dayIs(qf, *f.DistributionDay))
	}
	return f.project(qf.Filter(clause), DistributionSchema.Columns)
}

func (f *Filter) project(qf qframe.QFrame, cols []string) qframe.QFrame {
	if qf.Err != nil {
		f.logger().Warn("Cannot filter table", zap.Error(qf.Err))
		return data.Empty()
	}
	out := qf.Select(cols...)
	if out.Err != nil {
		f.logger().Warn("Cannot project table", zap.Error(out.Err))
		return data.Empty()
	}
	return out
}

func (f *Filter) logger() *zap.Logger {
	return logging.OrNop(f.log)
}

func sampleTypeIs(sampleType string) qframe.Filter {
	return qframe.Filter{Column: data.ColSampleType, Comparator: "=", Arg: sampleType}
}

// dayIs compares against the day column in its own numeric type.
func dayIs(qf qframe.QFrame, day int) qframe.Filter {
	var arg interface{} = day
	if qf.ColumnTypeMap()[data.ColDay] == types.Float {
		arg = float64(day)
	}
	return qframe.Filter{Column: data.ColDay, Comparator: "=", Arg: arg}
}
