package data

import (
	"fmt"
	"strconv"

	"github.com/tobgu/qframe"
	"github.com/tobgu/qframe/types"
)

// Column names of the experiment table.
const (
	ColSampleType    = "sample_type"
	ColMouseID       = "mouse_ID"
	ColTreatment     = "treatment"
	ColDay           = "experimental_day"
	ColLiveFrequency = "frequency_live_bacteria"
)

// HasColumn reports whether qf has a column named col.
func HasColumn(qf qframe.QFrame, col string) bool {
	for _, name := range qf.ColumnNames() {
		if name == col {
			return true
		}
	}
	return false
}

// Strings returns every value of col rendered as text, in row order.
// Null strings come back as "".
func Strings(qf qframe.QFrame, col string) ([]string, error) {
	typ, ok := qf.ColumnTypeMap()[col]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	out := make([]string, 0, qf.Len())
	switch typ {
	case types.String:
		view, err := qf.StringView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, derefString(view.ItemAt(i)))
		}
	case types.Enum:
		view, err := qf.EnumView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, derefString(view.ItemAt(i)))
		}
	case types.Int:
		view, err := qf.IntView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, strconv.Itoa(view.ItemAt(i)))
		}
	case types.Float:
		view, err := qf.FloatView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, strconv.FormatFloat(view.ItemAt(i), 'f', -1, 64))
		}
	case types.Bool:
		view, err := qf.BoolView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, strconv.FormatBool(view.ItemAt(i)))
		}
	default:
		return nil, fmt.Errorf("column %q has unsupported type %s", col, typ)
	}
	return out, nil
}

// Floats returns the numeric values of col in row order. Int and float
// columns are accepted.
func Floats(qf qframe.QFrame, col string) ([]float64, error) {
	typ, ok := qf.ColumnTypeMap()[col]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	out := make([]float64, 0, qf.Len())
	switch typ {
	case types.Float:
		view, err := qf.FloatView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, view.ItemAt(i))
		}
	case types.Int:
		view, err := qf.IntView(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < view.Len(); i++ {
			out = append(out, float64(view.ItemAt(i)))
		}
	default:
		return nil, fmt.Errorf("column %q is %s, want a numeric column", col, typ)
	}
	return out, nil
}

// Distinct returns the unique values of vals in first-seen order.
func Distinct(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
