package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tobgu/qframe"

	"antibio/pkg/data"
)

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("schema violation")

// Schema describes the columns one chart needs from the table.
type Schema struct {
	Name    string
	Columns []string
}

var (
	// LineSchema is the projection of the longitudinal fecal view.
	LineSchema = Schema{
		Name:    "line graph",
		Columns: []string{data.ColSampleType, data.ColMouseID, data.ColTreatment, data.ColDay, data.ColLiveFrequency},
	}
	// DistributionSchema is the projection of the cecal and ileal views.
	DistributionSchema = Schema{
		Name:    "violin graph",
		Columns: []string{data.ColSampleType, data.ColTreatment, data.ColLiveFrequency},
	}
)

// RequiredColumns is the ordered union of every schema's columns. The
// whole run is checked against it before any view is built.
func RequiredColumns() []string {
	return union(LineSchema.Columns, DistributionSchema.Columns)
}

// MissingColumns returns the members of required that qf lacks, in the
// order of required.
func MissingColumns(qf qframe.QFrame, required []string) []string {
	var missing []string
	for _, col := range required {
		if !data.HasColumn(qf, col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// SchemaError lists required columns absent from a table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// Validate returns a *SchemaError when qf lacks any of required.
func Validate(qf qframe.QFrame, required []string) error {
	if missing := MissingColumns(qf, required); len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func union(sets ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, set := range sets {
		for _, c := range set {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
