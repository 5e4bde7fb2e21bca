package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `sample_type;mouse_ID;treatment;experimental_day;frequency_live_bacteria
fecal;M1;antibiotic;0;45.5
fecal;M1;antibiotic;7;12.25
cecal;M2;placebo;7;60.75
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data_small.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTable(t *testing.T) {
	qf, err := LoadTable(writeFile(t, sample), ';')
	require.NoError(t, err)

	assert.Equal(t, 3, qf.Len())
	want := []string{"sample_type", "mouse_ID", "treatment", "experimental_day", "frequency_live_bacteria"}
	if diff := cmp.Diff(want, qf.ColumnNames()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	days, err := Floats(qf, "experimental_day")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 7, 7}, days)

	freq, err := Floats(qf, "frequency_live_bacteria")
	require.NoError(t, err)
	assert.Equal(t, []float64{45.5, 12.25, 60.75}, freq)

	types, err := Strings(qf, "sample_type")
	require.NoError(t, err)
	assert.Equal(t, []string{"fecal", "fecal", "cecal"}, types)
}

func TestLoadTableSkipsByteOrderMark(t *testing.T) {
	qf, err := LoadTable(writeFile(t, "\ufeff"+sample), ';')
	require.NoError(t, err)

	assert.Equal(t, "sample_type", qf.ColumnNames()[0])
	assert.True(t, HasColumn(qf, ColSampleType))
	types, err := Strings(qf, ColSampleType)
	require.NoError(t, err)
	assert.Equal(t, []string{"fecal", "fecal", "cecal"}, types)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"), ';')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.NotErrorIs(t, err, ErrLoad)
}

func TestLoadTableEmptyFile(t *testing.T) {
	_, err := LoadTable(writeFile(t, ""), ';')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestStringsRendersNumbers(t *testing.T) {
	qf, err := LoadTable(writeFile(t, "mouse_ID;day\n1;0\n2;7\n"), ';')
	require.NoError(t, err)

	ids, err := Strings(qf, "mouse_ID")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids)

	_, err = Strings(qf, "missing")
	assert.Error(t, err)
}

func TestFloatsRejectsText(t *testing.T) {
	qf, err := LoadTable(writeFile(t, sample), ';')
	require.NoError(t, err)

	_, err = Floats(qf, "treatment")
	assert.Error(t, err)
	_, err = Floats(qf, "missing")
	assert.Error(t, err)
}

func TestHasColumnAndEmpty(t *testing.T) {
	qf, err := LoadTable(writeFile(t, sample), ';')
	require.NoError(t, err)
	assert.True(t, HasColumn(qf, "treatment"))
	assert.False(t, HasColumn(qf, "Treatment"))
	assert.False(t, IsEmpty(qf))

	e := Empty()
	assert.True(t, IsEmpty(e))
	assert.Empty(t, e.ColumnNames())
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Distinct([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, Distinct(nil))
}
