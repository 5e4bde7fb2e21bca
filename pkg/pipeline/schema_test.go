package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobgu/qframe"
)

func TestRequiredColumns(t *testing.T) {
	want := []string{"sample_type", "mouse_ID", "treatment", "experimental_day", "frequency_live_bacteria"}
	if diff := cmp.Diff(want, RequiredColumns()); diff != "" {
		t.Errorf("required columns mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingColumns(t *testing.T) {
	qf := qframe.New(map[string]interface{}{
		"treatment":   []string{"placebo"},
		"sample_type": []string{"fecal"},
	})

	cases := []struct {
		name     string
		required []string
		want     []string
	}{
		{"all present", []string{"sample_type", "treatment"}, nil},
		{"order preserved", []string{"mouse_ID", "treatment", "experimental_day", "frequency_live_bacteria"},
			[]string{"mouse_ID", "experimental_day", "frequency_live_bacteria"}},
		{"nothing required", nil, nil},
		{"case sensitive", []string{"Treatment"}, []string{"Treatment"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, MissingColumns(qf, tc.required)); diff != "" {
				t.Errorf("missing columns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	qf := qframe.New(map[string]interface{}{"sample_type": []string{"fecal"}})

	require.NoError(t, Validate(qf, []string{"sample_type"}))

	err := Validate(qf, RequiredColumns())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"mouse_ID", "treatment", "experimental_day", "frequency_live_bacteria"}, se.Missing)
	assert.Contains(t, err.Error(), "mouse_ID, treatment")
}
