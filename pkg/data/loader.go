// Package data loads the experiment table and reads typed columns out of it.
// Tables are qframe.QFrame values and are never modified in place.
package data

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tobgu/qframe"
	qcsv "github.com/tobgu/qframe/config/csv"
)

var (
	// ErrMissingInput is returned when the input file does not exist.
	ErrMissingInput = errors.New("input file not found")
	// ErrLoad is returned when the input file exists but cannot be parsed.
	ErrLoad = errors.New("cannot load input file")
)

// utf8BOM prefixes tables exported by spreadsheet tools.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// LoadTable reads a delimited text file with a header row.
// Column types (string, int, float, bool) are inferred per column and a
// leading UTF-8 byte order mark is skipped.
func LoadTable(path string, delimiter byte) (qframe.QFrame, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return Empty(), fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return Empty(), fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	if head, _ := r.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = r.Discard(len(utf8BOM))
	}

	qf := qframe.ReadCSV(r,
		qcsv.Delimiter(delimiter),
		qcsv.IgnoreEmptyLines(true),
	)
	if qf.Err != nil {
		return Empty(), fmt.Errorf("%w: %s: %v", ErrLoad, path, qf.Err)
	}
	if len(qf.ColumnNames()) == 0 {
		return Empty(), fmt.Errorf("%w: %s: no header row", ErrLoad, path)
	}
	return qf, nil
}

// Empty returns a table with zero rows and zero columns.
func Empty() qframe.QFrame {
	return qframe.New(map[string]interface{}{})
}

// IsEmpty reports whether qf has no rows.
func IsEmpty(qf qframe.QFrame) bool {
	return qf.Len() == 0
}
