// Package artifact persists filtered views as comma-separated files.
package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tobgu/qframe"
	"go.uber.org/zap"

	"antibio/pkg/logging"
)

// Writer saves views under Dir.
type Writer struct {
	Dir string
	log *zap.Logger
}

// NewWriter returns a Writer saving into dir.
func NewWriter(dir string, log *zap.Logger) *Writer {
	return &Writer{Dir: dir, log: logging.OrNop(log)}
}

// Write saves qf as Dir/name with a header row and no index column,
// replacing any existing file. An empty view is skipped with a warning
// and yields an empty path.
func (w *Writer) Write(qf qframe.QFrame, name string) (path string, err error) {
	log := logging.OrNop(w.log)
	if qf.Len() == 0 {
		log.Warn("No data to save", zap.String("file", name))
		return "", nil
	}

	path = filepath.Join(w.Dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
			path = ""
		}
	}()

	buf := bufio.NewWriter(file)
	if err := qf.ToCSV(buf); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}

	log.Info("Data saved", zap.String("path", path), zap.Int("rows", qf.Len()))
	return path, nil
}
