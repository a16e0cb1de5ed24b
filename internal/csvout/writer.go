package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mailsift/internal/model"
)

// Writer streams rows to CSV files in the fixed model.Columns order,
// starting a new file once the current one exceeds maxBytes.
type Writer struct {
	basePath string
	maxBytes int64

	file    *os.File
	counter *countingWriter
	cw      *csv.Writer
	fileNum int
	files   []string
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// NewWriter creates the first output file and writes its header row.
// maxBytes <= 0 disables rotation.
func NewWriter(path string, maxBytes int64) (*Writer, error) {
	w := &Writer{basePath: path, maxBytes: maxBytes}
	if err := w.openNext(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) openNext() error {
	w.fileNum++
	path := w.basePath
	if w.fileNum > 1 {
		ext := filepath.Ext(w.basePath)
		path = fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(w.basePath, ext), w.fileNum, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w.file = f
	w.counter = &countingWriter{w: f}
	w.cw = csv.NewWriter(w.counter)
	w.files = append(w.files, path)

	if err := w.cw.Write(model.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteRow appends one record, rotating to a new file first if the
// current one has grown past the byte limit.
func (w *Writer) WriteRow(row model.Row) error {
	if w.maxBytes > 0 && w.counter.n >= w.maxBytes {
		if err := w.rotate(); err != nil {
			return err
		}
	}

	record := make([]string, len(model.Columns))
	for i, col := range model.Columns {
		record[i] = flatten(row[col])
	}
	if err := w.cw.Write(record); err != nil {
		return err
	}
	// Flush per row so the byte count stays honest for rotation checks.
	w.cw.Flush()
	return w.cw.Error()
}

func (w *Writer) rotate() error {
	if err := w.closeCurrent(); err != nil {
		return err
	}
	return w.openNext()
}

func (w *Writer) closeCurrent() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

func (w *Writer) Close() error {
	return w.closeCurrent()
}

// Files lists every file written so far, in creation order.
func (w *Writer) Files() []string {
	return w.files
}

// FileCount reports how many output files have been started.
func (w *Writer) FileCount() int {
	return w.fileNum
}

// flatten collapses line breaks so every record stays on one physical
// line regardless of downstream CSV parsers.
func flatten(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
