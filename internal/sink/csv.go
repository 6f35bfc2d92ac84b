// internal/sink/csv.go
package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/common/metrics"
)

// DefaultFilename names an output file after the batch start time.
func DefaultFilename(now time.Time) string {
	return "experiment_results_" + now.Format("20060102_150405") + ".csv"
}

// CSVSink appends rows to a CSV file, flushing after every write so the file
// is usable the moment a batch is interrupted.
type CSVSink struct {
	file     *os.File
	writer   *csv.Writer
	buffered bool
}

type CSVOption func(*CSVSink)

// WithBufferedWrites defers flushing to Close, trading crash resilience for
// fewer syscalls on very large batches.
func WithBufferedWrites() CSVOption {
	return func(s *CSVSink) { s.buffered = true }
}

// NewCSVSink creates the file, parent directories included, and writes the
// header row.
func NewCSVSink(path string, opts ...CSVOption) (*CSVSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot create output directory", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot create output file", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns()); err != nil {
		file.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot write header row", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot write header row", err)
	}
	s := &CSVSink{file: file, writer: writer}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *CSVSink) Write(ctx context.Context, record Record) error {
	if err := s.writer.Write(record.Values()); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot write result row", err)
	}
	if !s.buffered {
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "cannot flush result row", err)
		}
	}
	metrics.RecordsWritten.WithLabelValues("csv").Inc()
	return nil
}

func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
