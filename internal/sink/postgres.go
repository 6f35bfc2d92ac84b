// internal/sink/postgres.go
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	apperrors "negotiation-experiments/internal/common/errors"
	"negotiation-experiments/internal/common/metrics"
)

// PostgresSink inserts one row per result into a flat results table whose
// columns mirror Columns().
type PostgresSink struct {
	db        *sql.DB
	table     string
	runID     string
	insert    string
	ownedConn bool
}

// NewPostgresSink opens the connection and verifies it. The table is
// expected to exist; schema management stays outside the harness.
func NewPostgresSink(ctx context.Context, dsn, table, runID string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeSinkUnavailable, "cannot open postgres connection", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeSinkUnavailable, "postgres ping failed", err)
	}

	s := newPostgresSink(db, table, runID)
	s.ownedConn = true
	return s, nil
}

// NewPostgresSinkWithDB wraps an existing connection. Used by tests.
func NewPostgresSinkWithDB(db *sql.DB, table, runID string) *PostgresSink {
	return newPostgresSink(db, table, runID)
}

func newPostgresSink(db *sql.DB, table, runID string) *PostgresSink {
	cols := append([]string{"run_id"}, Columns()...)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insert := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)
	return &PostgresSink{db: db, table: table, runID: runID, insert: insert}
}

func (s *PostgresSink) Write(ctx context.Context, record Record) error {
	args := []interface{}{
		s.runID,
		record.ExperimentID,
		record.Variant,
		record.Success,
		record.Error,
		record.Response,
		nullableFloat(record.WillingnessToPay),
		nullableFloat(record.Offer),
	}
	for _, fv := range record.Config.Fields() {
		args = append(args, fv.Value)
	}

	if _, err := s.db.ExecContext(ctx, s.insert, args...); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeOutputWriteFailed, "postgres insert failed", err)
	}
	metrics.RecordsWritten.WithLabelValues("postgres").Inc()
	return nil
}

func (s *PostgresSink) Close() error {
	if s.ownedConn {
		return s.db.Close()
	}
	return nil
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
