// internal/sink/postgres_test.go
package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "negotiation-experiments/internal/common/errors"
)

func TestPostgresSinkWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresSinkWithDB(db, "experiment_results", "run-1")

	mock.ExpectExec("INSERT INTO experiment_results").
		WithArgs(
			"run-1",
			"self_no_law_business_type=x",
			"self_no_law",
			true,
			"",
			"I would pay 150 and offer 120 for this.",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			"marketing consultant for small businesses in the US",
			20, 200, 1, 10,
			"Jane Doe", "NegotiationAgentZero", "John Smith", "CRM software",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Write(context.Background(), sampleRecord()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkWriteNullOutcomes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresSinkWithDB(db, "experiment_results", "run-1")

	record := sampleRecord()
	record.WillingnessToPay = nil
	record.Offer = nil

	mock.ExpectExec("INSERT INTO experiment_results").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Write(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkWriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresSinkWithDB(db, "experiment_results", "run-1")

	mock.ExpectExec("INSERT INTO experiment_results").
		WillReturnError(errors.New("connection reset"))

	err = s.Write(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeOutputWriteFailed, apperrors.CodeOf(err))
}

func TestPostgresSinkCloseLeavesBorrowedDBOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgresSinkWithDB(db, "experiment_results", "run-1")
	require.NoError(t, s.Close())

	// The borrowed connection must survive the sink.
	mock.ExpectExec("INSERT INTO experiment_results").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, s.Write(context.Background(), sampleRecord()))
}
