package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookman-backend/internal/shared/apperr"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (SearchService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresSearchService(mock), mock
}

func TestSearchAll(t *testing.T) {
	svc, mock := newTestService(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM`).
		WithArgs("%Harry%", PageSize*MaxPageCount, PageSize*1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(26))
	mock.ExpectQuery(`SELECT id, first_name, last_name, created_date, updated_date\s+FROM person`).
		WithArgs("%Harry%", PageSize, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name", "created_date", "updated_date"}).
			AddRow(id, "Harry", "Potter", baseTime, baseTime))
	mock.ExpectCommit()

	set, err := svc.SearchAll(context.Background(), "Harry", 0)
	require.NoError(t, err)
	require.Len(t, set.Results, 1)
	assert.Equal(t, id, set.Results[0].ID)
	assert.Equal(t, "Harry", set.Results[0].FirstName)
	assert.Equal(t, 2, set.PageCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAllNoMatches(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM`).
		WithArgs("%Voldemort%", PageSize*MaxPageCount, PageSize*3).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT id, first_name, last_name, created_date, updated_date\s+FROM person`).
		WithArgs("%Voldemort%", PageSize, PageSize*2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name", "created_date", "updated_date"}))
	mock.ExpectCommit()

	set, err := svc.SearchAll(context.Background(), "Voldemort", 2)
	require.NoError(t, err)
	assert.Empty(t, set.Results)
	assert.Equal(t, 0, set.PageCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAllBlankQuery(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.SearchAll(context.Background(), "   ", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrIllegalArgument))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAllNegativePage(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.SearchAll(context.Background(), "Harry", -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrIllegalArgument))
	require.NoError(t, mock.ExpectationsWereMet())
}
