package postgres

import (
	"context"
	"database/sql"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
	"github.com/datainsight-lab/datainsight/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func sampleEntry(t *testing.T) *storage.Entry {
	t.Helper()
	ds, err := dataset.New([]string{"regiao", "vendas"}, []dataset.Record{
		{"regiao": "Norte", "vendas": 150},
		{"regiao": "Sul", "vendas": 300},
	})
	require.NoError(t, err)
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return storage.NewEntry("5f0c8a52-4c53-4b43-9d8c-0e6f6c0b2a11", "vendas.csv", "csv", createdAt, ds)
}

func TestAdapter_Save(t *testing.T) {
	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock, e *storage.Entry)
		assertions func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockResult: func(mock sqlmock.Sqlmock, e *storage.Entry) {
				mock.ExpectQuery(regexp.QuoteMeta(querySaveDataset)).
					WithArgs(e.ID, e.Name, e.Source, 2, 2, sqlmock.AnyArg(), sql.NullString{}, e.CreatedAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(e.ID))
			},
			assertions: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "duplicate maps to ErrDuplicate",
			mockResult: func(mock sqlmock.Sqlmock, e *storage.Entry) {
				mock.ExpectQuery(regexp.QuoteMeta(querySaveDataset)).
					WithArgs(e.ID, e.Name, e.Source, 2, 2, sqlmock.AnyArg(), sql.NullString{}, e.CreatedAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorIs(t, err, storage.ErrDuplicate)
			},
		},
		{
			name: "driver error is wrapped",
			mockResult: func(mock sqlmock.Sqlmock, e *storage.Entry) {
				mock.ExpectQuery(regexp.QuoteMeta(querySaveDataset)).
					WillReturnError(sql.ErrConnDone)
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorIs(t, err, sql.ErrConnDone)
				require.ErrorContains(t, err, "failed to save dataset")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			e := sampleEntry(t)
			tc.mockResult(mock, e)

			tc.assertions(t, adapter.Save(context.Background(), e))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_SaveNonFiniteValues(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	ds, err := dataset.New([]string{"regiao", "lucro"}, []dataset.Record{
		{"regiao": "Norte", "lucro": math.NaN()},
		{"regiao": "Sul", "lucro": math.Inf(1)},
	})
	require.NoError(t, err)
	e := storage.NewEntry("0b6f1d3e-8a41-4c0e-9d6a-2f3b4c5d6e7f", "lucro.csv", "csv",
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), ds)

	mock.ExpectQuery(regexp.QuoteMeta(querySaveDataset)).
		WithArgs(e.ID, e.Name, e.Source, 2, 2, sqlmock.AnyArg(), sql.NullString{}, e.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(e.ID))

	require.NoError(t, adapter.Save(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Get(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	e := sampleEntry(t)
	data, err := e.Data.MarshalJSON()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetDataset)).
		WithArgs(e.ID).
		WillReturnRows(sqlmock.NewRows(datasetRowColumns()).
			AddRow(e.ID, e.Name, e.Source, 2, 2, e.CreatedAt, data, "texto"))

	got, err := adapter.Get(context.Background(), e.ID)
	require.NoError(t, err)
	require.Equal(t, e.Metadata, got.Metadata)
	require.Equal(t, "texto", got.Insights)
	require.Equal(t, 2, got.Data.Len())
	require.Equal(t, "Sul", got.Data.Value(1, "regiao"))
	require.Equal(t, int64(300), got.Data.Value(1, "vendas"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetNotFound(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetDataset)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(datasetRowColumns()))

	_, err := adapter.Get(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_List(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(queryListDatasets)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "source", "row_count", "column_count", "created_at"}).
			AddRow("b", "b.csv", "csv", 10, 3, now).
			AddRow("a", "sample", "sample", 100, 16, now.Add(-time.Hour)),
		).RowsWillBeClosed()

	list, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID)
	require.Equal(t, 16, list[1].Columns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Delete(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryDeleteDataset)).
		WithArgs("a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteDataset)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, adapter.Delete(context.Background(), "a"))
	require.ErrorIs(t, adapter.Delete(context.Background(), "gone"), storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_DeleteOlderThan(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(queryDeleteDatasetsBefore)).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("z").AddRow("c"))

	ids, err := adapter.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "z"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_SetInsights(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryUpdateInsights)).
		WithArgs("a", sql.NullString{String: "resumo", Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryUpdateInsights)).
		WithArgs("missing", sql.NullString{String: "resumo", Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, adapter.SetInsights(context.Background(), "a", "resumo"))
	require.ErrorIs(t, adapter.SetInsights(context.Background(), "missing", "resumo"), storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:       db,
		stmtSave: mustPrepareStmt(t, db, mock, querySaveDataset),
		stmtGet:  mustPrepareStmt(t, db, mock, queryGetDataset),
		stmtList: mustPrepareStmt(t, db, mock, queryListDatasets),
	}

	return adapter, mock, db
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)

	return stmt
}

func datasetRowColumns() []string {
	return []string{"id", "name", "source", "row_count", "column_count", "created_at", "data", "insights"}
}
