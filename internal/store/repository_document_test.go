package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/second-brain-sync/internal/logger"
	"github.com/MKhiriev/second-brain-sync/migrations"
)

func newTestRepo(t *testing.T) (DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewDocumentRepository(newDBFromSQL(db, migrations.DialectPostgres), logger.Nop()), mock
}

var (
	selectDocumentSQL = regexp.QuoteMeta("SELECT document_id, payload, version, updated_at FROM documents WHERE document_id = $1")
	upsertDocumentSQL = regexp.QuoteMeta("INSERT INTO documents")
)

func TestDocumentRepository_GetDocument(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantErr error
		check   func(t *testing.T, raw json.RawMessage, version int64, updatedAt *time.Time)
	}{
		{
			name: "found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectDocumentSQL).
					WithArgs("tasks-work").
					WillReturnRows(sqlmock.NewRows([]string{"document_id", "payload", "version", "updated_at"}).
						AddRow("tasks-work", []byte(`{"tasks":[]}`), int64(3), now))
			},
			check: func(t *testing.T, raw json.RawMessage, version int64, updatedAt *time.Time) {
				assert.JSONEq(t, `{"tasks":[]}`, string(raw))
				assert.Equal(t, int64(3), version)
				require.NotNil(t, updatedAt)
				assert.True(t, now.Equal(*updatedAt))
			},
		},
		{
			name: "not found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectDocumentSQL).WithArgs("tasks-work").WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrDocumentNotFound,
		},
		{
			name: "connection lost is retryable",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectDocumentSQL).
					WithArgs("tasks-work").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
			},
			wantErr: ErrStorageUnavailable,
		},
		{
			name: "other error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectDocumentSQL).
					WithArgs("tasks-work").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})
			},
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepo(t)
			tt.setup(mock)

			env, err := repo.GetDocument(testContext(), "tasks-work")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tasks-work", env.DocumentID)
				tt.check(t, env.Document, env.Version, env.UpdatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDocumentRepository_GetDocument_NotFoundIsNotUnavailable(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(selectDocumentSQL).WithArgs("x").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDocument(testContext(), "x")
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestDocumentRepository_SaveDocument(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	payload := json.RawMessage(`{"theme":"dark"}`)

	t.Run("upsert", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(upsertDocumentSQL).
			WithArgs("settings", `{"theme":"dark"}`).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(2), now))

		env, err := repo.SaveDocument(testContext(), "settings", payload)
		require.NoError(t, err)
		assert.Equal(t, "settings", env.DocumentID)
		assert.Equal(t, int64(2), env.Version)
		assert.JSONEq(t, string(payload), string(env.Document))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deadlock is retryable", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(upsertDocumentSQL).
			WithArgs("settings", `{"theme":"dark"}`).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})

		_, err := repo.SaveDocument(testContext(), "settings", payload)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.ErrorIs(t, err, ErrExecutingStatement)
	})

	t.Run("constraint violation", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(upsertDocumentSQL).
			WithArgs("settings", `{"theme":"dark"}`).
			WillReturnError(errors.New("value too long"))

		_, err := repo.SaveDocument(testContext(), "settings", payload)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NotErrorIs(t, err, ErrStorageUnavailable)
	})
}

func TestDocumentRepository_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewDocumentRepository(newDBFromSQL(db, migrations.DialectPostgres), logger.Nop())

	mock.ExpectPing()
	assert.NoError(t, repo.Ping(testContext()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, repo.Ping(testContext()))
}

func TestBuildSaveDocumentQuery(t *testing.T) {
	query, args, err := buildSaveDocumentQuery("tasks", json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Contains(t, query, "ON CONFLICT (document_id) DO UPDATE")
	assert.Contains(t, query, "RETURNING version, updated_at")
	assert.Equal(t, []any{"tasks", "[]"}, args)
}
