package provider_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/internal/casefile/provider"
	"github.com/caseflow/caseflow-backend/pkg/database"
	"github.com/caseflow/caseflow-backend/pkg/errors"
	"github.com/caseflow/caseflow-backend/pkg/logger"
	"github.com/caseflow/caseflow-backend/pkg/testutil"
)

func newSupabaseProvider(t *testing.T) (*provider.SupabaseProvider, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewWithDB(sqlx.NewDb(mockDB, "sqlmock"), logger.New("test", "test"))
	return provider.NewSupabaseProvider(db), mock
}

func TestSupabaseProvider_GetCases(t *testing.T) {
	p, mock := newSupabaseProvider(t)

	fixture := testutil.NewCaseFixture()
	doc, err := json.Marshal(fixture)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT document FROM cases ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(doc))

	cases, err := p.GetCases(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, fixture.BO, cases[0].BO)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupabaseProvider_GetCaseByID(t *testing.T) {
	p, mock := newSupabaseProvider(t)

	fixture := testutil.PopulatedCaseFixture()
	doc, err := json.Marshal(fixture)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT document FROM cases WHERE id = \$1`).
		WithArgs(fixture.ID).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(doc))

	got, err := p.GetCaseByID(context.Background(), fixture.ID)
	require.NoError(t, err)
	assert.Equal(t, fixture.BO, got.BO)
	require.Len(t, got.Photos, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupabaseProvider_GetCaseByID_NotFound(t *testing.T) {
	p, mock := newSupabaseProvider(t)

	mock.ExpectQuery(`SELECT document FROM cases WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"document"}))

	_, err := p.GetCaseByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSupabaseProvider_CreateCase(t *testing.T) {
	p, mock := newSupabaseProvider(t)
	fixture := testutil.NewCaseFixture()

	mock.ExpectExec(`INSERT INTO cases`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, p.CreateCase(context.Background(), fixture))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupabaseProvider_UpdateCase_NotFound(t *testing.T) {
	p, mock := newSupabaseProvider(t)
	fixture := testutil.NewCaseFixture()

	mock.ExpectExec(`UPDATE cases SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := p.UpdateCase(context.Background(), fixture)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSupabaseProvider_DeleteCase(t *testing.T) {
	p, mock := newSupabaseProvider(t)

	mock.ExpectExec(`DELETE FROM cases WHERE id = \$1`).
		WithArgs("case-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, p.DeleteCase(context.Background(), "case-1"))

	mock.ExpectExec(`DELETE FROM cases WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := p.DeleteCase(context.Background(), "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
