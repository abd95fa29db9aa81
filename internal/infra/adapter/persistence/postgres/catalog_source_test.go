package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"syscall"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommender/internal/domain/entity"
	pg "movie-recommender/internal/infra/adapter/persistence/postgres"
	"movie-recommender/internal/resilience/circuitbreaker"
	"movie-recommender/tests/fixtures"
)

var selectCatalog = regexp.QuoteMeta("SELECT movie_id, title, similarity")

/* ─────────────────────────── Load Tests ─────────────────────────── */

func TestCatalogSource_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"movie_id", "title", "similarity"}).
		AddRow(int64(19995), "Avatar", "[1,0.25,0.5]").
		AddRow(int64(597), "Titanic", "[0.25,1,0.125]").
		AddRow(int64(24428), "The Avengers", "[0.5,0.125,1]")
	mock.ExpectQuery(selectCatalog).WillReturnRows(rows)

	got, err := pg.NewCatalogSource(db).Load(context.Background())
	require.NoError(t, err)

	want := &entity.Catalog{
		Movies: []entity.Movie{
			{ID: 19995, Title: "Avatar"},
			{ID: 597, Title: "Titanic"},
			{ID: 24428, Title: "The Avengers"},
		},
		Similarity: [][]float64{
			{1, 0.25, 0.5},
			{0.25, 1, 0.125},
			{0.5, 0.125, 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogSource_Load_EmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(selectCatalog).
		WillReturnRows(sqlmock.NewRows([]string{"movie_id", "title", "similarity"}))

	_, err = pg.NewCatalogSource(db).Load(context.Background())

	assert.True(t, errors.Is(err, entity.ErrStartupDataMissing))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogSource_Load_MissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(selectCatalog).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "movies" does not exist`})

	_, err = pg.NewCatalogSource(db).Load(context.Background())

	assert.True(t, errors.Is(err, entity.ErrStartupDataMissing))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogSource_Load_NonSquareMatrix(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"movie_id", "title", "similarity"}).
		AddRow(int64(1), "A", "[1,0.5]").
		AddRow(int64(2), "B", "[0.5]")
	mock.ExpectQuery(selectCatalog).WillReturnRows(rows)

	_, err = pg.NewCatalogSource(db).Load(context.Background())

	assert.True(t, errors.Is(err, entity.ErrValidationFailed))
}

func TestCatalogSource_Load_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"movie_id", "title", "similarity"}).
		AddRow(int64(1), "A", "not-a-vector")
	mock.ExpectQuery(selectCatalog).WillReturnRows(rows)

	_, err = pg.NewCatalogSource(db).Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan catalog row")
}

func TestCatalogSource_Load_RetriesTransientErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(selectCatalog).WillReturnError(syscall.ECONNREFUSED)
	mock.ExpectQuery(selectCatalog).WillReturnRows(
		sqlmock.NewRows([]string{"movie_id", "title", "similarity"}).
			AddRow(int64(1), "Solo", "[1]"))

	got, err := pg.NewCatalogSource(db).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, got.Size())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogSource_Load_ThroughCircuitBreaker(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(selectCatalog).WillReturnRows(
		sqlmock.NewRows([]string{"movie_id", "title", "similarity"}).
			AddRow(int64(1), "Solo", "[1]"))

	guarded := circuitbreaker.NewGuardedDB(db)
	got, err := pg.NewCatalogSource(guarded).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Solo", got.Movies[0].Title)
	assert.False(t, guarded.Breaker().IsOpen())
}

/* ─────────────────────────── ReplaceCatalog Tests ─────────────────────────── */

func TestReplaceCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	catalog := fixtures.NewTestCatalog()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies")).
		WillReturnResult(sqlmock.NewResult(0, 5))
	for i, m := range catalog.Movies {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO movies")).
			WithArgs(int64(i), m.ID, m.Title, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, pg.ReplaceCatalog(context.Background(), db, catalog))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCatalog_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO movies")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = pg.ReplaceCatalog(context.Background(), db, fixtures.NewTestCatalog())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Avatar")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCatalog_RejectsInvalidCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	bad := fixtures.NewTestCatalog(fixtures.WithSimilarity(nil))

	err = pg.ReplaceCatalog(context.Background(), db, bad)

	assert.True(t, errors.Is(err, entity.ErrValidationFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
