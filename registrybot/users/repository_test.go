package users

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

const insertQuery = `^INSERT INTO users \(name, pass_hash\) VALUES \(\$1, \$2\)$`

func TestRepositoryAdd(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).
		WithArgs("alice", Digest("abcd1234")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Add(context.Background(), "alice", Digest("abcd1234"))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryAddNameConflict(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).
		WithArgs("alice", Digest("abcd1234")).
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "users_name_key"})

	err := repo.Add(context.Background(), "alice", Digest("abcd1234"))
	assert.ErrorIs(t, err, ErrNameTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryAddStoreError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).
		WithArgs("alice", Digest("abcd1234")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Add(context.Background(), "alice", Digest("abcd1234"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNameTaken)
}

func TestRepositoryNameTaken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `^SELECT EXISTS \(SELECT 1 FROM users WHERE name = \$1\)$`
	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(q).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := repo.NameTaken(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepositoryListOrder(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT id, name FROM users ORDER BY id$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "alice").
			AddRow(int64(2), "bob").
			AddRow(int64(3), "carol"))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []User{
		{ID: 1, Name: "alice"},
		{ID: 2, Name: "bob"},
		{ID: 3, Name: "carol"},
	}, list)
}
