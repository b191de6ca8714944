package repository

import (
	"context"
	"errors"
	"testing"

	"postsvc/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockRepo wires the repository to sqlmock so store failures can be driven
// without a database.
func newMockRepo(t *testing.T, store *recordingStore) (PostRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewPostRepository(db, store), mock
}

func TestReadStatementError(t *testing.T) {
	repo, mock := newMockRepo(t, nil)
	mock.ExpectQuery(`SELECT (.+) FROM "posts"`).
		WillReturnError(errors.New(`syntax error at or near "FORM"`))

	posts, err := repo.GetByUserID(context.Background(), "u1")
	assert.Nil(t, posts)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStatement)
	assert.NotErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestReadStoreUnavailable(t *testing.T) {
	repo, mock := newMockRepo(t, nil)
	mock.ExpectQuery(`SELECT (.+) FROM "posts"`).
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.GetByPostID(context.Background(), "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestCreateFailureReturnsZero(t *testing.T) {
	repo, mock := newMockRepo(t, nil)
	mock.ExpectExec(`INSERT INTO "posts"`).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	n, err := repo.Create(context.Background(), &models.Post{PostID: "p1", UserID: "u1"})
	assert.EqualValues(t, 0, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStatement)
}

func TestDeleteFailureSkipsCascade(t *testing.T) {
	store := &recordingStore{}
	repo, mock := newMockRepo(t, store)
	mock.ExpectExec(`DELETE FROM "posts"`).
		WillReturnError(context.DeadlineExceeded)

	n, err := repo.DeleteByPostID(context.Background(), "p1")
	assert.EqualValues(t, 0, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Empty(t, store.deleted)
}
