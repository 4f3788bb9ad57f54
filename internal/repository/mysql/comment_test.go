package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"sitecomments/domain"
	mysqlRepo "sitecomments/internal/repository/mysql"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

var commentColumns = []string{
	"id", "page_slug", "content", "user_id", "username", "avatar_url",
	"parent_id", "created_at", "edited_at", "deleted_at",
}

func TestFetchRootsMapsRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)

	now := time.Now()
	deletedAt := now.Add(-time.Hour)
	rows := sqlmock.NewRows(commentColumns).
		AddRow(2, "foo", "newest", 1, "ann", "", nil, now, nil, nil).
		AddRow(1, "foo", "tombstoned", 2, "bob", "", nil, now.Add(-time.Minute), nil, deletedAt)
	mock.ExpectQuery("SELECT (.+) FROM `comments`").WillReturnRows(rows)

	res, err := repo.FetchRoots(context.Background(), "foo", 0, 10)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(2), res[0].ID)
	assert.False(t, res[0].Deleted)
	assert.True(t, res[1].Deleted)
	require.NotNil(t, res[1].DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountRoots(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)

	mock.ExpectQuery("SELECT count(.+) FROM `comments`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	count, err := repo.CountRoots(context.Background(), "foo")

	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
}

func TestStoreTopLevelInsertsWithoutParentCheck(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)

	mock.ExpectExec("INSERT INTO `comments`").
		WillReturnResult(sqlmock.NewResult(42, 1))

	c := &domain.Comment{PageSlug: "foo", Content: "hello", UserID: 1, Username: "ann", CreatedAt: time.Now()}
	err := repo.Store(context.Background(), c)

	require.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReplyLocksParentAndInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)
	parentID := int64(7)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `comments` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(7, "foo", "parent", 2, "bob", "", nil, time.Now(), nil, nil))
	mock.ExpectExec("INSERT INTO `comments`").
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()

	c := &domain.Comment{PageSlug: "foo", Content: "a reply", UserID: 1, Username: "ann", ParentID: &parentID, CreatedAt: time.Now()}
	err := repo.Store(context.Background(), c)

	require.NoError(t, err)
	assert.Equal(t, int64(43), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReplyToReplyRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)
	parentID := int64(7)
	grandparent := int64(3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `comments` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(7, "foo", "already a reply", 2, "bob", "", grandparent, time.Now(), nil, nil))
	mock.ExpectRollback()

	c := &domain.Comment{PageSlug: "foo", Content: "nested", UserID: 1, Username: "ann", ParentID: &parentID, CreatedAt: time.Now()}
	err := repo.Store(context.Background(), c)

	assert.ErrorIs(t, err, domain.ErrReplyToReply)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReplyMissingParent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)
	parentID := int64(99)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `comments` (.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(commentColumns))
	mock.ExpectRollback()

	c := &domain.Comment{PageSlug: "foo", Content: "orphan", UserID: 1, Username: "ann", ParentID: &parentID, CreatedAt: time.Now()}
	err := repo.Store(context.Background(), c)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)

	mock.ExpectExec("UPDATE `comments` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SoftDelete(context.Background(), 10)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)

	mock.ExpectExec("UPDATE `comments` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), 10)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchRepliesEmptyInput(t *testing.T) {
	db, _ := newMockDB(t)
	repo := mysqlRepo.NewCommentRepository(db)

	res, err := repo.FetchReplies(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, res)
}
