package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecomments/domain"
	"sitecomments/domain/mocks"
	"sitecomments/internal/repository"
)

func TestCountRootsCacheHitSkipsDB(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCountCache)
	repo := repository.NewCommentRepository(db, cache)

	cache.On("GetRootCount", mock.Anything, "foo").Return(int64(12), nil)

	count, err := repo.CountRoots(context.Background(), "foo")

	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	db.AssertNotCalled(t, "CountRoots", mock.Anything, mock.Anything)
}

func TestCountRootsCacheMissRebuilds(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCountCache)
	repo := repository.NewCommentRepository(db, cache)

	cache.On("GetRootCount", mock.Anything, "foo").Return(int64(0), errors.New("redis: nil"))
	db.On("CountRoots", mock.Anything, "foo").Return(int64(3), nil)
	cache.On("SetRootCount", mock.Anything, "foo", int64(3)).Return(nil)

	count, err := repo.CountRoots(context.Background(), "foo")

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	cache.AssertExpectations(t)
}

func TestStoreTopLevelInvalidatesCount(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCountCache)
	repo := repository.NewCommentRepository(db, cache)

	c := &domain.Comment{PageSlug: "foo", Content: "hi"}
	db.On("Store", mock.Anything, c).Return(nil)
	cache.On("InvalidateRootCount", mock.Anything, "foo").Return(nil)

	require.NoError(t, repo.Store(context.Background(), c))
	cache.AssertExpectations(t)
}

func TestStoreReplyLeavesCountAlone(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCountCache)
	repo := repository.NewCommentRepository(db, cache)

	parentID := int64(1)
	c := &domain.Comment{PageSlug: "foo", Content: "hi", ParentID: &parentID}
	db.On("Store", mock.Anything, c).Return(nil)

	require.NoError(t, repo.Store(context.Background(), c))
	cache.AssertNotCalled(t, "InvalidateRootCount", mock.Anything, mock.Anything)
}

func TestSoftDeleteRootInvalidatesCount(t *testing.T) {
	db := new(mocks.CommentRepository)
	cache := new(mocks.CommentCountCache)
	repo := repository.NewCommentRepository(db, cache)

	db.On("GetByID", mock.Anything, int64(10)).Return(&domain.Comment{ID: 10, PageSlug: "foo"}, nil)
	db.On("SoftDelete", mock.Anything, int64(10)).Return(nil)
	cache.On("InvalidateRootCount", mock.Anything, "foo").Return(nil)

	require.NoError(t, repo.SoftDelete(context.Background(), 10))
	cache.AssertExpectations(t)
}

func TestPageVerifyClampsInput(t *testing.T) {
	page, pageSize := -3, 999
	repository.PageVerify(&page, &pageSize)
	assert.Equal(t, 1, page)
	assert.Equal(t, repository.DefaultPageSize, pageSize)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, repository.TotalPages(25, 10))
	assert.Equal(t, 1, repository.TotalPages(10, 10))
	assert.Equal(t, 0, repository.TotalPages(0, 10))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, repository.Offset(1, 10))
	assert.Equal(t, 20, repository.Offset(3, 10))
}
