package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sitecomments/domain"
)

// CommentRepository is a mock type for domain.CommentRepository
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) FetchRoots(ctx context.Context, pageSlug string, offset, limit int) ([]*domain.Comment, error) {
	args := m.Called(ctx, pageSlug, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentRepository) CountRoots(ctx context.Context, pageSlug string) (int64, error) {
	args := m.Called(ctx, pageSlug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) FetchReplies(ctx context.Context, parentIDs []int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) PurgeDeletedThreads(ctx context.Context, cutoff time.Time) ([]int64, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *CommentRepository) FetchIDs(ctx context.Context, cursor int64, limit int) ([]int64, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
