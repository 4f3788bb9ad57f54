package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// CommentCountCache is a mock type for domain.CommentCountCache
type CommentCountCache struct {
	mock.Mock
}

func (m *CommentCountCache) GetRootCount(ctx context.Context, pageSlug string) (int64, error) {
	args := m.Called(ctx, pageSlug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentCountCache) SetRootCount(ctx context.Context, pageSlug string, count int64) error {
	args := m.Called(ctx, pageSlug, count)
	return args.Error(0)
}

func (m *CommentCountCache) InvalidateRootCount(ctx context.Context, pageSlug string) error {
	args := m.Called(ctx, pageSlug)
	return args.Error(0)
}
