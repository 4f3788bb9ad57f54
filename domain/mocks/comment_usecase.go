package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitecomments/domain"
)

// CommentUsecase is a mock type for domain.CommentUsecase
type CommentUsecase struct {
	mock.Mock
}

func (m *CommentUsecase) List(ctx context.Context, viewer *domain.Identity, pageSlug string, page, pageSize int) domain.CommentPage {
	args := m.Called(ctx, viewer, pageSlug, page, pageSize)
	return args.Get(0).(domain.CommentPage)
}

func (m *CommentUsecase) Create(ctx context.Context, identity *domain.Identity, pageSlug, content string, parentID *int64) (*domain.Comment, error) {
	args := m.Called(ctx, identity, pageSlug, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentUsecase) ToggleReaction(ctx context.Context, identity *domain.Identity, commentID int64, rt domain.ReactionType) (domain.ReactionState, error) {
	args := m.Called(ctx, identity, commentID, rt)
	return args.Get(0).(domain.ReactionState), args.Error(1)
}

func (m *CommentUsecase) Delete(ctx context.Context, identity *domain.Identity, commentID int64) error {
	args := m.Called(ctx, identity, commentID)
	return args.Error(0)
}

func (m *CommentUsecase) Edit(ctx context.Context, identity *domain.Identity, commentID int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, identity, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentUsecase) InitBloomFilter(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
