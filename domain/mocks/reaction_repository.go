package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitecomments/domain"
)

// ReactionRepository is a mock type for domain.ReactionRepository
type ReactionRepository struct {
	mock.Mock
}

func (m *ReactionRepository) Toggle(ctx context.Context, commentID, userID int64, rt domain.ReactionType) (bool, error) {
	args := m.Called(ctx, commentID, userID, rt)
	return args.Bool(0), args.Error(1)
}

func (m *ReactionRepository) FetchForComments(ctx context.Context, commentIDs []int64) ([]domain.Reaction, error) {
	args := m.Called(ctx, commentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reaction), args.Error(1)
}
