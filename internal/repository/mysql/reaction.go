package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"sitecomments/domain"
	"sitecomments/internal/repository/mysql/model"
)

type reactionRepository struct {
	DB *gorm.DB
}

var _ domain.ReactionRepository = (*reactionRepository)(nil)

func NewReactionRepository(db *gorm.DB) *reactionRepository {
	return &reactionRepository{
		DB: db,
	}
}

// Toggle flips the (comment, user, type) row inside one transaction.
// Delete-first keeps the happy paths symmetric; the composite unique
// index catches the remaining insert/insert race, which is reported as
// a successful toggle-on by the winner and a duplicate-key error here.
func (r *reactionRepository) Toggle(ctx context.Context, commentID, userID int64, rt domain.ReactionType) (bool, error) {
	var active bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(
			"comment_id = ? AND user_id = ? AND reaction_type = ?",
			commentID, userID, string(rt),
		).Delete(&model.Reaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			active = false
			return nil
		}

		row := &model.Reaction{
			CommentID:    commentID,
			UserID:       userID,
			ReactionType: string(rt),
			CreatedAt:    time.Now(),
		}
		if err := tx.Create(row).Error; err != nil {
			if isDuplicateKey(err) {
				return domain.ErrConflict
			}
			return err
		}
		active = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

func (r *reactionRepository) FetchForComments(ctx context.Context, commentIDs []int64) ([]domain.Reaction, error) {
	if len(commentIDs) == 0 {
		return []domain.Reaction{}, nil
	}
	var rows []model.Reaction
	err := r.DB.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Reaction, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].ToDomain())
	}
	return res, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "1062")
}
