package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitecomments/domain"
	"sitecomments/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// Store inserts the comment. Replies validate their parent inside the
// same transaction, with the parent row locked, so a parent deleted
// between check and insert cannot slip through.
func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	row := model.NewCommentFromDomain(comment)

	if comment.ParentID == nil {
		if err := c.DB.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}
		comment.ID = row.ID
		comment.CreatedAt = row.CreatedAt
		return nil
	}

	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent model.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&parent, "id = ?", *comment.ParentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		if parent.ParentID != nil {
			return domain.ErrReplyToReply
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return err
	}
	comment.ID = row.ID
	comment.CreatedAt = row.CreatedAt
	return nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, domain.ErrNotFound
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

// rootVisible keeps live roots plus deleted roots that still shelter a
// live reply; the latter are rendered as tombstones upstream.
const rootVisible = "deleted_at IS NULL OR EXISTS (SELECT 1 FROM comments r WHERE r.parent_id = comments.id AND r.deleted_at IS NULL)"

func (c *commentRepository) FetchRoots(ctx context.Context, pageSlug string, offset, limit int) ([]*domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).Unscoped().
		Where("page_slug = ? AND parent_id IS NULL", pageSlug).
		Where(rootVisible).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) CountRoots(ctx context.Context, pageSlug string) (int64, error) {
	var count int64
	err := c.DB.WithContext(ctx).Unscoped().Model(&model.Comment{}).
		Where("page_slug = ? AND parent_id IS NULL", pageSlug).
		Where(rootVisible).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentIDs []int64) ([]*domain.Comment, error) {
	if len(parentIDs) == 0 {
		return []*domain.Comment{}, nil
	}
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) SoftDelete(ctx context.Context, id int64) error {
	result := c.DB.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *commentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	now := time.Now()
	result := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "edited_at": now})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return c.GetByID(ctx, id)
}

// PurgeDeletedThreads removes threads where the root and every reply
// were soft-deleted before cutoff. Threads with any live reply are left
// alone, so orphaned replies keep their tombstoned parent.
func (c *commentRepository) PurgeDeletedThreads(ctx context.Context, cutoff time.Time) ([]int64, error) {
	var rootIDs []int64
	err := c.DB.WithContext(ctx).Unscoped().Model(&model.Comment{}).
		Where("parent_id IS NULL AND deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM comments r WHERE r.parent_id = comments.id AND (r.deleted_at IS NULL OR r.deleted_at >= ?))", cutoff).
		Pluck("id", &rootIDs).Error
	if err != nil {
		return nil, err
	}
	if len(rootIDs) == 0 {
		return []int64{}, nil
	}

	err = c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("parent_id IN ?", rootIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id IN ?", rootIDs).Delete(&model.Comment{}).Error
	})
	if err != nil {
		return nil, err
	}
	return rootIDs, nil
}

func (c *commentRepository) FetchIDs(ctx context.Context, cursor int64, limit int) ([]int64, error) {
	var ids []int64
	err := c.DB.WithContext(ctx).Unscoped().Model(&model.Comment{}).
		Where("id > ?", cursor).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
