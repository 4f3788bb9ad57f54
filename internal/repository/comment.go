package repository

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"sitecomments/domain"
)

// commentRepository 协调层，协调缓存和数据库。Counts are served from the
// cache when possible; rebuilds are deduplicated with singleflight so a
// hot page does not stampede the COUNT query.
type commentRepository struct {
	db         domain.CommentRepository
	countCache domain.CommentCountCache
	countGroup singleflight.Group
}

var _ domain.CommentRepository = (*commentRepository)(nil)

// NewCommentRepository 创建协调层repository
func NewCommentRepository(db domain.CommentRepository, countCache domain.CommentCountCache) *commentRepository {
	return &commentRepository{
		db:         db,
		countCache: countCache,
	}
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	if err := r.db.Store(ctx, c); err != nil {
		return err
	}
	if c.ParentID == nil {
		r.invalidateCount(ctx, c.PageSlug)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return r.db.GetByID(ctx, id)
}

func (r *commentRepository) FetchRoots(ctx context.Context, pageSlug string, offset, limit int) ([]*domain.Comment, error) {
	return r.db.FetchRoots(ctx, pageSlug, offset, limit)
}

// CountRoots 获取一级评论总数，优先走缓存
func (r *commentRepository) CountRoots(ctx context.Context, pageSlug string) (int64, error) {
	count, err := r.countCache.GetRootCount(ctx, pageSlug)
	if err == nil {
		return count, nil
	}

	// 缓存未命中，使用singleflight避免缓存击穿
	result, err, _ := r.countGroup.Do(pageSlug, func() (interface{}, error) {
		count, err := r.db.CountRoots(ctx, pageSlug)
		if err != nil {
			return int64(0), err
		}
		if err := r.countCache.SetRootCount(ctx, pageSlug, count); err != nil {
			logrus.Warnf("failed to cache root count for slug %q: %v", pageSlug, err)
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

func (r *commentRepository) FetchReplies(ctx context.Context, parentIDs []int64) ([]*domain.Comment, error) {
	return r.db.FetchReplies(ctx, parentIDs)
}

func (r *commentRepository) SoftDelete(ctx context.Context, id int64) error {
	target, err := r.db.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.SoftDelete(ctx, id); err != nil {
		return err
	}
	if target.ParentID == nil {
		r.invalidateCount(ctx, target.PageSlug)
	}
	return nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	return r.db.UpdateContent(ctx, id, content)
}

func (r *commentRepository) PurgeDeletedThreads(ctx context.Context, cutoff time.Time) ([]int64, error) {
	return r.db.PurgeDeletedThreads(ctx, cutoff)
}

func (r *commentRepository) FetchIDs(ctx context.Context, cursor int64, limit int) ([]int64, error) {
	return r.db.FetchIDs(ctx, cursor, limit)
}

// invalidateCount 缓存失效失败只记录日志，下一次读取会走DB重建
func (r *commentRepository) invalidateCount(ctx context.Context, pageSlug string) {
	if err := r.countCache.InvalidateRootCount(ctx, pageSlug); err != nil {
		logrus.Warnf("failed to invalidate root count for slug %q: %v", pageSlug, err)
	}
}
