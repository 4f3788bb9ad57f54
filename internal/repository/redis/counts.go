package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"sitecomments/domain"
)

const (
	KeyRootCount = "comments:count:%s"

	rootCountTTL = 10 * time.Minute
)

type commentCountCache struct {
	client *redis.Client
}

var _ domain.CommentCountCache = (*commentCountCache)(nil)

func NewCommentCountCache(client *redis.Client) *commentCountCache {
	return &commentCountCache{
		client,
	}
}

func (c *commentCountCache) GetRootCount(ctx context.Context, pageSlug string) (int64, error) {
	key := fmt.Sprintf(KeyRootCount, pageSlug)
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *commentCountCache) SetRootCount(ctx context.Context, pageSlug string, count int64) error {
	key := fmt.Sprintf(KeyRootCount, pageSlug)
	return c.client.Set(ctx, key, count, rootCountTTL).Err()
}

func (c *commentCountCache) InvalidateRootCount(ctx context.Context, pageSlug string) error {
	key := fmt.Sprintf(KeyRootCount, pageSlug)
	return c.client.Del(ctx, key).Err()
}
