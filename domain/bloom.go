package domain

import "context"

type BloomRepository interface {
	// Add 将评论 ID 加入过滤器
	Add(ctx context.Context, id int64) error

	// Exists 检查评论 ID 是否可能存在
	// 返回 true: 可能存在 (需要进一步查 DB)
	// 返回 false: 绝对不存在 (直接返回 404)
	Exists(ctx context.Context, id int64) (bool, error)

	// BulkAdd 用于启动时批量加载已有评论 ID
	BulkAdd(ctx context.Context, ids []int64) error
}
