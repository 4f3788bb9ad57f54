package domain

import (
	"context"
	"time"
)

// Comment domain model. Author fields are a snapshot taken at creation
// time and are never re-synced with the author's profile.
type Comment struct {
	ID        int64      `json:"id"`
	PageSlug  string     `json:"page_slug"`
	Content   string     `json:"content"`
	UserID    int64      `json:"user_id"`
	Username  string     `json:"username"`
	AvatarURL string     `json:"avatar_url"`
	ParentID  *int64     `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	DeletedAt *time.Time `json:"-"`

	// Deleted marks a tombstone emitted for a removed root that still
	// has live replies. Content and author fields are blanked.
	Deleted bool `json:"deleted,omitempty"`

	// Replies 子评论列表（只存在于一级评论上）
	Replies []*Comment `json:"replies,omitempty"`

	// Reactions 聚合结果，按需填充
	Reactions *ReactionAggregate `json:"reactions,omitempty"`
}

// IsReply reports whether the comment sits under a top-level comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Pagination metadata for a page of top-level comments.
type Pagination struct {
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	TotalComments int64 `json:"totalComments"`
	HasMore       bool  `json:"hasMore"`
}

// CommentPage is the denormalized view returned by List: top-level
// comments with replies and reaction aggregates attached.
type CommentPage struct {
	Comments   []*Comment `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	// List returns one page of top-level comments (newest first) with
	// replies (oldest first) and reaction aggregates attached. Store
	// failures degrade to an empty page instead of an error; an empty
	// slug short-circuits to the zeroed shape.
	List(ctx context.Context, viewer *Identity, pageSlug string, page, pageSize int) CommentPage

	// Create stores a new comment authored by identity. A non-nil
	// parentID must reference an existing top-level comment.
	Create(ctx context.Context, identity *Identity, pageSlug, content string, parentID *int64) (*Comment, error)

	// ToggleReaction flips the (comment, user, type) reaction row and
	// returns the refreshed state for that comment.
	ToggleReaction(ctx context.Context, identity *Identity, commentID int64, rt ReactionType) (ReactionState, error)

	// Delete soft-deletes a comment. Allowed for the author or for an
	// identity the PermissionOracle vouches for. Replies survive.
	Delete(ctx context.Context, identity *Identity, commentID int64) error

	// Edit replaces the content and stamps edited_at. Author only.
	Edit(ctx context.Context, identity *Identity, commentID int64, content string) (*Comment, error)

	// InitBloomFilter seeds the bloom filter with every stored comment id.
	InitBloomFilter(ctx context.Context) error
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	// Store inserts the comment. When c.ParentID is set, parent
	// validation and the insert run in one transaction; returns
	// ErrNotFound if the parent is missing or deleted, ErrReplyToReply
	// if the parent is itself a reply.
	Store(ctx context.Context, c *Comment) error

	// GetByID returns a non-deleted comment or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// FetchRoots 获取一页一级评论，按 created_at DESC
	FetchRoots(ctx context.Context, pageSlug string, offset, limit int) ([]*Comment, error)

	// CountRoots counts non-deleted top-level comments for the slug.
	CountRoots(ctx context.Context, pageSlug string) (int64, error)

	// FetchReplies 获取指定一级评论ID列表的所有子回复，按 created_at ASC
	FetchReplies(ctx context.Context, parentIDs []int64) ([]*Comment, error)

	// SoftDelete stamps deleted_at. Returns ErrNotFound when the row is
	// missing or already deleted.
	SoftDelete(ctx context.Context, id int64) error

	// UpdateContent replaces content and stamps edited_at.
	UpdateContent(ctx context.Context, id int64, content string) (*Comment, error)

	// PurgeDeletedThreads hard-deletes threads whose root and replies
	// were all soft-deleted before the cutoff. Returns purged root ids.
	PurgeDeletedThreads(ctx context.Context, cutoff time.Time) ([]int64, error)

	// FetchIDs pages through all comment ids (deleted included), for
	// seeding the bloom filter at startup.
	FetchIDs(ctx context.Context, cursor int64, limit int) ([]int64, error)
}

// CommentCountCache caches the per-slug total of top-level comments so
// hot pages do not repeat COUNT queries.
type CommentCountCache interface {
	GetRootCount(ctx context.Context, pageSlug string) (int64, error)
	SetRootCount(ctx context.Context, pageSlug string, count int64) error
	InvalidateRootCount(ctx context.Context, pageSlug string) error
}
