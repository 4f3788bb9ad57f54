package response

import (
	"time"

	"sitecomments/domain"
)

const DateTimeFormat = time.RFC3339

type ReactionAggregate struct {
	Counts        map[string]int64 `json:"counts"`
	ViewerApplied []string         `json:"viewer_applied"`
}

func NewReactionAggregateFromDomain(agg *domain.ReactionAggregate) *ReactionAggregate {
	if agg == nil {
		return nil
	}
	counts := make(map[string]int64, len(agg.Counts))
	for rt, n := range agg.Counts {
		counts[string(rt)] = n
	}
	applied := make([]string, 0, len(agg.ViewerApplied))
	for _, rt := range agg.ViewerApplied {
		applied = append(applied, string(rt))
	}
	return &ReactionAggregate{
		Counts:        counts,
		ViewerApplied: applied,
	}
}

type Comment struct {
	ID        int64  `json:"id"`
	PageSlug  string `json:"page_slug"`
	Content   string `json:"content"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	ParentID  *int64 `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at"`
	EditedAt  string `json:"edited_at,omitempty"`
	Deleted   bool   `json:"deleted,omitempty"`

	Reactions *ReactionAggregate `json:"reactions,omitempty"`
	// Replies 子评论列表
	Replies []*Comment `json:"replies,omitempty"`
}

func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	res := &Comment{
		ID:        c.ID,
		PageSlug:  c.PageSlug,
		Content:   c.Content,
		UserID:    c.UserID,
		Username:  c.Username,
		AvatarURL: c.AvatarURL,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
		Deleted:   c.Deleted,
		Reactions: NewReactionAggregateFromDomain(c.Reactions),
	}
	if c.EditedAt != nil {
		res.EditedAt = c.EditedAt.Format(DateTimeFormat)
	}
	return res
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	replies := make([]*Comment, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, NewSingleCommentFromDomain(r))
	}
	root.Replies = replies
	return root
}

type Pagination struct {
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	TotalComments int64 `json:"totalComments"`
	HasMore       bool  `json:"hasMore"`
}

type CommentPage struct {
	Comments   []*Comment `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

func NewCommentPageFromDomain(p domain.CommentPage) CommentPage {
	comments := make([]*Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, NewCommentFromDomain(c))
	}
	return CommentPage{
		Comments: comments,
		Pagination: Pagination{
			Page:          p.Pagination.Page,
			TotalPages:    p.Pagination.TotalPages,
			TotalComments: p.Pagination.TotalComments,
			HasMore:       p.Pagination.HasMore,
		},
	}
}

type ReactionState struct {
	CommentID int64              `json:"comment_id"`
	Type      string             `json:"reaction_type"`
	Active    bool               `json:"active"`
	Reactions *ReactionAggregate `json:"reactions"`
}

func NewReactionStateFromDomain(st domain.ReactionState) ReactionState {
	return ReactionState{
		CommentID: st.CommentID,
		Type:      string(st.Type),
		Active:    st.Active,
		Reactions: NewReactionAggregateFromDomain(st.Aggregate),
	}
}
