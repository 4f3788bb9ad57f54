package domain

import (
	"context"
	"time"
)

// ReactionType is the closed emoji vocabulary a comment can receive.
type ReactionType string

const (
	ReactionThumbsUp   ReactionType = "+1"
	ReactionThumbsDown ReactionType = "-1"
	ReactionLaugh      ReactionType = "laugh"
	ReactionHooray     ReactionType = "hooray"
	ReactionConfused   ReactionType = "confused"
	ReactionHeart      ReactionType = "heart"
	ReactionRocket     ReactionType = "rocket"
	ReactionEyes       ReactionType = "eyes"
)

// ReactionTypes lists every valid reaction type.
var ReactionTypes = []ReactionType{
	ReactionThumbsUp,
	ReactionThumbsDown,
	ReactionLaugh,
	ReactionHooray,
	ReactionConfused,
	ReactionHeart,
	ReactionRocket,
	ReactionEyes,
}

// Valid reports whether rt belongs to the closed vocabulary.
func (rt ReactionType) Valid() bool {
	for _, t := range ReactionTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Reaction is one (comment, user, type) fact. Presence is the only
// state; toggling deletes or inserts the row.
type Reaction struct {
	CommentID int64        `json:"comment_id"`
	UserID    int64        `json:"user_id"`
	Type      ReactionType `json:"reaction_type"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReactionAggregate is the per-comment view: distinct-user counts per
// type plus the types the requesting user holds. Counts are always
// derived from the rows, never stored.
type ReactionAggregate struct {
	Counts        map[ReactionType]int64 `json:"counts"`
	ViewerApplied []ReactionType         `json:"viewer_applied"`
}

// NewReactionAggregate returns an empty aggregate.
func NewReactionAggregate() *ReactionAggregate {
	return &ReactionAggregate{
		Counts:        make(map[ReactionType]int64),
		ViewerApplied: []ReactionType{},
	}
}

// ReactionState is the result of a toggle: whether the caller now holds
// the reaction, and the refreshed aggregate for the comment.
type ReactionState struct {
	CommentID int64              `json:"comment_id"`
	Type      ReactionType       `json:"reaction_type"`
	Active    bool               `json:"active"`
	Aggregate *ReactionAggregate `json:"reactions"`
}

// ReactionRepository 数据存取接口
type ReactionRepository interface {
	// Toggle inserts the (commentID, userID, rt) row when absent and
	// deletes it when present, atomically per triple. Returns whether
	// the reaction is held after the call.
	Toggle(ctx context.Context, commentID, userID int64, rt ReactionType) (bool, error)

	// FetchForComments returns every reaction row for the id set in one
	// query; aggregation happens in the usecase.
	FetchForComments(ctx context.Context, commentIDs []int64) ([]Reaction, error)
}
