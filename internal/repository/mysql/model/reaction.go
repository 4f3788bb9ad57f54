package model

import (
	"time"

	"sitecomments/domain"
)

// Reaction is one (comment, user, type) row. The composite unique index
// is the backstop against concurrent double-toggles.
type Reaction struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CommentID    int64     `gorm:"column:comment_id;not null;index;uniqueIndex:idx_comment_user_type,priority:1"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_comment_user_type,priority:2"`
	ReactionType string    `gorm:"column:reaction_type;size:16;not null;uniqueIndex:idx_comment_user_type,priority:3"`
	CreatedAt    time.Time `gorm:"type:datetime"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (m *Reaction) ToDomain() domain.Reaction {
	return domain.Reaction{
		CommentID: m.CommentID,
		UserID:    m.UserID,
		Type:      domain.ReactionType(m.ReactionType),
		CreatedAt: m.CreatedAt,
	}
}
