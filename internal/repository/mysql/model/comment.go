package model

import (
	"time"

	"gorm.io/gorm"

	"sitecomments/domain"
)

type Comment struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	PageSlug  string         `gorm:"column:page_slug;size:191;not null;index:idx_slug_parent_created,priority:1"`
	Content   string         `gorm:"type:text;not null"`
	UserID    int64          `gorm:"column:user_id;not null"`
	Username  string         `gorm:"size:191;not null"`
	AvatarURL string         `gorm:"column:avatar_url;size:512"`
	ParentID  *int64         `gorm:"column:parent_id;index;index:idx_slug_parent_created,priority:2"`
	CreatedAt time.Time      `gorm:"type:datetime;index:idx_slug_parent_created,priority:3"`
	EditedAt  *time.Time     `gorm:"column:edited_at;type:datetime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	m := &Comment{
		ID:        c.ID,
		PageSlug:  c.PageSlug,
		Content:   c.Content,
		UserID:    c.UserID,
		Username:  c.Username,
		AvatarURL: c.AvatarURL,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		EditedAt:  c.EditedAt,
	}
	if c.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	}
	return m
}

func (m *Comment) ToDomain() domain.Comment {
	c := domain.Comment{
		ID:        m.ID,
		PageSlug:  m.PageSlug,
		Content:   m.Content,
		UserID:    m.UserID,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
		ParentID:  m.ParentID,
		CreatedAt: m.CreatedAt,
		EditedAt:  m.EditedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		c.DeletedAt = &t
		c.Deleted = true
	}
	return c
}
