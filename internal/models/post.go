package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	ContentHTML  string `gorm:"-" json:"content_html"`
	LikeCount    int    `gorm:"-" json:"like_count"`
	CommentCount int    `gorm:"-" json:"comment_count"`
	IsLiked      bool   `gorm:"-" json:"is_liked"`
}
