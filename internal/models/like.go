package models

import (
	"time"
)

// TargetKind 区分点赞/积分的对象类型，只允许 post 和 comment 两种
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Target identifies the post or comment a Like or KarmaTransaction refers to.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   uint       `json:"id"`
}

func PostTarget(id uint) Target {
	return Target{Kind: TargetPost, ID: id}
}

func CommentTarget(id uint) Target {
	return Target{Kind: TargetComment, ID: id}
}

// Like 点赞记录，(user_id, target_kind, target_id) 唯一
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_like_slot,priority:1" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TargetKind TargetKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_like_slot,priority:2;index:idx_like_target,priority:1" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_like_slot,priority:3;index:idx_like_target,priority:2" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (l Like) Target() Target {
	return Target{Kind: l.TargetKind, ID: l.TargetID}
}
