package models

import (
	"time"
)

// KarmaTransaction 积分流水，只追加；取消点赞时删除最近一条匹配记录
type KarmaTransaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index:idx_karma_user_created,priority:1" json:"user_id"` // 被点赞内容的作者
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Amount     int        `gorm:"not null" json:"amount"` // +5 post, +1 comment
	TargetKind TargetKind `gorm:"type:varchar(10);not null;index:idx_karma_target,priority:1" json:"target_kind"`
	TargetID   uint       `gorm:"not null;index:idx_karma_target,priority:2" json:"target_id"`
	CreatedAt  time.Time  `gorm:"index;index:idx_karma_user_created,priority:2" json:"created_at"`
}

func (k KarmaTransaction) Target() Target {
	return Target{Kind: k.TargetKind, ID: k.TargetID}
}
