package services

import (
	"context"
	"errors"
	"time"

	"karmafeed/internal/models"

	"gorm.io/gorm"
)

// 积分值常量
const (
	KarmaPostLiked    = 5
	KarmaCommentLiked = 1
)

// KarmaFor returns the amount credited to an author when their content is liked.
func KarmaFor(kind models.TargetKind) int {
	if kind == models.TargetPost {
		return KarmaPostLiked
	}
	return KarmaCommentLiked
}

// grantKarma 在事务内追加一条积分流水
func grantKarma(tx *gorm.DB, authorID uint, target models.Target) error {
	entry := models.KarmaTransaction{
		UserID:     authorID,
		Amount:     KarmaFor(target.Kind),
		TargetKind: target.Kind,
		TargetID:   target.ID,
	}
	return tx.Create(&entry).Error
}

// revokeKarma deletes only the most recent matching row so older grants for
// the same target stay intact.
func revokeKarma(tx *gorm.DB, authorID uint, target models.Target) error {
	var entry models.KarmaTransaction
	err := tx.Where("user_id = ? AND target_kind = ? AND target_id = ? AND amount = ?",
		authorID, target.Kind, target.ID, KarmaFor(target.Kind)).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Delete(&entry).Error
}

type KarmaService struct {
	db *gorm.DB
}

func NewKarmaService(db *gorm.DB) *KarmaService {
	return &KarmaService{db: db}
}

// History 积分明细，最新在前
func (s *KarmaService) History(ctx context.Context, userID uint, limit int) ([]models.KarmaTransaction, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var logs []models.KarmaTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// Total sums a user's karma since the given time; zero time means all time.
func (s *KarmaService) Total(ctx context.Context, userID uint, since time.Time) (int, error) {
	var total int
	query := s.db.WithContext(ctx).Model(&models.KarmaTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	err := query.Scan(&total).Error
	return total, err
}
