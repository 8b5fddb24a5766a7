package services

import (
	"context"
	"fmt"
	"log/slog"

	"karmafeed/internal/metrics"
	"karmafeed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLikeService(db *gorm.DB, logger *slog.Logger) *LikeService {
	return &LikeService{db: db, logger: logger.With("component", "services.LikeService")}
}

// Toggle likes the target if the user has not liked it yet, otherwise
// removes the like. The karma row for the target's author is written or
// removed in the same transaction.
func (s *LikeService) Toggle(ctx context.Context, userID uint, target models.Target) (liked bool, err error) {
	defer func() { metrics.ObserveToggle(string(target.Kind), liked, err) }()

	if userID == 0 {
		return false, ErrUnauthorized
	}
	if !target.Kind.Valid() {
		return false, fmt.Errorf("%w: unknown target kind %q", ErrValidation, target.Kind)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLikeSlot(tx, userID, target); err != nil {
			return err
		}

		authorID, err := targetAuthor(tx, target)
		if err != nil {
			return err
		}

		like := models.Like{UserID: userID, TargetKind: target.Kind, TargetID: target.ID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			liked = true
			return grantKarma(tx, authorID, target)
		}

		if err := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return revokeKarma(tx, authorID, target)
	})
	if err != nil {
		return false, err
	}

	s.logger.DebugContext(ctx, "like toggled", "user_id", userID, "target_kind", target.Kind, "target_id", target.ID, "liked", liked)
	return liked, nil
}

// lockLikeSlot serializes toggles for one (user, target) on PostgreSQL. The
// unique index still guards dialects without advisory locks.
func lockLikeSlot(tx *gorm.DB, userID uint, target models.Target) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	key := fmt.Sprintf("like:%d:%s:%d", userID, target.Kind, target.ID)
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error
}

func targetAuthor(tx *gorm.DB, target models.Target) (uint, error) {
	switch target.Kind {
	case models.TargetPost:
		var post models.Post
		if err := tx.Select("id", "user_id").First(&post, target.ID).Error; err != nil {
			return 0, notFound(err, "post", target.ID)
		}
		return post.UserID, nil
	case models.TargetComment:
		var comment models.Comment
		if err := tx.Select("id", "user_id").First(&comment, target.ID).Error; err != nil {
			return 0, notFound(err, "comment", target.ID)
		}
		return comment.UserID, nil
	}
	return 0, fmt.Errorf("%w: unknown target kind %q", ErrValidation, target.Kind)
}

// likeCounts 批量统计点赞数
func likeCounts(db *gorm.DB, kind models.TargetKind, ids []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	type countResult struct {
		TargetID uint
		Count    int
	}
	var results []countResult
	err := db.Model(&models.Like{}).
		Select("target_id, COUNT(*) AS count").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		counts[r.TargetID] = r.Count
	}
	return counts, nil
}

// likedBy returns which of ids the user has liked.
func likedBy(db *gorm.DB, userID uint, kind models.TargetKind, ids []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if userID == 0 || len(ids) == 0 {
		return liked, nil
	}
	var targetIDs []uint
	err := db.Model(&models.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id IN ?", userID, kind, ids).
		Pluck("target_id", &targetIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range targetIDs {
		liked[id] = true
	}
	return liked, nil
}

// deleteLikes removes likes pointing at the given targets; karma stays in the ledger.
func deleteLikes(tx *gorm.DB, kind models.TargetKind, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&models.Like{}).Error
}
