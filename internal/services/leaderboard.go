package services

import (
	"context"
	"time"

	"karmafeed/internal/metrics"
	"karmafeed/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	DefaultLeaderboardWindowHours = 24
	DefaultLeaderboardLimit       = 5
)

type LeaderboardEntry struct {
	User       models.User `json:"user"`
	TotalKarma int         `json:"total_karma"`
	Rank       int         `json:"rank"`
}

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// TopKarma sums ledger rows created within windowHours before now, per user,
// and returns the top limit users. Equal sums are ordered by user id ascending.
func (s *LeaderboardService) TopKarma(ctx context.Context, now time.Time, windowHours, limit int) ([]LeaderboardEntry, error) {
	start := time.Now()
	defer func() { metrics.ObserveLeaderboard(time.Since(start)) }()

	if windowHours <= 0 {
		windowHours = DefaultLeaderboardWindowHours
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	cutoff := now.Add(-time.Duration(windowHours) * time.Hour)

	type karmaTotal struct {
		UserID     uint
		TotalKarma int
	}
	var totals []karmaTotal
	err := s.db.WithContext(ctx).Model(&models.KarmaTransaction{}).
		Select("user_id, SUM(amount) AS total_karma").
		Where("created_at >= ?", cutoff).
		Group("user_id").
		Order("total_karma DESC, user_id ASC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return []LeaderboardEntry{}, nil
	}

	var users []models.User
	userIDs := lo.Map(totals, func(t karmaTotal, _ int) uint { return t.UserID })
	if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := lo.KeyBy(users, func(u models.User) uint { return u.ID })

	// rank follows position in the truncated list
	entries := make([]LeaderboardEntry, 0, len(totals))
	for i, t := range totals {
		user, ok := byID[t.UserID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{User: user, TotalKarma: t.TotalKarma, Rank: i + 1})
	}
	return entries, nil
}
