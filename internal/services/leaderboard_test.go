package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTopKarmaExcludesRowsOutsideWindow(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	u1, u2 := f.user("user1"), f.user("user2")

	f.karmaAt(u1, 5, now.Add(-25*time.Hour))
	f.karmaAt(u1, 5, now.Add(-1*time.Hour))
	f.karmaAt(u2, 10, now.Add(-time.Minute))

	entries, err := f.board.TopKarma(context.Background(), now, 24, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, u2.ID, entries[0].User.ID)
	require.Equal(t, 10, entries[0].TotalKarma)
	require.Equal(t, u1.ID, entries[1].User.ID)
	require.Equal(t, 5, entries[1].TotalKarma)
}

func TestTopKarmaTruncatesToLimit(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	totals := []int{50, 30, 20, 15, 10, 5}
	for i, amount := range totals {
		f.karmaAt(f.user(fmt.Sprintf("user%d", i)), amount, now.Add(-time.Hour))
	}

	entries, err := f.board.TopKarma(context.Background(), now, 24, 5)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	require.Equal(t, []int{50, 30, 20, 15, 10}, lo.Map(entries, func(e LeaderboardEntry, _ int) int { return e.TotalKarma }))
	require.Equal(t, []int{1, 2, 3, 4, 5}, lo.Map(entries, func(e LeaderboardEntry, _ int) int { return e.Rank }))
	require.NotContains(t, lo.Map(entries, func(e LeaderboardEntry, _ int) string { return e.User.Username }), "user5")
}

func TestTopKarmaTieBreaksByUserID(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	a, b := f.user("a"), f.user("b")
	f.karmaAt(b, 7, now.Add(-time.Hour))
	f.karmaAt(a, 7, now.Add(-time.Hour))

	entries, err := f.board.TopKarma(context.Background(), now, 24, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, a.ID, entries[0].User.ID)
	require.Equal(t, b.ID, entries[1].User.ID)
}

func TestTopKarmaSumsSignedAmounts(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	u := f.user("u")
	f.karmaAt(u, 5, now.Add(-3*time.Hour))
	f.karmaAt(u, 1, now.Add(-2*time.Hour))
	f.karmaAt(u, -1, now.Add(-1*time.Hour))

	entries, err := f.board.TopKarma(context.Background(), now, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 5, entries[0].TotalKarma)
	require.Equal(t, 1, entries[0].Rank)
}

func TestTopKarmaEmpty(t *testing.T) {
	f := newFixture(t)
	entries, err := f.board.TopKarma(context.Background(), time.Now(), 24, 5)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NotNil(t, entries)
}
