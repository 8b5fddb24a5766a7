package services

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"karmafeed/internal/db/dbtest"
	"karmafeed/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	t        *testing.T
	db       *gorm.DB
	likes    *LikeService
	comments *CommentService
	posts    *PostService
	board    *LeaderboardService
	karma    *KarmaService
	accounts *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := dbtest.New(t)
	comments := NewCommentService(database, discardLogger)
	return &fixture{
		t:        t,
		db:       database,
		likes:    NewLikeService(database, discardLogger),
		comments: comments,
		posts:    NewPostService(database, comments, discardLogger),
		board:    NewLeaderboardService(database),
		karma:    NewKarmaService(database),
		accounts: NewAccountService(database, discardLogger),
	}
}

func (f *fixture) user(name string) models.User {
	f.t.Helper()
	u := models.User{Username: name, Password: "x"}
	require.NoError(f.t, f.db.Create(&u).Error)
	return u
}

func (f *fixture) post(author models.User) models.Post {
	f.t.Helper()
	p := models.Post{UserID: author.ID, Content: fmt.Sprintf("post by %s", author.Username)}
	require.NoError(f.t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) comment(post models.Post, author models.User, parent *models.Comment) models.Comment {
	f.t.Helper()
	c := models.Comment{PostID: post.ID, UserID: author.ID, Content: "comment"}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(f.t, f.db.Create(&c).Error)
	return c
}

func (f *fixture) karmaAt(user models.User, amount int, at time.Time) {
	f.t.Helper()
	row := models.KarmaTransaction{
		UserID:     user.ID,
		Amount:     amount,
		TargetKind: models.TargetPost,
		TargetID:   1,
		CreatedAt:  at,
	}
	require.NoError(f.t, f.db.Create(&row).Error)
}

func (f *fixture) count(model any, query string, args ...any) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
