package services

import (
	"context"
	"testing"

	"karmafeed/internal/models"

	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	post := f.post(author)

	root, err := f.comments.Create(context.Background(), post.ID, author.ID, "  first  ", nil)
	require.NoError(t, err)
	require.Equal(t, "first", root.Content)
	require.Equal(t, "author", root.User.Username)
	require.Nil(t, root.ParentID)

	reply, err := f.comments.Create(context.Background(), post.ID, author.ID, "second", &root.ID)
	require.NoError(t, err)
	require.Equal(t, root.ID, *reply.ParentID)

	depth, err := f.comments.Depth(context.Background(), *reply)
	require.NoError(t, err)
	require.Equal(t, 1, depth)
}

func TestCreateCommentValidation(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	post := f.post(author)
	other := f.post(author)
	foreign := f.comment(other, author, nil)

	_, err := f.comments.Create(context.Background(), post.ID, 0, "hi", nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.comments.Create(context.Background(), post.ID, author.ID, "   ", nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.comments.Create(context.Background(), 404, author.ID, "hi", nil)
	require.ErrorIs(t, err, ErrNotFound)

	missing := uint(404)
	_, err = f.comments.Create(context.Background(), post.ID, author.ID, "hi", &missing)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.comments.Create(context.Background(), post.ID, author.ID, "hi", &foreign.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetCommentReportsDepthAndLikes(t *testing.T) {
	f := newFixture(t)
	author, liker := f.user("author"), f.user("liker")
	post := f.post(author)
	root := f.comment(post, author, nil)
	reply := f.comment(post, author, &root)
	nested := f.comment(post, author, &reply)

	_, err := f.likes.Toggle(context.Background(), liker.ID, models.CommentTarget(nested.ID))
	require.NoError(t, err)

	node, err := f.comments.Get(context.Background(), nested.ID)
	require.NoError(t, err)
	require.Equal(t, 2, node.Depth)
	require.Equal(t, 1, node.LikeCount)
	require.Empty(t, node.Replies)

	_, err = f.comments.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListComments(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	p1, p2 := f.post(author), f.post(author)
	c1 := f.comment(p1, author, nil)
	f.comment(p2, author, nil)
	c3 := f.comment(p1, author, &c1)

	all, err := f.comments.List(context.Background(), 0, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)

	forP1, err := f.comments.List(context.Background(), p1.ID, 1)
	require.NoError(t, err)
	require.Len(t, forP1, 2)
	require.Equal(t, c1.ID, forP1[0].ID)
	require.Equal(t, c3.ID, forP1[1].ID)
}

func TestDeleteCommentRemovesRepliesAndLikes(t *testing.T) {
	f := newFixture(t)
	author, liker := f.user("author"), f.user("liker")
	post := f.post(author)
	root := f.comment(post, author, nil)
	reply := f.comment(post, liker, &root)
	sibling := f.comment(post, author, nil)

	_, err := f.likes.Toggle(context.Background(), author.ID, models.CommentTarget(reply.ID))
	require.NoError(t, err)

	require.ErrorIs(t, f.comments.Delete(context.Background(), liker.ID, root.ID), ErrForbidden)
	require.NoError(t, f.comments.Delete(context.Background(), author.ID, root.ID))

	require.EqualValues(t, 0, f.count(&models.Comment{}, "id IN ?", []uint{root.ID, reply.ID}))
	require.EqualValues(t, 1, f.count(&models.Comment{}, "id = ?", sibling.ID))
	require.EqualValues(t, 0, f.count(&models.Like{}, "target_kind = ?", models.TargetComment))
	// granted karma is kept as history
	require.EqualValues(t, 1, f.count(&models.KarmaTransaction{}, "user_id = ?", liker.ID))

	require.ErrorIs(t, f.comments.Delete(context.Background(), author.ID, root.ID), ErrNotFound)
}
