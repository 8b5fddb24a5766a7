package services

import (
	"testing"
	"time"

	"karmafeed/internal/models"

	"github.com/stretchr/testify/require"
)

func flatComment(id uint, parent uint, at time.Time) models.Comment {
	c := models.Comment{ID: id, PostID: 1, Content: "c", CreatedAt: at}
	if parent != 0 {
		c.ParentID = &parent
	}
	return c
}

func TestBuildTreeNestsReplies(t *testing.T) {
	base := time.Now()
	tree := BuildTree([]models.Comment{
		flatComment(1, 0, base),
		flatComment(2, 1, base.Add(time.Second)),
		flatComment(3, 2, base.Add(2*time.Second)),
	})

	require.Len(t, tree, 1)
	root := tree[0]
	require.Equal(t, uint(1), root.ID)
	require.Equal(t, 0, root.Depth)
	require.Len(t, root.Replies, 1)

	child := root.Replies[0]
	require.Equal(t, uint(2), child.ID)
	require.Equal(t, 1, child.Depth)
	require.Len(t, child.Replies, 1)

	grandchild := child.Replies[0]
	require.Equal(t, uint(3), grandchild.ID)
	require.Equal(t, 2, grandchild.Depth)
	require.Empty(t, grandchild.Replies)
	require.NotNil(t, grandchild.Replies)
}

func TestBuildTreeKeepsSiblingOrder(t *testing.T) {
	base := time.Now()
	tree := BuildTree([]models.Comment{
		flatComment(1, 0, base),
		flatComment(2, 0, base.Add(time.Second)),
		flatComment(3, 1, base.Add(2*time.Second)),
		flatComment(4, 2, base.Add(3*time.Second)),
		flatComment(5, 1, base.Add(4*time.Second)),
	})

	require.Len(t, tree, 2)
	require.Equal(t, uint(1), tree[0].ID)
	require.Equal(t, uint(2), tree[1].ID)
	require.Len(t, tree[0].Replies, 2)
	require.Equal(t, uint(3), tree[0].Replies[0].ID)
	require.Equal(t, uint(5), tree[0].Replies[1].ID)
	require.Equal(t, uint(4), tree[1].Replies[0].ID)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	tree := BuildTree([]models.Comment{
		flatComment(1, 0, time.Now()),
		flatComment(2, 99, time.Now()),
	})
	require.Len(t, tree, 1)
	require.Empty(t, tree[0].Replies)
}

func TestBuildTreeCapsReportedDepth(t *testing.T) {
	base := time.Now()
	var flat []models.Comment
	for i := uint(1); i <= 13; i++ {
		flat = append(flat, flatComment(i, i-1, base.Add(time.Duration(i)*time.Second)))
	}

	node := BuildTree(flat)[0]
	levels := 0
	for len(node.Replies) > 0 {
		node = node.Replies[0]
		levels++
	}
	require.Equal(t, 12, levels)
	require.Equal(t, MaxReportedDepth, node.Depth)
}

func TestBuildTreeEmpty(t *testing.T) {
	require.Empty(t, BuildTree(nil))
}
