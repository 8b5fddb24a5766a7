package services

import (
	"karmafeed/internal/models"

	"github.com/samber/lo"
)

// MaxReportedDepth caps the depth shown to clients. Trees themselves are not
// limited.
const MaxReportedDepth = 10

type CommentNode struct {
	models.Comment
	Depth   int            `json:"depth"`
	Replies []*CommentNode `json:"replies"`
}

// BuildTree nests a post's comments under their parents. Input must be sorted
// by creation time; sibling order follows input order. Comments whose parent
// is absent from the input are dropped. The parent graph must be acyclic.
func BuildTree(flat []models.Comment) []*CommentNode {
	replies := lo.GroupBy(
		lo.Filter(flat, func(c models.Comment, _ int) bool { return c.ParentID != nil }),
		func(c models.Comment) uint { return *c.ParentID },
	)

	var attach func(c models.Comment, level int) *CommentNode
	attach = func(c models.Comment, level int) *CommentNode {
		children := replies[c.ID]
		node := &CommentNode{
			Comment: c,
			Depth:   ReportedDepth(level),
			Replies: make([]*CommentNode, 0, len(children)),
		}
		for _, child := range children {
			node.Replies = append(node.Replies, attach(child, level+1))
		}
		return node
	}

	roots := lo.Filter(flat, func(c models.Comment, _ int) bool { return c.ParentID == nil })
	return lo.Map(roots, func(c models.Comment, _ int) *CommentNode {
		return attach(c, 0)
	})
}

// ReportedDepth clamps a nesting level for display.
func ReportedDepth(level int) int {
	return min(level, MaxReportedDepth)
}
