package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"karmafeed/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type CommentService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCommentService(db *gorm.DB, logger *slog.Logger) *CommentService {
	return &CommentService{db: db, logger: logger.With("component", "services.CommentService")}
}

// Create adds a comment to a post. A reply's parent must belong to the same post.
func (s *CommentService) Create(ctx context.Context, postID, authorID uint, content string, parentID *uint) (*models.Comment, error) {
	if authorID == 0 {
		return nil, ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	db := s.db.WithContext(ctx)

	var post models.Post
	if err := db.Select("id").First(&post, postID).Error; err != nil {
		return nil, notFound(err, "post", postID)
	}

	if parentID != nil {
		var parent models.Comment
		if err := db.Select("id", "post_id").First(&parent, *parentID).Error; err != nil {
			return nil, notFound(err, "parent comment", *parentID)
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("%w: parent comment %d in post %d", ErrNotFound, *parentID, postID)
		}
	}

	comment := models.Comment{
		PostID:   postID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "comment created", "comment_id", comment.ID, "post_id", postID, "author_id", authorID)
	return &comment, nil
}

// ForPost 按时间正序加载帖子的全部评论，并填充点赞数
func (s *CommentService) ForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillLikeCounts(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// List returns comments oldest first, optionally restricted to one post.
func (s *CommentService) List(ctx context.Context, postID uint, page int) ([]models.Comment, error) {
	const perPage = 100
	if page < 1 {
		page = 1
	}

	query := s.db.WithContext(ctx).Preload("User").Order("created_at ASC, id ASC")
	if postID != 0 {
		query = query.Where("post_id = ?", postID)
	}

	var comments []models.Comment
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&comments).Error; err != nil {
		return nil, err
	}
	if err := s.fillLikeCounts(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Get returns one comment as a leaf node with its reported depth.
func (s *CommentService) Get(ctx context.Context, id uint) (*CommentNode, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, notFound(err, "comment", id)
	}
	comments := []models.Comment{comment}
	if err := s.fillLikeCounts(ctx, comments); err != nil {
		return nil, err
	}
	depth, err := s.Depth(ctx, comment)
	if err != nil {
		return nil, err
	}
	return &CommentNode{Comment: comments[0], Depth: depth, Replies: []*CommentNode{}}, nil
}

// Depth walks the parent chain in storage, stopping at MaxReportedDepth.
func (s *CommentService) Depth(ctx context.Context, comment models.Comment) (int, error) {
	depth := 0
	parentID := comment.ParentID
	for parentID != nil && depth < MaxReportedDepth {
		var parent models.Comment
		err := s.db.WithContext(ctx).Select("id", "parent_id").First(&parent, *parentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return 0, err
		}
		depth++
		parentID = parent.ParentID
	}
	return depth, nil
}

// Delete removes a comment with all its replies and the likes on them.
func (s *CommentService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == 0 {
		return ErrUnauthorized
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return notFound(err, "comment", id)
		}
		if comment.UserID != actorID {
			return fmt.Errorf("%w: comment %d belongs to another user", ErrForbidden, id)
		}

		ids, err := subtreeIDs(tx, []uint{id})
		if err != nil {
			return err
		}
		if err := deleteLikes(tx, models.TargetComment, ids); err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
}

// subtreeIDs collects the given comments and all their descendants.
func subtreeIDs(tx *gorm.DB, roots []uint) ([]uint, error) {
	all := append([]uint(nil), roots...)
	frontier := roots
	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}

func (s *CommentService) fillLikeCounts(ctx context.Context, comments []models.Comment) error {
	ids := lo.Map(comments, func(c models.Comment, _ int) uint { return c.ID })
	counts, err := likeCounts(s.db.WithContext(ctx), models.TargetComment, ids)
	if err != nil {
		return err
	}
	for i := range comments {
		comments[i].LikeCount = counts[comments[i].ID]
	}
	return nil
}
