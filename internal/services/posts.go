package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"karmafeed/internal/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const PostsPerPage = 20

type PostService struct {
	db       *gorm.DB
	comments *CommentService
	logger   *slog.Logger
}

func NewPostService(db *gorm.DB, comments *CommentService, logger *slog.Logger) *PostService {
	return &PostService{db: db, comments: comments, logger: logger.With("component", "services.PostService")}
}

func (s *PostService) Create(ctx context.Context, authorID uint, content string) (*models.Post, error) {
	if authorID == 0 {
		return nil, ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post := models.Post{UserID: authorID, Content: content}
	db := s.db.WithContext(ctx)
	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&post, post.ID).Error; err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "post created", "post_id", post.ID, "author_id", authorID)
	return &post, nil
}

// List returns one page of posts, newest first, with counters for viewerID.
func (s *PostService) List(ctx context.Context, viewerID uint, page int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	var posts []models.Post
	err := s.db.WithContext(ctx).Preload("User").
		Order("created_at DESC, id DESC").
		Limit(PostsPerPage).
		Offset((page - 1) * PostsPerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := s.fillCounts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get loads a post and its full comment tree.
func (s *PostService) Get(ctx context.Context, viewerID, id uint) (*models.Post, []*CommentNode, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, nil, notFound(err, "post", id)
	}
	posts := []models.Post{post}
	if err := s.fillCounts(ctx, viewerID, posts); err != nil {
		return nil, nil, err
	}

	comments, err := s.comments.ForPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &posts[0], BuildTree(comments), nil
}

func (s *PostService) Update(ctx context.Context, actorID, id uint, content string) (*models.Post, error) {
	if actorID == 0 {
		return nil, ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	db := s.db.WithContext(ctx)
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		return nil, notFound(err, "post", id)
	}
	if post.UserID != actorID {
		return nil, fmt.Errorf("%w: post %d belongs to another user", ErrForbidden, id)
	}

	if err := db.Model(&post).Update("content", content).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	posts := []models.Post{post}
	if err := s.fillCounts(ctx, actorID, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// Delete removes a post, its comments, and every like on either. Karma
// already granted for them remains in the ledger.
func (s *PostService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == 0 {
		return ErrUnauthorized
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return notFound(err, "post", id)
		}
		if post.UserID != actorID {
			return fmt.Errorf("%w: post %d belongs to another user", ErrForbidden, id)
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if err := deleteLikes(tx, models.TargetComment, commentIDs); err != nil {
			return err
		}
		if err := deleteLikes(tx, models.TargetPost, []uint{id}); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "post deleted", "post_id", id, "actor_id", actorID)
	return nil
}

// fillCounts 批量填充点赞数、评论数和当前用户是否已点赞
func (s *PostService) fillCounts(ctx context.Context, viewerID uint, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	db := s.db.WithContext(ctx)
	postIDs := lo.Map(posts, func(p models.Post, _ int) uint { return p.ID })

	likes, err := likeCounts(db, models.TargetPost, postIDs)
	if err != nil {
		return err
	}
	liked, err := likedBy(db, viewerID, models.TargetPost, postIDs)
	if err != nil {
		return err
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	err = db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return err
	}
	comments := lo.SliceToMap(results, func(r countResult) (uint, int) { return r.PostID, r.Count })

	for i := range posts {
		posts[i].LikeCount = likes[posts[i].ID]
		posts[i].CommentCount = comments[posts[i].ID]
		posts[i].IsLiked = liked[posts[i].ID]
	}
	return nil
}
