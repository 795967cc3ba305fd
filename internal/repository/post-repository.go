package repository

import (
	"errors"

	"github.com/campusboard/board-service/internal/domain"
	"github.com/campusboard/board-service/pkg/logger"
	"gorm.io/gorm"
)

type PostRepository interface {
	// FindPost matches by id and board, narrowed by category when non-nil.
	FindPost(postID, boardID uint, categoryID *uint) (*domain.Post, error)
	SavePost(post *domain.Post) error
	FindFeatured() ([]domain.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindPost(postID, boardID uint, categoryID *uint) (*domain.Post, error) {
	post := &domain.Post{}
	q := r.db.Where("id = ? AND board_id = ?", postID, boardID)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.First(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) SavePost(post *domain.Post) error {
	if post == nil {
		return errors.New("nil post")
	}

	if err := r.db.Save(post).Error; err != nil {
		logger.S().Errorw("save post failed", "post_id", post.ID, "error", err)
		return err
	}
	return nil
}

func (r *postRepository) FindFeatured() ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.Where("is_carousel = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
